package token

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
)

// Transfer moves amount from sender to recipient. The transfer fee is
// deducted from amount and credited to the fee recipient.
//
// Transfer fails with common.ErrPaused while the token is paused, with
// common.ErrBlacklisted if sender or recipient is blacklisted and with
// common.ErrInsufficientBalance if sender has less than amount. Zero amount
// is allowed.
func (e *Engine) Transfer(sender, recipient address.Address, amount *uint256.Int) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.transfer(sender, sender, recipient, amount, false)
	return e.commit(KindTransfer, c, err)
}

// TransferFrom moves amount from owner to recipient on behalf of spender and
// decreases the allowance of spender by amount. The allowance is required
// even if spender is owner. In addition to Transfer failures, it fails with
// common.ErrInsufficientAllowance if spender is allowed to move less than
// amount. Spender itself is not checked against the blacklist.
func (e *Engine) TransferFrom(spender, owner, recipient address.Address, amount *uint256.Int) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.transfer(spender, owner, recipient, amount, true)
	return e.commit(KindTransferFrom, c, err)
}

// Approve allows spender to transfer exactly amount from owner's balance,
// replacing the previous allowance. Zero amount revokes the allowance.
// Approve is not affected by pause and blacklist.
func (e *Engine) Approve(owner, spender address.Address, amount *uint256.Int) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.approve(owner, spender, amount)
	return e.commit(KindApproval, c, err)
}

// transfer stages movement of amount from one account to another. If
// allowance is set, operator spends the allowance given by from.
func (e *Engine) transfer(operator, from, to address.Address, amount *uint256.Int, allowance bool) (*change, error) {
	if err := requireAmount(amount); err != nil {
		return nil, err
	}
	if err := e.access.RequireNotPaused(); err != nil {
		return nil, err
	}
	if err := e.access.RequireNotBlacklisted(from); err != nil {
		return nil, err
	}
	if err := e.access.RequireNotBlacklisted(to); err != nil {
		return nil, err
	}
	if err := from.Valid(); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if err := to.Valid(); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	c := &change{
		event: Event{
			Operator: operator,
			From:     from,
			To:       to,
			Amount:   *amount,
			FeeRate:  e.fees.Rate(),
		},
	}

	if allowance {
		if err := operator.Valid(); err != nil {
			return nil, fmt.Errorf("spender: %w", err)
		}

		ab := e.allowances.Batch()
		if err := ab.Consume(from, operator, amount); err != nil {
			return nil, err
		}
		c.allowances = ab
	}

	net, fee := e.fees.ComputeNet(amount)

	b := e.ledger.Batch()
	if err := b.Debit(from, amount); err != nil {
		return nil, err
	}
	if err := b.Credit(to, net); err != nil {
		return nil, err
	}
	if !fee.IsZero() {
		if err := b.Credit(e.fees.Recipient(), fee); err != nil {
			return nil, err
		}
	}

	c.batch = b
	c.event.Fee = *fee

	return c, nil
}

func (e *Engine) approve(owner, spender address.Address, amount *uint256.Int) (*change, error) {
	if err := requireAmount(amount); err != nil {
		return nil, err
	}
	if err := owner.Valid(); err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	if err := spender.Valid(); err != nil {
		return nil, fmt.Errorf("spender: %w", err)
	}

	ab := e.allowances.Batch()
	ab.Approve(owner, spender, amount)

	return &change{
		event: Event{
			Operator: owner,
			From:     owner,
			To:       spender,
			Amount:   *amount,
		},
		allowances: ab,
	}, nil
}
