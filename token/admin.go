package token

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/access"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/fee"
	"github.com/houssamboudiar/mockusdt-tron/storage"
)

// Mint issues amount of new assets to the account. Only the owner may mint.
// Minting is fee-free and available while the token is paused.
func (e *Engine) Mint(caller, account address.Address, amount *uint256.Int) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.mint(caller, account, amount)
	return e.commit(KindMint, c, err)
}

func (e *Engine) mint(caller, account address.Address, amount *uint256.Int) (*change, error) {
	if err := e.access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	if err := account.Valid(); err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}

	b := e.ledger.Batch()
	if err := b.Mint(account, amount); err != nil {
		return nil, err
	}

	return &change{
		event: Event{Operator: caller, To: account, Amount: *amount},
		batch: b,
	}, nil
}

// Burn destroys amount of the owner's own assets. Only the owner may burn.
func (e *Engine) Burn(caller address.Address, amount *uint256.Int) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.burn(caller, amount)
	return e.commit(KindBurn, c, err)
}

func (e *Engine) burn(caller address.Address, amount *uint256.Int) (*change, error) {
	if err := e.access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	b := e.ledger.Batch()
	if err := b.Burn(caller, amount); err != nil {
		return nil, err
	}

	return &change{
		event: Event{Operator: caller, From: caller, Amount: *amount},
		batch: b,
	}, nil
}

// Pause stops all transfers until Unpause.
func (e *Engine) Pause(caller address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.updateAccess(caller, func(ac *access.Control, cs *storage.ChangeSet) error {
		ac.SetPaused(true)
		cs.Paused = ptr(true)
		return nil
	})
	return e.commit(KindPause, c, err)
}

// Unpause resumes transfers.
func (e *Engine) Unpause(caller address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.updateAccess(caller, func(ac *access.Control, cs *storage.ChangeSet) error {
		ac.SetPaused(false)
		cs.Paused = ptr(false)
		return nil
	})
	return e.commit(KindUnpause, c, err)
}

// AddToBlacklist forbids the account to send and receive assets.
func (e *Engine) AddToBlacklist(caller, account address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.updateAccess(caller, func(ac *access.Control, cs *storage.ChangeSet) error {
		if err := ac.AddToBlacklist(account); err != nil {
			return err
		}
		cs.Blacklist = map[address.Address]bool{account: true}
		return nil
	})
	if c != nil {
		c.event.To = account
	}
	return e.commit(KindBlacklisted, c, err)
}

// RemoveFromBlacklist allows the account to participate in transfers again.
func (e *Engine) RemoveFromBlacklist(caller, account address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.updateAccess(caller, func(ac *access.Control, cs *storage.ChangeSet) error {
		if err := account.Valid(); err != nil {
			return fmt.Errorf("blacklist: %w", err)
		}
		ac.RemoveFromBlacklist(account)
		cs.Blacklist = map[address.Address]bool{account: false}
		return nil
	})
	if c != nil {
		c.event.To = account
	}
	return e.commit(KindUnblacklisted, c, err)
}

// TransferOwnership makes newOwner the token owner. The caller loses all
// administrative rights.
func (e *Engine) TransferOwnership(caller, newOwner address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.updateAccess(caller, func(ac *access.Control, cs *storage.ChangeSet) error {
		if err := ac.TransferOwnership(newOwner); err != nil {
			return err
		}
		cs.Owner = &newOwner
		return nil
	})
	if c != nil {
		c.event.From = caller
		c.event.To = newOwner
	}
	return e.commit(KindOwnershipTransferred, c, err)
}

// updateAccess applies f to a copy of the access control which replaces the
// current one on commit.
func (e *Engine) updateAccess(caller address.Address, f func(*access.Control, *storage.ChangeSet) error) (*change, error) {
	if err := e.access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	c := &change{event: Event{Operator: caller}}

	ac := e.access.Clone()
	if err := f(ac, &c.cs); err != nil {
		return nil, err
	}

	c.apply = func() { e.access = ac }

	return c, nil
}

// SetFee changes the transfer fee. Rate is set in basis points and must not
// exceed fee.MaxRate; recipient must not be zero for non-zero rate.
func (e *Engine) SetFee(caller address.Address, rate uint16, recipient address.Address) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.setFee(caller, rate, recipient)
	return e.commit(KindFeeChanged, c, err)
}

func (e *Engine) setFee(caller address.Address, rate uint16, recipient address.Address) (*change, error) {
	if err := e.access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	p, err := fee.New(rate, recipient)
	if err != nil {
		return nil, err
	}

	return &change{
		event: Event{Operator: caller, To: p.Recipient(), FeeRate: rate},
		cs: storage.ChangeSet{
			Fee: &storage.Fee{Rate: rate, Recipient: p.Recipient()},
		},
		apply: func() { e.fees = p },
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
