package ledger

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// Batch stages balance and supply changes on top of the Ledger. Reads through
// Batch see staged values. Every Batch method either applies fully or fails
// without staging anything.
//
// Batch must not be used after Commit, and the Ledger must not be changed
// while a Batch is in use.
type Batch struct {
	l        *Ledger
	balances map[address.Address]uint256.Int
	supply   uint256.Int
}

// Batch opens new Batch over the Ledger.
func (l *Ledger) Batch() *Batch {
	return &Batch{
		l:        l,
		balances: make(map[address.Address]uint256.Int),
		supply:   l.supply,
	}
}

// BalanceOf returns staged balance of the account.
func (b *Batch) BalanceOf(a address.Address) *uint256.Int {
	if v, ok := b.balances[a]; ok {
		return &v
	}
	return b.l.BalanceOf(a)
}

// TotalSupply returns staged total supply.
func (b *Batch) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(&b.supply)
}

// Credit stages increase of the account balance.
func (b *Batch) Credit(a address.Address, amount *uint256.Int) error {
	v, overflow := new(uint256.Int).AddOverflow(b.BalanceOf(a), amount)
	if overflow {
		return fmt.Errorf("credit %s: %w", a, common.ErrOverflow)
	}
	b.balances[a] = *v
	return nil
}

// Debit stages decrease of the account balance.
func (b *Batch) Debit(a address.Address, amount *uint256.Int) error {
	v, underflow := new(uint256.Int).SubOverflow(b.BalanceOf(a), amount)
	if underflow {
		return fmt.Errorf("debit %s: %w", a, common.ErrInsufficientBalance)
	}
	b.balances[a] = *v
	return nil
}

// Mint stages issue of new assets to the account.
func (b *Batch) Mint(a address.Address, amount *uint256.Int) error {
	supply, overflow := new(uint256.Int).AddOverflow(&b.supply, amount)
	if overflow {
		return fmt.Errorf("mint: total supply: %w", common.ErrOverflow)
	}
	// balance never exceeds the supply, so crediting can not overflow when
	// the supply does not
	if err := b.Credit(a, amount); err != nil {
		return err
	}
	b.supply = *supply
	return nil
}

// Burn stages destruction of the account assets.
func (b *Batch) Burn(a address.Address, amount *uint256.Int) error {
	supply, underflow := new(uint256.Int).SubOverflow(&b.supply, amount)
	if underflow {
		return fmt.Errorf("burn: total supply: %w", common.ErrInsufficientBalance)
	}
	if err := b.Debit(a, amount); err != nil {
		return err
	}
	b.supply = *supply
	return nil
}

// Changes returns staged balances sorted by account. Zero amount means the
// account balance is removed.
func (b *Batch) Changes() []Balance {
	res := make([]Balance, 0, len(b.balances))
	for a, v := range b.balances {
		res = append(res, Balance{Account: a, Amount: v})
	}
	slices.SortFunc(res, func(x, y Balance) int {
		return x.Account.Compare(y.Account)
	})
	return res
}

// SupplyChanged checks whether the Batch changes total supply.
func (b *Batch) SupplyChanged() bool {
	return !b.supply.Eq(&b.l.supply)
}

// Commit applies all staged changes to the Ledger.
func (b *Batch) Commit() {
	for a, v := range b.balances {
		if v.IsZero() {
			delete(b.l.balances, a)
		} else {
			b.l.balances[a] = v
		}
	}
	b.l.supply = b.supply
	b.balances = nil
}
