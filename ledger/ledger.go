package ledger

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// Balance is a non-zero balance of a single account.
type Balance struct {
	Account address.Address
	Amount  uint256.Int
}

// Ledger stores balances and the total supply.
type Ledger struct {
	balances map[address.Address]uint256.Int
	supply   uint256.Int
}

// New returns empty Ledger.
func New() *Ledger {
	return &Ledger{
		balances: make(map[address.Address]uint256.Int),
	}
}

// Restore returns Ledger with the given balances. The sum of balances must be
// equal to supply, accounts must be unique and valid.
func Restore(balances []Balance, supply *uint256.Int) (*Ledger, error) {
	var (
		l   = New()
		sum uint256.Int
	)

	for i := range balances {
		b := &balances[i]
		if err := b.Account.Valid(); err != nil {
			return nil, fmt.Errorf("balance account: %w", err)
		}
		if _, ok := l.balances[b.Account]; ok {
			return nil, fmt.Errorf("%w: duplicated balance of %s", common.ErrInvalidArgument, b.Account)
		}
		if _, overflow := sum.AddOverflow(&sum, &b.Amount); overflow {
			return nil, fmt.Errorf("sum of balances: %w", common.ErrOverflow)
		}
		if !b.Amount.IsZero() {
			l.balances[b.Account] = b.Amount
		}
	}

	if !sum.Eq(supply) {
		return nil, fmt.Errorf("%w: sum of balances %s differs from total supply %s",
			common.ErrInvalidArgument, sum.Dec(), supply.Dec())
	}

	l.supply = *supply

	return l, nil
}

// TotalSupply returns the amount of all issued assets.
func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(&l.supply)
}

// BalanceOf returns balance of the account. Unknown accounts have zero
// balance.
func (l *Ledger) BalanceOf(a address.Address) *uint256.Int {
	v := l.balances[a]
	return &v
}

// Balances returns all non-zero balances sorted by account.
func (l *Ledger) Balances() []Balance {
	res := make([]Balance, 0, len(l.balances))
	for a, v := range l.balances {
		res = append(res, Balance{Account: a, Amount: v})
	}
	slices.SortFunc(res, func(a, b Balance) int {
		return a.Account.Compare(b.Account)
	})
	return res
}

// Credit adds amount to the account balance.
func (l *Ledger) Credit(a address.Address, amount *uint256.Int) error {
	return l.single(func(b *Batch) error { return b.Credit(a, amount) })
}

// Debit subtracts amount from the account balance. It fails with
// common.ErrInsufficientBalance if the account holds less than amount.
func (l *Ledger) Debit(a address.Address, amount *uint256.Int) error {
	return l.single(func(b *Batch) error { return b.Debit(a, amount) })
}

// Mint issues amount of new assets to the account.
func (l *Ledger) Mint(a address.Address, amount *uint256.Int) error {
	return l.single(func(b *Batch) error { return b.Mint(a, amount) })
}

// Burn destroys amount of assets of the account.
func (l *Ledger) Burn(a address.Address, amount *uint256.Int) error {
	return l.single(func(b *Batch) error { return b.Burn(a, amount) })
}

func (l *Ledger) single(f func(*Batch) error) error {
	b := l.Batch()
	if err := f(b); err != nil {
		return err
	}
	b.Commit()
	return nil
}
