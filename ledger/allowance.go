package ledger

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// Allowance is a non-zero amount which spender may transfer from the owner's
// balance.
type Allowance struct {
	Owner   address.Address
	Spender address.Address
	Amount  uint256.Int
}

type allowanceKey struct {
	owner, spender address.Address
}

// Allowances stores spending limits of (owner, spender) pairs.
type Allowances struct {
	m map[allowanceKey]uint256.Int
}

// NewAllowances returns empty Allowances.
func NewAllowances() *Allowances {
	return &Allowances{
		m: make(map[allowanceKey]uint256.Int),
	}
}

// RestoreAllowances returns Allowances filled with the given list. Pairs must
// be unique, owners and spenders must be valid.
func RestoreAllowances(list []Allowance) (*Allowances, error) {
	r := NewAllowances()
	for i := range list {
		if err := list[i].Owner.Valid(); err != nil {
			return nil, fmt.Errorf("allowance owner: %w", err)
		}
		if err := list[i].Spender.Valid(); err != nil {
			return nil, fmt.Errorf("allowance spender: %w", err)
		}
		k := allowanceKey{list[i].Owner, list[i].Spender}
		if _, ok := r.m[k]; ok {
			return nil, fmt.Errorf("%w: duplicated allowance %s -> %s",
				common.ErrInvalidArgument, list[i].Owner, list[i].Spender)
		}
		if !list[i].Amount.IsZero() {
			r.m[k] = list[i].Amount
		}
	}
	return r, nil
}

// AllowanceOf returns the amount spender may still transfer from owner.
func (r *Allowances) AllowanceOf(owner, spender address.Address) *uint256.Int {
	v := r.m[allowanceKey{owner, spender}]
	return &v
}

// Approve sets the allowance to exactly amount regardless of its previous
// value.
func (r *Allowances) Approve(owner, spender address.Address, amount *uint256.Int) {
	k := allowanceKey{owner, spender}
	if amount.IsZero() {
		delete(r.m, k)
		return
	}
	r.m[k] = *amount
}

// All returns all non-zero allowances sorted by owner and spender.
func (r *Allowances) All() []Allowance {
	res := make([]Allowance, 0, len(r.m))
	for k, v := range r.m {
		res = append(res, Allowance{Owner: k.owner, Spender: k.spender, Amount: v})
	}
	slices.SortFunc(res, compareAllowances)
	return res
}

func compareAllowances(a, b Allowance) int {
	if c := a.Owner.Compare(b.Owner); c != 0 {
		return c
	}
	return a.Spender.Compare(b.Spender)
}

// AllowanceBatch stages allowance changes on top of Allowances. Reads
// through AllowanceBatch see staged values.
//
// AllowanceBatch must not be used after Commit, and the Allowances must not
// be changed while an AllowanceBatch is in use.
type AllowanceBatch struct {
	r *Allowances
	m map[allowanceKey]uint256.Int
}

// Batch opens new AllowanceBatch over the Allowances.
func (r *Allowances) Batch() *AllowanceBatch {
	return &AllowanceBatch{
		r: r,
		m: make(map[allowanceKey]uint256.Int),
	}
}

// AllowanceOf returns staged allowance of the (owner, spender) pair.
func (b *AllowanceBatch) AllowanceOf(owner, spender address.Address) *uint256.Int {
	if v, ok := b.m[allowanceKey{owner, spender}]; ok {
		return &v
	}
	return b.r.AllowanceOf(owner, spender)
}

// Approve stages the allowance set to exactly amount regardless of its
// previous value.
func (b *AllowanceBatch) Approve(owner, spender address.Address, amount *uint256.Int) {
	b.m[allowanceKey{owner, spender}] = *amount
}

// Consume stages decrease of the allowance by amount. It fails with
// common.ErrInsufficientAllowance and stages nothing if the allowance is
// less than amount.
func (b *AllowanceBatch) Consume(owner, spender address.Address, amount *uint256.Int) error {
	allowed := b.AllowanceOf(owner, spender)
	rest, underflow := new(uint256.Int).SubOverflow(allowed, amount)
	if underflow {
		return fmt.Errorf("%w: %s allowed to spend %s of %s, requested %s",
			common.ErrInsufficientAllowance, spender, allowed.Dec(), owner, amount.Dec())
	}
	b.Approve(owner, spender, rest)
	return nil
}

// Changes returns staged allowances sorted by owner and spender. Zero amount
// means the allowance is removed.
func (b *AllowanceBatch) Changes() []Allowance {
	res := make([]Allowance, 0, len(b.m))
	for k, v := range b.m {
		res = append(res, Allowance{Owner: k.owner, Spender: k.spender, Amount: v})
	}
	slices.SortFunc(res, compareAllowances)
	return res
}

// Commit applies all staged changes to the Allowances.
func (b *AllowanceBatch) Commit() {
	for k, v := range b.m {
		b.r.Approve(k.owner, k.spender, &v)
	}
	b.m = nil
}
