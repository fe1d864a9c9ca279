package ledger

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

var (
	acc1 = address.FromUint160(util.Uint160{1})
	acc2 = address.FromUint160(util.Uint160{2})
	acc3 = address.FromUint160(util.Uint160{3})
)

func amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// requireConservation checks that the total supply is equal to the sum of
// all balances.
func requireConservation(t *testing.T, l *Ledger) {
	var sum uint256.Int
	for _, b := range l.Balances() {
		require.False(t, b.Amount.IsZero())
		_, overflow := sum.AddOverflow(&sum, &b.Amount)
		require.False(t, overflow)
	}
	require.Equal(t, l.TotalSupply(), &sum)
}

func TestLedger(t *testing.T) {
	l := New()
	require.True(t, l.TotalSupply().IsZero())
	require.True(t, l.BalanceOf(acc1).IsZero())

	require.NoError(t, l.Mint(acc1, amount(1000)))
	require.EqualValues(t, 1000, l.BalanceOf(acc1).Uint64())
	require.EqualValues(t, 1000, l.TotalSupply().Uint64())
	requireConservation(t, l)

	t.Run("debit", func(t *testing.T) {
		err := l.Debit(acc2, amount(1))
		require.ErrorIs(t, err, common.ErrInsufficientBalance)

		err = l.Debit(acc1, amount(1001))
		require.ErrorIs(t, err, common.ErrInsufficientBalance)
		require.EqualValues(t, 1000, l.BalanceOf(acc1).Uint64())
	})

	t.Run("move", func(t *testing.T) {
		require.NoError(t, l.Debit(acc1, amount(300)))
		require.NoError(t, l.Credit(acc2, amount(300)))
		require.EqualValues(t, 700, l.BalanceOf(acc1).Uint64())
		require.EqualValues(t, 300, l.BalanceOf(acc2).Uint64())
		requireConservation(t, l)
	})

	t.Run("burn", func(t *testing.T) {
		err := l.Burn(acc2, amount(301))
		require.ErrorIs(t, err, common.ErrInsufficientBalance)
		require.EqualValues(t, 1000, l.TotalSupply().Uint64())

		require.NoError(t, l.Burn(acc2, amount(300)))
		require.True(t, l.BalanceOf(acc2).IsZero())
		require.EqualValues(t, 700, l.TotalSupply().Uint64())
		require.Equal(t, []Balance{{Account: acc1, Amount: *amount(700)}}, l.Balances())
		requireConservation(t, l)
	})

	t.Run("overflow", func(t *testing.T) {
		maxAmount := new(uint256.Int).SetAllOne()

		err := l.Mint(acc3, maxAmount)
		require.ErrorIs(t, err, common.ErrOverflow)
		require.True(t, l.BalanceOf(acc3).IsZero())
		require.EqualValues(t, 700, l.TotalSupply().Uint64())

		err = l.Credit(acc1, maxAmount)
		require.ErrorIs(t, err, common.ErrOverflow)
		require.EqualValues(t, 700, l.BalanceOf(acc1).Uint64())
	})
}

func TestBatch(t *testing.T) {
	l := New()
	require.NoError(t, l.Mint(acc1, amount(100)))

	t.Run("discard", func(t *testing.T) {
		b := l.Batch()
		require.NoError(t, b.Debit(acc1, amount(40)))
		require.NoError(t, b.Credit(acc2, amount(40)))
		require.NoError(t, b.Mint(acc3, amount(5)))

		require.EqualValues(t, 60, b.BalanceOf(acc1).Uint64())
		require.EqualValues(t, 40, b.BalanceOf(acc2).Uint64())
		require.EqualValues(t, 105, b.TotalSupply().Uint64())
		require.True(t, b.SupplyChanged())

		require.EqualValues(t, 100, l.BalanceOf(acc1).Uint64())
		require.True(t, l.BalanceOf(acc2).IsZero())
		require.EqualValues(t, 100, l.TotalSupply().Uint64())
	})

	t.Run("failed step stages nothing", func(t *testing.T) {
		b := l.Batch()
		require.NoError(t, b.Debit(acc1, amount(70)))
		require.ErrorIs(t, b.Debit(acc1, amount(31)), common.ErrInsufficientBalance)
		require.ErrorIs(t, b.Burn(acc1, amount(31)), common.ErrInsufficientBalance)
		require.EqualValues(t, 30, b.BalanceOf(acc1).Uint64())
		require.EqualValues(t, 100, b.TotalSupply().Uint64())
	})

	t.Run("commit", func(t *testing.T) {
		b := l.Batch()
		require.NoError(t, b.Debit(acc1, amount(100)))
		require.NoError(t, b.Credit(acc2, amount(99)))
		require.NoError(t, b.Credit(acc3, amount(1)))
		require.False(t, b.SupplyChanged())

		require.Equal(t, []Balance{
			{Account: acc1, Amount: uint256.Int{}},
			{Account: acc2, Amount: *amount(99)},
			{Account: acc3, Amount: *amount(1)},
		}, b.Changes())

		b.Commit()

		require.True(t, l.BalanceOf(acc1).IsZero())
		require.EqualValues(t, 99, l.BalanceOf(acc2).Uint64())
		require.EqualValues(t, 1, l.BalanceOf(acc3).Uint64())
		require.Len(t, l.Balances(), 2)
		requireConservation(t, l)
	})
}

func TestRestore(t *testing.T) {
	balances := []Balance{
		{Account: acc1, Amount: *amount(10)},
		{Account: acc2, Amount: *amount(20)},
	}

	l, err := Restore(balances, amount(30))
	require.NoError(t, err)
	require.Equal(t, balances, l.Balances())
	requireConservation(t, l)

	_, err = Restore(balances, amount(31))
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Restore(append(balances, Balance{Account: acc1, Amount: *amount(1)}), amount(31))
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Restore([]Balance{{Account: address.Zero, Amount: *amount(1)}}, amount(1))
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Restore([]Balance{{Account: address.Address{0x42, 1}, Amount: *amount(1)}}, amount(1))
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	maxAmount := new(uint256.Int).SetAllOne()
	_, err = Restore([]Balance{
		{Account: acc1, Amount: *maxAmount},
		{Account: acc2, Amount: *amount(1)},
	}, maxAmount)
	require.ErrorIs(t, err, common.ErrOverflow)
}
