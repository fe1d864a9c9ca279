package ledger

import (
	"testing"

	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/stretchr/testify/require"
)

func TestAllowances(t *testing.T) {
	r := NewAllowances()
	require.True(t, r.AllowanceOf(acc1, acc2).IsZero())

	r.Approve(acc1, acc2, amount(100))
	require.EqualValues(t, 100, r.AllowanceOf(acc1, acc2).Uint64())
	require.True(t, r.AllowanceOf(acc2, acc1).IsZero())

	t.Run("approve overwrites", func(t *testing.T) {
		r.Approve(acc1, acc2, amount(50))
		require.EqualValues(t, 50, r.AllowanceOf(acc1, acc2).Uint64())

		r.Approve(acc1, acc2, amount(500))
		require.EqualValues(t, 500, r.AllowanceOf(acc1, acc2).Uint64())
	})

	t.Run("consume", func(t *testing.T) {
		b := r.Batch()

		err := b.Consume(acc1, acc2, amount(501))
		require.ErrorIs(t, err, common.ErrInsufficientAllowance)
		require.Empty(t, b.Changes())

		require.NoError(t, b.Consume(acc1, acc2, amount(123)))
		require.EqualValues(t, 377, b.AllowanceOf(acc1, acc2).Uint64())
		require.EqualValues(t, 500, r.AllowanceOf(acc1, acc2).Uint64())

		require.NoError(t, b.Consume(acc1, acc2, amount(0)))
		require.EqualValues(t, 377, b.AllowanceOf(acc1, acc2).Uint64())

		err = b.Consume(acc3, acc2, amount(1))
		require.ErrorIs(t, err, common.ErrInsufficientAllowance)

		require.Equal(t, []Allowance{{Owner: acc1, Spender: acc2, Amount: *amount(377)}}, b.Changes())

		b.Commit()
		require.EqualValues(t, 377, r.AllowanceOf(acc1, acc2).Uint64())

		b = r.Batch()
		require.NoError(t, b.Consume(acc1, acc2, amount(377)))
		require.Equal(t, []Allowance{{Owner: acc1, Spender: acc2}}, b.Changes())

		b.Commit()
		require.True(t, r.AllowanceOf(acc1, acc2).IsZero())
		require.Empty(t, r.All())
	})

	t.Run("batch approve", func(t *testing.T) {
		b := r.Batch()
		b.Approve(acc2, acc2, amount(10))
		require.NoError(t, b.Consume(acc2, acc2, amount(4)))
		require.EqualValues(t, 6, b.AllowanceOf(acc2, acc2).Uint64())
		require.True(t, r.AllowanceOf(acc2, acc2).IsZero())

		b.Commit()
		require.EqualValues(t, 6, r.AllowanceOf(acc2, acc2).Uint64())

		r.Approve(acc2, acc2, amount(0))
	})

	t.Run("list", func(t *testing.T) {
		r.Approve(acc2, acc1, amount(1))
		r.Approve(acc1, acc3, amount(2))
		r.Approve(acc1, acc2, amount(3))
		r.Approve(acc3, acc1, amount(0))

		expected := []Allowance{
			{Owner: acc1, Spender: acc2, Amount: *amount(3)},
			{Owner: acc1, Spender: acc3, Amount: *amount(2)},
			{Owner: acc2, Spender: acc1, Amount: *amount(1)},
		}
		require.Equal(t, expected, r.All())

		restored, err := RestoreAllowances(expected)
		require.NoError(t, err)
		require.Equal(t, expected, restored.All())

		_, err = RestoreAllowances(append(expected, expected[0]))
		require.ErrorIs(t, err, common.ErrInvalidArgument)

		_, err = RestoreAllowances([]Allowance{{Owner: acc1, Spender: address.Address{}, Amount: *amount(1)}})
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}
