package token

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	owner := address.FromUint160(util.Uint160{1})
	other := address.FromUint160(util.Uint160{2})

	m := NewMetrics()
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	e, err := New(Prm{Owner: owner, Metrics: m})
	require.NoError(t, err)

	_, err = e.Transfer(owner, other, uint256.NewInt(1))
	require.NoError(t, err)
	_, err = e.Transfer(owner, other, uint256.NewInt(2))
	require.NoError(t, err)
	_, err = e.Mint(other, other, uint256.NewInt(1))
	require.Error(t, err)
	_, err = e.Transfer(other, owner, uint256.NewInt(4))
	require.Error(t, err)

	require.EqualValues(t, 2, testutil.ToFloat64(m.operations.WithLabelValues("Transfer", "OK")))
	require.EqualValues(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("Transfer", "INSUFFICIENT_BALANCE")))
	require.EqualValues(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("Mint", "UNAUTHORIZED")))
	require.EqualValues(t, 2, testutil.ToFloat64(m.height))

	t.Run("double registration", func(t *testing.T) {
		r := prometheus.NewRegistry()
		require.NoError(t, m.Register(r))
		require.Error(t, m.Register(r))
	})
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observe(KindTransfer, nil)
	m.setHeight(1)
}
