package config

import (
	"testing"

	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/houssamboudiar/mockusdt-tron/token"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, token.DefaultName, cfg.Name)
	require.Equal(t, token.DefaultSymbol, cfg.Symbol)
	require.True(t, cfg.Owner.IsZero())
	require.Equal(t, "data/token", cfg.DBPath)
	require.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	require.Equal(t, "local", cfg.DumpLabel)

	prm := cfg.Prm()
	require.EqualValues(t, token.DefaultInitialSupply, prm.InitialSupply.Uint64())

	l, err := cfg.Logger()
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestParse(t *testing.T) {
	t.Setenv("TOKEN_NAME", "Mock Tether")
	t.Setenv("TOKEN_SYMBOL", "MUSDT")
	t.Setenv("TOKEN_INITIAL_SUPPLY", "2.5")
	t.Setenv("TOKEN_OWNER", "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	t.Setenv("TOKEN_DB_PATH", "/var/lib/token")
	t.Setenv("TOKEN_LOG_LEVEL", "debug")
	t.Setenv("TOKEN_DUMP_LABEL", "shasta")

	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "/var/lib/token", cfg.DBPath)
	require.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	require.Equal(t, "shasta", cfg.DumpLabel)

	prm := cfg.Prm()
	require.Equal(t, "Mock Tether", prm.Name)
	require.Equal(t, "MUSDT", prm.Symbol)
	require.Equal(t, address.MustDecodeString("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"), prm.Owner)
	require.EqualValues(t, 2_500_000, prm.InitialSupply.Uint64())
}

func TestParseInvalid(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		t.Setenv("TOKEN_OWNER", "not an address")
		_, err := Parse()
		require.ErrorContains(t, err, "parse env:")
	})

	t.Run("supply", func(t *testing.T) {
		t.Setenv("TOKEN_INITIAL_SUPPLY", "1.0000001")
		_, err := Parse()
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("TOKEN_LOG_LEVEL", "loud")
		_, err := Parse()
		require.Error(t, err)
	})
}
