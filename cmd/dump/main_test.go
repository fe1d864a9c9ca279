package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/config"
	"github.com/houssamboudiar/mockusdt-tron/dump"
	"github.com/houssamboudiar/mockusdt-tron/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDumpAndRestore(t *testing.T) {
	l := zaptest.NewLogger(t)
	rootDir := t.TempDir()

	cfg := &config.Token{
		Name:      "Tether USD",
		Symbol:    "USDT",
		Owner:     address.FromUint160(util.Uint160{1}),
		DBPath:    filepath.Join(t.TempDir(), "db"),
		DumpLabel: "test",
	}

	require.NoError(t, _dump(cfg, l, rootDir))
	require.FileExists(t, filepath.Join(rootDir, "test-0-token.json"))

	// the dump exists already, the database must still be released
	require.ErrorIs(t, _dump(cfg, l, rootDir), os.ErrExist)

	db, err := storage.Open(cfg.DBPath, l)
	require.NoError(t, err)
	expected, err := db.Load()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	restored := &config.Token{DBPath: filepath.Join(t.TempDir(), "restored")}
	require.NoError(t, restoreDump(restored, l, rootDir, dump.ID{Label: "test", Height: 0}))

	db, err = storage.Open(restored.DBPath, l)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	st, err := db.Load()
	require.NoError(t, err)
	require.Equal(t, expected, st)

	t.Run("missing dump", func(t *testing.T) {
		err := restoreDump(restored, l, rootDir, dump.ID{Label: "test", Height: 1})
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
