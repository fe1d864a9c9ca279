package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/houssamboudiar/mockusdt-tron/config"
	"github.com/houssamboudiar/mockusdt-tron/dump"
	"github.com/houssamboudiar/mockusdt-tron/storage"
	"github.com/houssamboudiar/mockusdt-tron/token"
	"go.uber.org/zap"
)

func main() {
	rootDir := flag.String("dir", "testdata", "Directory with token dumps")
	label := flag.String("label", "", "Label of the dump, overrides TOKEN_DUMP_LABEL")
	restore := flag.Bool("restore", false, "Replace the stored state with the dump at -height instead of writing a new dump")
	height := flag.Uint64("height", 0, "Height of the dump to restore")

	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}

	if *label != "" {
		cfg.DumpLabel = *label
	}

	l, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}

	if *restore {
		err = restoreDump(cfg, l, *rootDir, dump.ID{Label: cfg.DumpLabel, Height: *height})
	} else {
		err = _dump(cfg, l, *rootDir)
	}

	if err != nil {
		l.Error("dump failed", zap.Error(err))
	}

	_ = l.Sync()

	if err != nil {
		os.Exit(1)
	}
}

func _dump(cfg *config.Token, l *zap.Logger, rootDir string) error {
	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		return fmt.Errorf("create root dir: %w", err)
	}

	db, err := storage.Open(cfg.DBPath, l)
	if err != nil {
		return err
	}

	defer func() { _ = db.Close() }()

	prm := cfg.Prm()
	prm.Logger = l
	prm.Store = db

	e, err := token.New(prm)
	if err != nil {
		return fmt.Errorf("init token: %w", err)
	}

	st := e.Snapshot()
	id := dump.ID{Label: cfg.DumpLabel, Height: st.Height}

	d, err := dump.NewCreator(rootDir, id)
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	err = d.Write(st)
	if err != nil {
		return fmt.Errorf("write dump: %w", err)
	}

	l.Info("token state is successfully dumped",
		zap.String("dir", rootDir),
		zap.Stringer("id", id),
		zap.String("supply", token.FormatAmount(&st.TotalSupply)),
		zap.Int("balances", len(st.Balances)))

	return nil
}

func restoreDump(cfg *config.Token, l *zap.Logger, rootDir string, id dump.ID) error {
	r, err := dump.Open(rootDir, id)
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}

	db, err := storage.Open(cfg.DBPath, l)
	if err != nil {
		return err
	}

	defer func() { _ = db.Close() }()

	e, err := token.Restore(token.Prm{Logger: l, Store: db}, r.State())
	if err != nil {
		return fmt.Errorf("restore token: %w", err)
	}

	l.Info("token state is successfully restored",
		zap.Stringer("id", id),
		zap.String("path", cfg.DBPath),
		zap.Uint64("height", e.Height()))

	return nil
}
