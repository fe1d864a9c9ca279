// Package config reads token settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/token"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Token groups settings of the token node.
type Token struct {
	Name   string `env:"TOKEN_NAME"   envDefault:"Tether USD"`
	Symbol string `env:"TOKEN_SYMBOL" envDefault:"USDT"`

	// Whole tokens issued to the Owner on creation, e.g. "1000000000" or
	// "0.5".
	InitialSupply string `env:"TOKEN_INITIAL_SUPPLY" envDefault:"1000000000"`

	// Required to create a new token only.
	Owner address.Address `env:"TOKEN_OWNER"`

	DBPath    string        `env:"TOKEN_DB_PATH"    envDefault:"data/token"`
	LogLevel  zapcore.Level `env:"TOKEN_LOG_LEVEL"  envDefault:"info"`
	DumpLabel string        `env:"TOKEN_DUMP_LABEL" envDefault:"local"`

	supply *uint256.Int
}

// Parse loads Token from environment variables and validates it.
func Parse() (*Token, error) {
	var cfg Token
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	supply, err := token.ParseAmount(cfg.InitialSupply)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_INITIAL_SUPPLY: %w", err)
	}
	cfg.supply = supply

	return &cfg, nil
}

// Logger returns production zap.Logger writing at the configured level.
func (c *Token) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	zc.Encoding = "console"

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l, nil
}

// Prm returns token.Prm with the configured token parameters.
func (c *Token) Prm() token.Prm {
	return token.Prm{
		Name:          c.Name,
		Symbol:        c.Symbol,
		Owner:         c.Owner,
		InitialSupply: c.supply,
	}
}
