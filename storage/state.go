package storage

import (
	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/ledger"
)

// State groups everything that describes the token at some point.
type State struct {
	Name     string
	Symbol   string
	Decimals uint8

	// Number of operations applied since the token creation.
	Height uint64

	Owner     address.Address
	Paused    bool
	Blacklist []address.Address

	FeeRate      uint16
	FeeRecipient address.Address

	TotalSupply uint256.Int
	Balances    []ledger.Balance
	Allowances  []ledger.Allowance
}

// Fee is a transfer fee configuration.
type Fee struct {
	Rate      uint16
	Recipient address.Address
}

// ChangeSet describes changes made by a single token operation. Nil fields
// are left as is.
type ChangeSet struct {
	Height uint64

	Owner  *address.Address
	Paused *bool
	Fee    *Fee

	// Blacklisted and unblacklisted accounts.
	Blacklist map[address.Address]bool

	// Total supply is written only when set.
	TotalSupply *uint256.Int
	// Zero amounts remove balances.
	Balances []ledger.Balance
	// Zero amounts remove allowances.
	Allowances []ledger.Allowance
}
