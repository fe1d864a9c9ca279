package token

import (
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
)

// Kind enumerates token operations.
type Kind uint8

// Operation kinds.
const (
	KindTransfer Kind = iota + 1
	KindTransferFrom
	KindApproval
	KindMint
	KindBurn
	KindPause
	KindUnpause
	KindBlacklisted
	KindUnblacklisted
	KindFeeChanged
	KindOwnershipTransferred
)

var kindNames = map[Kind]string{
	KindTransfer:             "Transfer",
	KindTransferFrom:         "TransferFrom",
	KindApproval:             "Approval",
	KindMint:                 "Mint",
	KindBurn:                 "Burn",
	KindPause:                "Pause",
	KindUnpause:              "Unpause",
	KindBlacklisted:          "Blacklisted",
	KindUnblacklisted:        "Unblacklisted",
	KindFeeChanged:           "FeeChanged",
	KindOwnershipTransferred: "OwnershipTransferred",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// administrative checks whether only the token owner may perform operations
// of the Kind.
func (k Kind) administrative() bool {
	return k >= KindMint
}

// Event describes an applied token operation.
type Event struct {
	// Random unique identifier of the Event.
	ID uuid.UUID
	// Token height after the operation, starts from 1.
	Height uint64
	Kind   Kind

	Operator address.Address
	From     address.Address
	To       address.Address

	Amount  uint256.Int
	Fee     uint256.Int
	FeeRate uint16
}
