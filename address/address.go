/*
Package address implements account identifiers of the token ledger.

An address is a 21-byte value: the network prefix byte followed by the
20-byte account hash. Its text form is base58check (double SHA-256 checksum)
as used by TRON wallets, e.g. TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t. A hex form
prefixed with "41" is accepted on decoding as well.
*/
package address

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	// Prefix is the leading byte of every address.
	Prefix = 0x41
	// Len is the length of the binary address.
	Len = 1 + util.Uint160Size

	checksumLen = 4
)

// Address identifies a ledger account. The zero body (see IsZero) is
// reserved and never holds assets.
type Address [Len]byte

// Zero is the reserved address with an all-zero account hash.
var Zero = FromUint160(util.Uint160{})

// FromUint160 returns an Address for the given account hash.
func FromUint160(h util.Uint160) Address {
	var a Address
	a[0] = Prefix
	copy(a[1:], h[:])
	return a
}

// DecodeBytes decodes binary Address with a valid prefix.
func DecodeBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Len {
		return a, fmt.Errorf("%w: address length %d, expected %d", common.ErrInvalidArgument, len(b), Len)
	}
	if b[0] != Prefix {
		return a, fmt.Errorf("%w: address prefix 0x%02x, expected 0x%02x", common.ErrInvalidArgument, b[0], Prefix)
	}
	copy(a[:], b)
	return a, nil
}

// DecodeString parses the base58check or "41"-prefixed hex text form of an
// Address. Any malformed input yields common.ErrInvalidArgument.
func DecodeString(s string) (Address, error) {
	if len(s) == 2*Len && strings.HasPrefix(s, "41") {
		b, err := hex.DecodeString(s)
		if err != nil {
			return Address{}, fmt.Errorf("%w: decode hex address: %v", common.ErrInvalidArgument, err)
		}
		return DecodeBytes(b)
	}

	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: decode base58 address: %v", common.ErrInvalidArgument, err)
	}
	if len(b) != Len+checksumLen {
		return Address{}, fmt.Errorf("%w: invalid base58 address length %d", common.ErrInvalidArgument, len(b))
	}
	if !bytes.Equal(hash.Checksum(b[:Len]), b[Len:]) {
		return Address{}, fmt.Errorf("%w: address checksum mismatch", common.ErrInvalidArgument)
	}
	return DecodeBytes(b[:Len])
}

// MustDecodeString is like DecodeString but panics on error. It is intended
// for constants and tests.
func MustDecodeString(s string) Address {
	a, err := DecodeString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the base58check form of the Address.
func (a Address) String() string {
	b := make([]byte, 0, Len+checksumLen)
	b = append(b, a[:]...)
	b = append(b, hash.Checksum(a[:])...)
	return base58.Encode(b)
}

// Hex returns the hex form of the Address including the prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Hash returns the account hash part of the Address.
func (a Address) Hash() util.Uint160 {
	var h util.Uint160
	copy(h[:], a[1:])
	return h
}

// IsZero checks whether the account hash is all zeros. An Address with an
// empty prefix is considered zero too.
func (a Address) IsZero() bool {
	return a.Hash().Equals(util.Uint160{})
}

// Valid checks that the Address has the network prefix and a non-zero
// account hash. Invalid addresses are reported with
// common.ErrInvalidArgument.
func (a Address) Valid() error {
	if a[0] != Prefix {
		return fmt.Errorf("%w: address prefix 0x%02x, expected 0x%02x", common.ErrInvalidArgument, a[0], Prefix)
	}
	if a.IsZero() {
		return fmt.Errorf("%w: zero address", common.ErrInvalidArgument)
	}
	return nil
}

// Compare returns an integer comparing two addresses lexicographically.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	v, err := DecodeString(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
