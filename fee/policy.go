/*
Package fee implements the transfer fee policy of the token.

The fee is a share of every transfer expressed in basis points (1/10000).
It is deducted from the transferred amount and credited to the fee
recipient, so transfers never change the total supply.
*/
package fee

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/address"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// MaxRate is the ceiling of the fee rate, 100% in basis points.
const MaxRate = 10_000

var basisPoints = uint256.NewInt(MaxRate)

// Policy holds fee rate and recipient. Zero Policy charges nothing. It is not
// safe for concurrent use.
type Policy struct {
	rate      uint16
	recipient address.Address
}

// New returns Policy with the given configuration, see SetFee.
func New(rate uint16, recipient address.Address) (*Policy, error) {
	var p Policy
	if err := p.SetFee(rate, recipient); err != nil {
		return nil, err
	}
	return &p, nil
}

// Rate returns fee rate in basis points.
func (p *Policy) Rate() uint16 {
	return p.rate
}

// Recipient returns account which receives fees.
func (p *Policy) Recipient() address.Address {
	return p.recipient
}

// SetFee changes fee configuration. Rate above MaxRate, malformed recipient
// and zero recipient with non-zero rate are rejected with
// common.ErrInvalidArgument. Any zero recipient is kept as the empty Address.
func (p *Policy) SetFee(rate uint16, recipient address.Address) error {
	if rate > MaxRate {
		return fmt.Errorf("%w: fee rate %d exceeds %d", common.ErrInvalidArgument, rate, MaxRate)
	}
	if recipient.IsZero() {
		if rate > 0 {
			return fmt.Errorf("%w: zero fee recipient", common.ErrInvalidArgument)
		}
		recipient = address.Address{}
	} else if err := recipient.Valid(); err != nil {
		return fmt.Errorf("fee recipient: %w", err)
	}
	p.rate = rate
	p.recipient = recipient
	return nil
}

// ComputeNet splits amount into the part received by the transfer recipient
// and the fee: fee = floor(amount * rate / 10000), net = amount - fee.
func (p *Policy) ComputeNet(amount *uint256.Int) (net, fee *uint256.Int) {
	fee = Compute(amount, p.rate)
	net = new(uint256.Int).Sub(amount, fee)
	return net, fee
}

// Compute returns floor(amount * rate / 10000) without intermediate
// overflow. Rate must not exceed MaxRate.
func Compute(amount *uint256.Int, rate uint16) *uint256.Int {
	r := uint256.NewInt(uint64(rate))

	res, overflow := new(uint256.Int).MulOverflow(amount, r)
	if !overflow {
		return res.Div(res, basisPoints)
	}

	// amount = q*10000 + m, so amount*rate/10000 = q*rate + m*rate/10000
	q := new(uint256.Int).Div(amount, basisPoints)
	m := new(uint256.Int).Mod(amount, basisPoints)

	q.Mul(q, r)
	m.Mul(m, r)
	m.Div(m, basisPoints)

	return q.Add(q, m)
}
