package token

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/houssamboudiar/mockusdt-tron/common"
)

// ParseAmount converts decimal token amount like "1.5" into minor units.
// More than Decimals fractional digits are rejected.
func ParseAmount(s string) (*uint256.Int, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: empty amount", common.ErrInvalidArgument)
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("%w: amount '%s' has more than %d decimals", common.ErrInvalidArgument, s, Decimals)
	}

	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	for i := range digits {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, fmt.Errorf("%w: invalid amount '%s'", common.ErrInvalidArgument, s)
		}
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(uint256.Int), nil
	}

	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: amount '%s': %v", common.ErrOverflow, s, err)
	}

	return v, nil
}

// FormatAmount converts minor units into decimal token amount without
// trailing zeros, e.g. 1500000 into "1.5".
func FormatAmount(v *uint256.Int) string {
	s := v.Dec()
	if len(s) <= Decimals {
		s = strings.Repeat("0", Decimals-len(s)+1) + s
	}

	whole, frac := s[:len(s)-Decimals], strings.TrimRight(s[len(s)-Decimals:], "0")
	if frac == "" {
		return whole
	}

	return whole + "." + frac
}
