package common

import "errors"

var (
	// ErrUnauthorized appears when an administrative method is called by an
	// account other than the token owner.
	ErrUnauthorized = errors.New("only owner can call this function")
	// ErrPaused appears when a transfer is attempted while the token is
	// paused.
	ErrPaused = errors.New("token is paused")
	// ErrBlacklisted appears when a blacklisted account participates in a
	// transfer.
	ErrBlacklisted = errors.New("account is blacklisted")
	// ErrInsufficientBalance appears when an account has not enough assets
	// to be debited.
	ErrInsufficientBalance = errors.New("not enough assets")
	// ErrInsufficientAllowance appears when a spender tries to move more
	// than it was approved for.
	ErrInsufficientAllowance = errors.New("allowance exceeded")
	// ErrOverflow appears when an amount would not fit into 256 bits.
	ErrOverflow = errors.New("amount overflow")
	// ErrInvalidArgument appears on zero or malformed addresses, fee rates
	// out of range and disallowed zero amounts.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Code is a machine-readable error code.
type Code string

// Known error codes. CodeOK is returned for nil errors.
const (
	CodeOK                    Code = "OK"
	CodeUnknown               Code = "UNKNOWN"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodePaused                Code = "PAUSED"
	CodeBlacklisted           Code = "BLACKLISTED"
	CodeInsufficientBalance   Code = "INSUFFICIENT_BALANCE"
	CodeInsufficientAllowance Code = "INSUFFICIENT_ALLOWANCE"
	CodeOverflow              Code = "OVERFLOW"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrUnauthorized, CodeUnauthorized},
	{ErrPaused, CodePaused},
	{ErrBlacklisted, CodeBlacklisted},
	{ErrInsufficientBalance, CodeInsufficientBalance},
	{ErrInsufficientAllowance, CodeInsufficientAllowance},
	{ErrOverflow, CodeOverflow},
	{ErrInvalidArgument, CodeInvalidArgument},
}

// GetCode extracts the error code from any error. It returns CodeUnknown if
// the error does not wrap any of the package errors.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	for i := range codes {
		if errors.Is(err, codes[i].err) {
			return codes[i].code
		}
	}
	return CodeUnknown
}
