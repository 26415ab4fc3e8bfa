package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of decimal places between the native unit and wei.
const NativeDecimals = 18

// GweiDecimals is the number of decimal places between gwei and wei.
const GweiDecimals = 9

var (
	ErrEmptyAmount     = errors.New("amount is empty")
	ErrNegativeAmount  = errors.New("amount is negative")
	ErrAmountPrecision = errors.New("amount has more than 18 decimal places")
)

// ParseNative converts a decimal string in the native unit (e.g. "0.05") to wei.
// Never goes through floating point.
func ParseNative(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	wei := d.Shift(NativeDecimals)
	if !wei.IsInteger() {
		return nil, ErrAmountPrecision
	}
	return wei.BigInt(), nil
}

// MustParseNative is ParseNative for compile-time constants.
func MustParseNative(s string) *big.Int {
	v, err := ParseNative(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatNative renders a wei amount in the native unit without trailing zeros.
func FormatNative(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -NativeDecimals).String()
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -GweiDecimals).String()
}

// ParseWei parses a base-10 integer string in wei, as stored in policies and tracking.
func ParseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	return v, nil
}
