// Package money parses and formats currency amounts without floating point.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits an amount may carry.
const Scale = 2

// MaxIntegerDigits bounds the integer part of an amount.
const MaxIntegerDigits = 15

const (
	maxInputLen = 40
	minExponent = -20
	maxExponent = MaxIntegerDigits
)

// maxAmount is the smallest magnitude that is out of range.
var maxAmount = decimal.New(1, MaxIntegerDigits)

var (
	ErrInvalidAmount  = errors.New("amount must be a decimal number")
	ErrAmountScale    = fmt.Errorf("amount must have at most %d decimal places", Scale)
	ErrAmountPositive = errors.New("amount must be greater than zero")
	ErrAmountRange    = fmt.Errorf("amount must have at most %d integer digits", MaxIntegerDigits)
)

// Parse converts a decimal string such as "42.50" into a decimal value.
// Surrounding whitespace and small exponents ("1e2") are accepted. Input that
// is not a number is rejected with ErrInvalidAmount, and input whose exponent
// or magnitude is out of range with ErrAmountRange.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if len(s) > maxInputLen {
		return decimal.Zero, ErrAmountRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := checkRange(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// checkRange must run before any arithmetic on d: rescaling a value with a
// huge exponent allocates proportionally.
func checkRange(d decimal.Decimal) error {
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return ErrAmountRange
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return ErrAmountRange
	}
	return nil
}

// Validate checks that d is a positive in-range amount with at most Scale
// fractional digits.
func Validate(d decimal.Decimal) error {
	if err := checkRange(d); err != nil {
		return err
	}
	if !d.IsPositive() {
		return ErrAmountPositive
	}
	if !d.Equal(d.Truncate(Scale)) {
		return ErrAmountScale
	}
	return nil
}

// Format renders d with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Amount is a JSON value that accepts either a string ("42.50") or a number
// (42.5) and always marshals as a fixed two-digit string.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MustAmount parses s and panics on failure. Intended for tests and constants.
func MustAmount(s string) Amount {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return Amount{Decimal: d}
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(Format(a.Decimal))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrInvalidAmount
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidAmount
		}
	}
	d, err := Parse(raw)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// String returns the fixed two-digit representation.
func (a Amount) String() string {
	return Format(a.Decimal)
}
