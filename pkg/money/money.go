// Package money provides a fixed-point monetary amount stored as int64
// minor units (cents). Arithmetic is plain integer arithmetic; parsing and
// formatting never go through floating point.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scale is the number of decimal places carried by every Amount.
const Scale = 2

const unitsPerMajor = 100

// ErrInvalidAmount is returned when a string cannot be parsed as a decimal
// amount with at most Scale fractional digits.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Amount is a signed amount in minor units. Amount(3050) renders as "30.50".
type Amount int64

// FromMinorUnits wraps a raw minor-unit value.
func FromMinorUnits(v int64) Amount {
	return Amount(v)
}

// Parse converts a decimal string such as "30", "30.5" or "30.50" into an
// Amount. More than Scale fractional digits, empty input, or any non-digit
// character (besides one leading '-' and one '.') is rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" || len(fracPart) > Scale {
		return 0, ErrInvalidAmount
	}

	// Every accumulation step is guarded so values past the int64 minor-unit
	// range are rejected, never wrapped.
	var units int64
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return 0, ErrInvalidAmount
		}
		d := int64(c - '0')
		if units > (math.MaxInt64-d)/10 {
			return 0, ErrInvalidAmount
		}
		units = units*10 + d
	}
	if units > math.MaxInt64/unitsPerMajor {
		return 0, ErrInvalidAmount
	}
	units *= unitsPerMajor

	mult := int64(unitsPerMajor / 10)
	for _, c := range fracPart {
		if c < '0' || c > '9' {
			return 0, ErrInvalidAmount
		}
		add := int64(c-'0') * mult
		if units > math.MaxInt64-add {
			return 0, ErrInvalidAmount
		}
		units += add
		mult /= 10
	}

	if neg {
		units = -units
	}
	return Amount(units), nil
}

// String renders the amount with exactly Scale decimal places.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/unitsPerMajor, v%unitsPerMajor)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// IsNegative reports whether the amount is strictly less than zero.
func (a Amount) IsNegative() bool { return a < 0 }

// MinorUnits returns the raw minor-unit value.
func (a Amount) MinorUnits() int64 { return int64(a) }

// MarshalJSON renders the amount as a JSON number with two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
// The raw token text is parsed digit-wise so values never round-trip
// through float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
