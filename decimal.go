package json

import (
	"github.com/shopspring/decimal"
)

// Decimal re-exports shopspring/decimal's type as the concrete backing
// representation for KindDecimal (spec §3's "arbitrary-precision base-10
// number"). Kept as an alias rather than a wrapper struct so callers can
// use the full shopspring/decimal API (arithmetic, comparisons,
// formatting) directly on values extracted from a JSON.
type Decimal = decimal.Decimal

// NewDecimalFromString parses s as a base-10 decimal literal, preserving
// its scale (e.g. "150" stays "150", not "1.5E+2").
func NewDecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}

// NewDecimalFromInt64 constructs an exact Decimal from an int64.
func NewDecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}
