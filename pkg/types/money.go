package types

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount that encodes as a bare JSON number.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MustMoney parses a literal amount and panics on malformed input.
func MustMoney(value string) Money {
	return Money{Decimal: decimal.RequireFromString(value)}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// Display renders the amount with two decimals for receipts.
func (m Money) Display() string {
	return "$" + m.Decimal.StringFixed(2)
}
