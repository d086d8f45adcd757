package dto

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MoneyPlaces matches the decimal(12,2) money columns.
const MoneyPlaces = 2

// Money renders a decimal with exactly two places ("10.00", not "10").
// Decoding accepts anything decimal.Decimal accepts.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(MoneyPlaces))), nil
}
