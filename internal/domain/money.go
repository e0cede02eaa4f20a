package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
	half          = decimal.New(5, -1)
)

// Money is an amount of minor currency units (piasters, cents) in a given currency.
// Example: 10.50 USD is stored as Money{Amount: 1050, Currency: "USD"}.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney creates a new Money value.
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	if (other.Amount > 0 && m.Amount > math.MaxInt64-other.Amount) ||
		(other.Amount < 0 && m.Amount < math.MinInt64-other.Amount) {
		return Money{}, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, m.Amount, other.Amount)
	}

	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other. Both operands must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	if (other.Amount < 0 && m.Amount > math.MaxInt64+other.Amount) ||
		(other.Amount > 0 && m.Amount < math.MinInt64+other.Amount) {
		return Money{}, fmt.Errorf("%w: %d - %d", ErrAmountOverflow, m.Amount, other.Amount)
	}

	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// MultiplyByRate multiplies the amount by an exact decimal rate and rounds
// the product to the nearest minor unit, half up. The result keeps m's currency;
// callers relabel it when the rate converts between currencies.
func (m Money) MultiplyByRate(rate decimal.Decimal) (Money, error) {
	product := decimal.NewFromInt(m.Amount).Mul(rate)
	rounded := product.Add(half).Floor()

	if rounded.GreaterThan(maxMinorUnits) || rounded.LessThan(minMinorUnits) {
		return Money{}, fmt.Errorf("%w: %d x %s", ErrAmountOverflow, m.Amount, rate)
	}

	return Money{Amount: rounded.IntPart(), Currency: m.Currency}, nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// Cmp compares amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.Amount < other.Amount:
		return -1
	case m.Amount > other.Amount:
		return 1
	default:
		return 0
	}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
