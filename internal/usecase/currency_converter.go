package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/walletledger/internal/domain"
)

// DefaultRates returns the static rate table to EGP used when none is configured.
func DefaultRates() map[string]string {
	return map[string]string{
		"USD": "48.17",
		"EUR": "56.55",
	}
}

// CurrencyConverter normalizes amounts to the base currency using a static
// rate table. It holds no mutable state and is safe for concurrent use.
type CurrencyConverter struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewCurrencyConverter creates a converter for base from rates expressed as
// "one unit of code = rate units of base". The base currency always has rate 1.
func NewCurrencyConverter(base string, rates map[string]string) (*CurrencyConverter, error) {
	base, err := domain.NormalizeCurrencyCode(base)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]decimal.Decimal, len(rates)+1)
	for code, raw := range rates {
		code, err := domain.NormalizeCurrencyCode(code)
		if err != nil {
			return nil, err
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}

		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: must be positive, got %s", code, rate)
		}

		parsed[code] = rate
	}

	parsed[base] = decimal.NewFromInt(1)

	return &CurrencyConverter{base: base, rates: parsed}, nil
}

// Base returns the ledger currency.
func (c *CurrencyConverter) Base() string {
	return c.base
}

// Rate returns the rate from code to the base currency.
func (c *CurrencyConverter) Rate(code string) (decimal.Decimal, error) {
	normalized, err := domain.NormalizeCurrencyCode(code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, code)
	}

	rate, ok := c.rates[normalized]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, normalized)
	}

	return rate, nil
}

// Convert returns amount (minor units of from) expressed in minor units of the base currency.
func (c *CurrencyConverter) Convert(amount int64, from string) (int64, error) {
	rate, err := c.Rate(from)
	if err != nil {
		return 0, err
	}

	if rate.Equal(decimal.NewFromInt(1)) {
		return amount, nil
	}

	converted, err := domain.NewMoney(amount, from).MultiplyByRate(rate)
	if err != nil {
		return 0, err
	}

	return converted.Amount, nil
}

// Currencies lists the supported codes in sorted order.
func (c *CurrencyConverter) Currencies() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
