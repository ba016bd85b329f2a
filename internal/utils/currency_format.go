package utils

import (
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places used for payable amounts.
const CurrencyPrecision = 2

// RoundCurrency rounds an amount half away from zero to currency precision.
// Example: 33.3333 returns 33.33, 16.665 returns 16.67
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPrecision)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatCurrency formats an amount with currency precision, always showing both decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, CurrencyPrecision)
}
