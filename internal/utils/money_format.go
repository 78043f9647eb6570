package utils

import "github.com/shopspring/decimal"

// FormatMoney renders an amount with two decimal places, the precision every
// stored monetary value carries.
// Example: 12.3456 returns "12.35", 12 returns "12.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
