package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrecision applies to currencies not present in the
// precision table.
const DefaultCurrencyPrecision int32 = 2

// currencyPrecision maps ISO currency codes to the number of decimal places
// amounts are billed in. Only zero- and three-decimal currencies need
// listing; everything else uses the default.
var currencyPrecision = map[string]int32{
	// zero-decimal currencies
	"jpy": 0,
	"krw": 0,
	"vnd": 0,
	"clp": 0,
	"isk": 0,

	// three-decimal currencies
	"bhd": 3,
	"kwd": 3,
	"omr": 3,
	"tnd": 3,
}

// GetCurrencyPrecision returns the billing precision for a currency code.
// The lookup is case-insensitive; unknown currencies get the default.
func GetCurrencyPrecision(currency string) int32 {
	if precision, ok := currencyPrecision[strings.ToLower(currency)]; ok {
		return precision
	}
	return DefaultCurrencyPrecision
}

// RoundToCurrencyPrecision rounds an amount to the currency's billing
// precision using half-up rounding.
func RoundToCurrencyPrecision(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(GetCurrencyPrecision(currency))
}
