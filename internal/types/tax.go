package types

import (
	ierr "github.com/deskhive/deskhive/internal/errors"
)

// TaxRuleType classifies a configured tax rate. The engine applies
// configured rates as-is; it makes no attempt at tax-law correctness.
type TaxRuleType string

const (
	TaxRuleTypeVAT      TaxRuleType = "VAT"
	TaxRuleTypeGST      TaxRuleType = "GST"
	TaxRuleTypeSalesTax TaxRuleType = "SALES_TAX"
	TaxRuleTypeCityTax  TaxRuleType = "CITY_TAX"
)

func (t TaxRuleType) Validate() error {
	switch t {
	case TaxRuleTypeVAT, TaxRuleTypeGST, TaxRuleTypeSalesTax, TaxRuleTypeCityTax:
		return nil
	}
	return ierr.NewErrorf("invalid tax rule type '%s'", t).
		WithHint("Use one of: VAT, GST, SALES_TAX, CITY_TAX").
		Mark(ierr.ErrValidation)
}
