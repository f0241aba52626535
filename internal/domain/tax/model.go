package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// TaxRule is a tenant-configured tax rate scoped to a jurisdiction. The
// engine applies configured rates as-is.
type TaxRule struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Rate         decimal.Decimal   `json:"rate"`
	Type         types.TaxRuleType `json:"type"`
	Jurisdiction string            `json:"jurisdiction"`

	types.BaseModel
}

// Validate checks the rule's structural invariants.
func (r *TaxRule) Validate() error {
	if r.ID == "" {
		return ierr.NewError("tax rule ID is required").
			WithHint("Provide a valid rule ID").
			Mark(ierr.ErrValidation)
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Rate.IsNegative() {
		return ierr.NewErrorf("tax rate cannot be negative for rule %s", r.ID).
			WithHint("Set a tax rate of 0 or more").
			Mark(ierr.ErrValidation)
	}
	if r.Jurisdiction == "" {
		return ierr.NewErrorf("jurisdiction is required for rule %s", r.ID).
			WithHint("Set the jurisdiction the rate applies in").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsActive reports whether the rule is live configuration.
func (r *TaxRule) IsActive() bool {
	return r.Status == types.StatusPublished
}

// AppliesTo matches jurisdictions case-insensitively.
func (r *TaxRule) AppliesTo(jurisdiction string) bool {
	return strings.EqualFold(r.Jurisdiction, jurisdiction)
}

// AppliedTax records one rule's contribution to a calculation.
type AppliedTax struct {
	RuleID string            `json:"rule_id"`
	Name   string            `json:"name"`
	Type   types.TaxRuleType `json:"type"`
	Rate   decimal.Decimal   `json:"rate"`
	Amount decimal.Decimal   `json:"amount"`
}
