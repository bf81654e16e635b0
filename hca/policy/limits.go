package policy

import (
	"github.com/openhms/hca-app/hca/errors"
	"github.com/shopspring/decimal"
)

// CoverageLimit caps insurer payouts per policy year and over the
// policy lifetime.
type CoverageLimit struct {
	AnnualLimit   decimal.Decimal `json:"annualLimit"`
	LifetimeLimit decimal.Decimal `json:"lifetimeLimit"`
}

func NewCoverageLimit(annual, lifetime decimal.Decimal) (CoverageLimit, error) {
	l := CoverageLimit{AnnualLimit: annual, LifetimeLimit: lifetime}
	if err := l.Validate(); err != nil {
		return CoverageLimit{}, err
	}
	return l, nil
}

// Validate enforces annual > 0 and lifetime >= annual.
func (l CoverageLimit) Validate() error {
	if !l.AnnualLimit.IsPositive() {
		return &errors.ValidationError{Field: "annualLimit", Msg: "must be positive"}
	}
	if !l.LifetimeLimit.IsPositive() {
		return &errors.ValidationError{Field: "lifetimeLimit", Msg: "must be positive"}
	}
	if l.LifetimeLimit.LessThan(l.AnnualLimit) {
		return &errors.ValidationError{Field: "lifetimeLimit", Msg: "must be at least the annual limit"}
	}
	return nil
}
