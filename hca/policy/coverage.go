package policy

import (
	"encoding/json"
	"fmt"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/shopspring/decimal"
)

const (
	coverageTypeBase      = "base"
	coverageTypeComposite = "composite"
)

// Coverage answers whether a claimable item is payable under a plan
// and exposes the plan's deductible and payout limits.
type Coverage interface {
	CoverageType() string
	PlanName() string
	IsItemCovered(item ClaimableItem, inpatient bool) bool
	IsBenefitCovered(benefit BenefitType) bool
	DeductibleAmount() decimal.Decimal
	Limits() CoverageLimit
}

// BaseCoverage is a single plan: a covered-benefit set, a deductible,
// limits, and optional exclusion criteria.
type BaseCoverage struct {
	Name            string             `json:"name"`
	CoveredBenefits []BenefitType      `json:"coveredBenefits"`
	Deductible      decimal.Decimal    `json:"deductible"`
	CoverageLimits  CoverageLimit      `json:"limits"`
	Exclusions      *ExclusionCriteria `json:"exclusions,omitempty"`
}

var _ Coverage = &BaseCoverage{}

func NewBaseCoverage(name string, benefits []BenefitType, deductible decimal.Decimal,
	limits CoverageLimit, exclusions *ExclusionCriteria) (*BaseCoverage, error) {

	if name == "" {
		return nil, &errors.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if deductible.IsNegative() {
		return nil, &errors.ValidationError{Field: "deductible", Msg: "must not be negative"}
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	return &BaseCoverage{
		Name:            name,
		CoveredBenefits: benefits,
		Deductible:      deductible,
		CoverageLimits:  limits,
		Exclusions:      exclusions,
	}, nil
}

func (c *BaseCoverage) CoverageType() string { return coverageTypeBase }
func (c *BaseCoverage) PlanName() string     { return c.Name }

func (c *BaseCoverage) IsBenefitCovered(benefit BenefitType) bool {
	for _, covered := range c.CoveredBenefits {
		if covered == benefit {
			return true
		}
	}
	return false
}

func (c *BaseCoverage) IsItemCovered(item ClaimableItem, inpatient bool) bool {
	if !c.IsBenefitCovered(item.ResolveBenefitType(inpatient)) {
		return false
	}
	return !c.Exclusions.Excludes(item, inpatient)
}

func (c *BaseCoverage) DeductibleAmount() decimal.Decimal { return c.Deductible }
func (c *BaseCoverage) Limits() CoverageLimit             { return c.CoverageLimits }

// CompositeCoverage layers a supplement plan over a base plan. An item
// is covered when any component covers it. The deductible is the
// lowest component deductible; each limit is the highest among the
// components, since the supplement extends rather than restricts.
type CompositeCoverage struct {
	Name       string     `json:"name"`
	Components []Coverage `json:"components"`
}

var _ Coverage = &CompositeCoverage{}

func NewCompositeCoverage(name string, components ...Coverage) (*CompositeCoverage, error) {
	if name == "" {
		return nil, &errors.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if len(components) == 0 {
		return nil, &errors.ValidationError{Field: "components", Msg: "must not be empty"}
	}
	return &CompositeCoverage{Name: name, Components: components}, nil
}

func (c *CompositeCoverage) CoverageType() string { return coverageTypeComposite }
func (c *CompositeCoverage) PlanName() string     { return c.Name }

func (c *CompositeCoverage) IsBenefitCovered(benefit BenefitType) bool {
	for _, component := range c.Components {
		if component.IsBenefitCovered(benefit) {
			return true
		}
	}
	return false
}

func (c *CompositeCoverage) IsItemCovered(item ClaimableItem, inpatient bool) bool {
	for _, component := range c.Components {
		if component.IsItemCovered(item, inpatient) {
			return true
		}
	}
	return false
}

func (c *CompositeCoverage) DeductibleAmount() decimal.Decimal {
	deductible := c.Components[0].DeductibleAmount()
	for _, component := range c.Components[1:] {
		if d := component.DeductibleAmount(); d.LessThan(deductible) {
			deductible = d
		}
	}
	return deductible
}

func (c *CompositeCoverage) Limits() CoverageLimit {
	limits := c.Components[0].Limits()
	for _, component := range c.Components[1:] {
		l := component.Limits()
		if l.AnnualLimit.GreaterThan(limits.AnnualLimit) {
			limits.AnnualLimit = l.AnnualLimit
		}
		if l.LifetimeLimit.GreaterThan(limits.LifetimeLimit) {
			limits.LifetimeLimit = l.LifetimeLimit
		}
	}
	return limits
}

type coverageEnvelope struct {
	CoverageType string          `json:"coverageType"`
	Plan         json.RawMessage `json:"plan"`
}

// MarshalCoverage wraps a coverage value in a typed envelope so the
// concrete plan shape survives a round trip.
func MarshalCoverage(c Coverage) ([]byte, error) {
	plan, err := marshalCoveragePlan(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(coverageEnvelope{CoverageType: c.CoverageType(), Plan: plan})
}

func marshalCoveragePlan(c Coverage) (json.RawMessage, error) {
	switch plan := c.(type) {
	case *BaseCoverage:
		return json.Marshal(plan)
	case *CompositeCoverage:
		rawComponents := make([]json.RawMessage, 0, len(plan.Components))
		for _, component := range plan.Components {
			raw, err := MarshalCoverage(component)
			if err != nil {
				return nil, err
			}
			rawComponents = append(rawComponents, raw)
		}
		return json.Marshal(struct {
			Name       string            `json:"name"`
			Components []json.RawMessage `json:"components"`
		}{Name: plan.Name, Components: rawComponents})
	default:
		return nil, fmt.Errorf("unknown coverage type %T", c)
	}
}

// UnmarshalCoverage reverses MarshalCoverage.
func UnmarshalCoverage(data []byte) (Coverage, error) {
	var envelope coverageEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	switch envelope.CoverageType {
	case coverageTypeBase:
		var plan BaseCoverage
		if err := json.Unmarshal(envelope.Plan, &plan); err != nil {
			return nil, err
		}
		return &plan, nil
	case coverageTypeComposite:
		var raw struct {
			Name       string            `json:"name"`
			Components []json.RawMessage `json:"components"`
		}
		if err := json.Unmarshal(envelope.Plan, &raw); err != nil {
			return nil, err
		}
		plan := &CompositeCoverage{Name: raw.Name}
		for _, rawComponent := range raw.Components {
			component, err := UnmarshalCoverage(rawComponent)
			if err != nil {
				return nil, err
			}
			plan.Components = append(plan.Components, component)
		}
		return plan, nil
	default:
		return nil, fmt.Errorf("unknown coverage type %q", envelope.CoverageType)
	}
}
