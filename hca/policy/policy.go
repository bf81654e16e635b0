package policy

import (
	"encoding/json"
	"regexp"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
)

// policyNumberPattern: <PREFIX>-<10-digit-id>-<suffix>.
var policyNumberPattern = regexp.MustCompile(`^(GOVT|PRIV)-\d{10}-.*$`)

// ProviderRef identifies the issuing provider by value so that policy
// records round-trip through JSON without referencing provider
// internals.
type ProviderRef struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type InsurancePolicy struct {
	PolicyNumber string
	PolicyHolder models.Patient
	Provider     ProviderRef
	Coverage     Coverage
}

func NewInsurancePolicy(policyNumber string, holder models.Patient,
	provider ProviderRef, coverage Coverage) (*InsurancePolicy, error) {

	if !policyNumberPattern.MatchString(policyNumber) {
		return nil, &errors.ValidationError{Field: "policyNumber", Msg: "must match <PREFIX>-<10 digits>-<suffix>"}
	}
	if holder.PatientID == "" {
		return nil, &errors.ValidationError{Field: "policyHolder", Msg: "must identify a patient"}
	}
	if provider.Kind == "" || provider.Name == "" {
		return nil, &errors.ValidationError{Field: "provider", Msg: "must name the issuing provider"}
	}
	if coverage == nil {
		return nil, &errors.ValidationError{Field: "coverage", Msg: "must not be nil"}
	}

	return &InsurancePolicy{
		PolicyNumber: policyNumber,
		PolicyHolder: holder,
		Provider:     provider,
		Coverage:     coverage,
	}, nil
}

func ValidPolicyNumber(policyNumber string) bool {
	return policyNumberPattern.MatchString(policyNumber)
}

type policyJSON struct {
	PolicyNumber string          `json:"policyNumber"`
	PolicyHolder models.Patient  `json:"policyHolder"`
	Provider     ProviderRef     `json:"provider"`
	Coverage     json.RawMessage `json:"coverage"`
}

func (p *InsurancePolicy) MarshalJSON() ([]byte, error) {
	coverage, err := MarshalCoverage(p.Coverage)
	if err != nil {
		return nil, err
	}
	return json.Marshal(policyJSON{
		PolicyNumber: p.PolicyNumber,
		PolicyHolder: p.PolicyHolder,
		Provider:     p.Provider,
		Coverage:     coverage,
	})
}

func (p *InsurancePolicy) UnmarshalJSON(data []byte) error {
	var raw policyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	coverage, err := UnmarshalCoverage(raw.Coverage)
	if err != nil {
		return err
	}
	p.PolicyNumber = raw.PolicyNumber
	p.PolicyHolder = raw.PolicyHolder
	p.Provider = raw.Provider
	p.Coverage = coverage
	return nil
}
