package policy

import (
	"regexp"
)

// ExclusionCriteria narrows a coverage: an item whose benefit is in the
// excluded set, or whose billing code matches an excluded pattern, is
// not payable even when its benefit is otherwise covered.
type ExclusionCriteria struct {
	ExcludedBenefits      []BenefitType `json:"excludedBenefits,omitempty"`
	ExcludedCodePatterns  []string      `json:"excludedCodePatterns,omitempty"`
	compiledCodeExclusion []*regexp.Regexp
}

func NewExclusionCriteria(benefits []BenefitType, codePatterns []string) (*ExclusionCriteria, error) {
	e := &ExclusionCriteria{
		ExcludedBenefits:     benefits,
		ExcludedCodePatterns: codePatterns,
	}
	if err := e.compile(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ExclusionCriteria) compile() error {
	e.compiledCodeExclusion = e.compiledCodeExclusion[:0]
	for _, p := range e.ExcludedCodePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return err
		}
		e.compiledCodeExclusion = append(e.compiledCodeExclusion, re)
	}
	return nil
}

// Excludes reports whether the item is struck out by these criteria.
func (e *ExclusionCriteria) Excludes(item ClaimableItem, inpatient bool) bool {
	if e == nil {
		return false
	}

	benefit := item.ResolveBenefitType(inpatient)
	for _, excluded := range e.ExcludedBenefits {
		if benefit == excluded {
			return true
		}
	}

	coded, ok := item.(CodedItem)
	if !ok {
		return false
	}
	if len(e.compiledCodeExclusion) != len(e.ExcludedCodePatterns) {
		// Deserialized criteria compile lazily.
		if err := e.compile(); err != nil {
			return false
		}
	}
	for _, re := range e.compiledCodeExclusion {
		if re.MatchString(coded.BillingCode()) {
			return true
		}
	}
	return false
}
