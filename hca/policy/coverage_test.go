package policy

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItem struct {
	code    string
	charges decimal.Decimal
	benefit BenefitType
}

func (f fakeItem) Charges() decimal.Decimal              { return f.charges }
func (f fakeItem) ResolveBenefitType(_ bool) BenefitType { return f.benefit }
func (f fakeItem) BenefitDescription(_ bool) string      { return string(f.benefit) }
func (f fakeItem) BillingCode() string                   { return f.code }

func mustLimit(t *testing.T, annual, lifetime int64) CoverageLimit {
	l, err := NewCoverageLimit(decimal.NewFromInt(annual), decimal.NewFromInt(lifetime))
	require.Nil(t, err)
	return l
}

func TestCoverageLimitValidate(t *testing.T) {
	tests := []struct {
		name     string
		annual   int64
		lifetime int64
		valid    bool
	}{
		{"ok", 100, 1000, true},
		{"equal limits ok", 100, 100, true},
		{"zero annual", 0, 1000, false},
		{"lifetime below annual", 1000, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CoverageLimit{
				AnnualLimit:   decimal.NewFromInt(tt.annual),
				LifetimeLimit: decimal.NewFromInt(tt.lifetime),
			}
			if tt.valid {
				assert.Nil(t, l.Validate())
			} else {
				assert.NotNil(t, l.Validate())
			}
		})
	}
}

func TestBaseCoverageItemCovered(t *testing.T) {
	exclusions, err := NewExclusionCriteria([]BenefitType{Dental}, []string{`^EXCL-.*`})
	require.Nil(t, err)

	coverage, err := NewBaseCoverage("TestPlan",
		[]BenefitType{Hospitalization, Dental, Surgery},
		decimal.NewFromInt(500), mustLimit(t, 10000, 100000), exclusions)
	require.Nil(t, err)

	covered := fakeItem{code: "W-001", charges: decimal.NewFromInt(100), benefit: Hospitalization}
	assert.True(t, coverage.IsItemCovered(covered, true))

	uncoveredBenefit := fakeItem{code: "W-002", charges: decimal.NewFromInt(100), benefit: Maternity}
	assert.False(t, coverage.IsItemCovered(uncoveredBenefit, true))

	excludedBenefit := fakeItem{code: "W-003", charges: decimal.NewFromInt(100), benefit: Dental}
	assert.False(t, coverage.IsItemCovered(excludedBenefit, true))

	excludedCode := fakeItem{code: "EXCL-9", charges: decimal.NewFromInt(100), benefit: Surgery}
	assert.False(t, coverage.IsItemCovered(excludedCode, true))
}

func TestCompositeCoverage(t *testing.T) {
	base, err := NewBaseCoverage("Base", []BenefitType{Hospitalization},
		decimal.NewFromInt(1500), mustLimit(t, 150000, 2000000), nil)
	require.Nil(t, err)

	supplement, err := NewBaseCoverage("Supplement", []BenefitType{ChronicConditions},
		decimal.NewFromInt(250), mustLimit(t, 200000, 2000000), nil)
	require.Nil(t, err)

	composite, err := NewCompositeCoverage("BaseWithSupplement", base, supplement)
	require.Nil(t, err)

	assert.True(t, composite.IsBenefitCovered(Hospitalization))
	assert.True(t, composite.IsBenefitCovered(ChronicConditions))
	assert.False(t, composite.IsBenefitCovered(Dental))

	assert.True(t, composite.DeductibleAmount().Equal(decimal.NewFromInt(250)))
	assert.True(t, composite.Limits().AnnualLimit.Equal(decimal.NewFromInt(200000)))
	assert.True(t, composite.Limits().LifetimeLimit.Equal(decimal.NewFromInt(2000000)))
}

func TestCoverageRoundTrip(t *testing.T) {
	base, err := NewBaseCoverage("Base", []BenefitType{Hospitalization, Surgery},
		decimal.NewFromInt(1500), mustLimit(t, 150000, 2000000), nil)
	require.Nil(t, err)

	supplement, err := NewBaseCoverage("Supplement", []BenefitType{ChronicConditions},
		decimal.NewFromInt(250), mustLimit(t, 200000, 2000000), nil)
	require.Nil(t, err)

	composite, err := NewCompositeCoverage("BaseWithSupplement", base, supplement)
	require.Nil(t, err)

	first, err := MarshalCoverage(composite)
	require.Nil(t, err)

	decoded, err := UnmarshalCoverage(first)
	require.Nil(t, err)
	require.Equal(t, "composite", decoded.CoverageType())

	second, err := MarshalCoverage(decoded)
	require.Nil(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestUnmarshalCoverageUnknownType(t *testing.T) {
	raw, err := json.Marshal(map[string]interface{}{"coverageType": "mystery", "plan": map[string]string{}})
	require.Nil(t, err)

	_, err = UnmarshalCoverage(raw)
	assert.NotNil(t, err)
}
