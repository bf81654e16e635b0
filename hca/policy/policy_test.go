package policy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPatient() models.Patient {
	return models.Patient{
		Person: models.Person{
			Name:        "Lim Hui Ling",
			Sex:         "F",
			DateOfBirth: time.Date(1990, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		PatientID:         "P2000001",
		ResidentialStatus: models.Citizen,
	}
}

func testCoverage(t *testing.T) Coverage {
	coverage, err := NewBaseCoverage("TestPlan", []BenefitType{Hospitalization},
		decimal.NewFromInt(500), mustLimit(t, 10000, 100000), nil)
	require.Nil(t, err)
	return coverage
}

func TestNewInsurancePolicy(t *testing.T) {
	p, err := NewInsurancePolicy("GOVT-0000000042-P2000001", testPatient(),
		ProviderRef{Kind: "GOVERNMENT", Name: "National Insurer"}, testCoverage(t))
	require.Nil(t, err)
	assert.Equal(t, "GOVT-0000000042-P2000001", p.PolicyNumber)
}

func TestNewInsurancePolicyValidation(t *testing.T) {
	coverage := testCoverage(t)
	provider := ProviderRef{Kind: "GOVERNMENT", Name: "National Insurer"}

	tests := []struct {
		name         string
		policyNumber string
		holder       models.Patient
		provider     ProviderRef
		coverage     Coverage
	}{
		{"bad number shape", "GOVT-42-P1", testPatient(), provider, coverage},
		{"bad prefix", "ACME-0000000042-P1", testPatient(), provider, coverage},
		{"no holder", "GOVT-0000000042-P1", models.Patient{}, provider, coverage},
		{"no provider", "GOVT-0000000042-P1", testPatient(), ProviderRef{}, coverage},
		{"nil coverage", "GOVT-0000000042-P1", testPatient(), provider, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInsurancePolicy(tt.policyNumber, tt.holder, tt.provider, tt.coverage)
			var vErr *errors.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestValidPolicyNumber(t *testing.T) {
	assert.True(t, ValidPolicyNumber("PRIV-1234567890-P1"))
	assert.True(t, ValidPolicyNumber("GOVT-0000000001-anything at all"))
	assert.False(t, ValidPolicyNumber("PRIV-12345-P1"))
	assert.False(t, ValidPolicyNumber("priv-1234567890-P1"))
}

func TestInsurancePolicyRoundTrip(t *testing.T) {
	p, err := NewInsurancePolicy("PRIV-1234567890-P2000001", testPatient(),
		ProviderRef{Kind: "PRIVATE", Name: "Shield Mutual"}, testCoverage(t))
	require.Nil(t, err)

	first, err := json.Marshal(p)
	require.Nil(t, err)

	var decoded InsurancePolicy
	require.Nil(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, p.PolicyNumber, decoded.PolicyNumber)
	assert.Equal(t, p.PolicyHolder.PatientID, decoded.PolicyHolder.PatientID)
	assert.Equal(t, p.Provider, decoded.Provider)

	second, err := json.Marshal(&decoded)
	require.Nil(t, err)
	assert.JSONEq(t, string(first), string(second))
}
