package claims

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/codes"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPatient() models.Patient {
	return models.Patient{
		Person: models.Person{
			Name:        "Chua Mei Lin",
			Sex:         "F",
			DateOfBirth: time.Date(1988, 11, 5, 0, 0, 0, 0, time.UTC),
		},
		PatientID:         "P4000001",
		ResidentialStatus: models.Citizen,
	}
}

func testProviderRef() policy.ProviderRef {
	return policy.ProviderRef{Kind: "GOVERNMENT", Name: "National Insurer"}
}

func testPolicy(t *testing.T) *policy.InsurancePolicy {
	limits, err := policy.NewCoverageLimit(decimal.NewFromInt(150000), decimal.NewFromInt(2000000))
	require.Nil(t, err)
	coverage, err := policy.NewBaseCoverage("MediShield",
		[]policy.BenefitType{policy.Hospitalization, policy.CriticalIllness},
		decimal.NewFromInt(1500), limits, nil)
	require.Nil(t, err)
	p, err := policy.NewInsurancePolicy("GOVT-0000000007-P4000001", testPatient(),
		testProviderRef(), coverage)
	require.Nil(t, err)
	return p
}

func testBill(t *testing.T) *billing.Bill {
	bill, err := billing.NewBill(testPatient())
	require.Nil(t, err)
	item := &codes.DiagnosticCode{
		CategoryCode: "I21", FullCode: "I219",
		FullDescription: "Acute myocardial infarction unspecified",
		UnitPrice:       decimal.NewFromInt(250),
	}
	require.Nil(t, bill.AddLineItem(item, 1))
	require.Nil(t, bill.Finalize())
	return bill
}

func newDraftClaim(t *testing.T) *InsuranceClaim {
	bill := testBill(t)
	claim, err := CreateNew(bill, testProviderRef(), testPolicy(t), testPatient(), bill.TotalAmount())
	require.Nil(t, err)
	return claim
}

func TestCreateNew(t *testing.T) {
	claim := newDraftClaim(t)
	assert.True(t, claim.IsDraft())
	assert.Regexp(t, regexp.MustCompile(`^CLM-\d{8}-\d{4}$`), claim.ClaimID())
	assert.True(t, claim.ClaimedAmount().Equal(decimal.NewFromInt(250)))
	assert.True(t, claim.PayableAmount().IsZero())
}

func TestCreateNewValidation(t *testing.T) {
	bill := testBill(t)
	pol := testPolicy(t)
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		bill     *billing.Bill
		provider policy.ProviderRef
		policy   *policy.InsurancePolicy
		patient  models.Patient
		amount   decimal.Decimal
	}{
		{"nil bill", nil, testProviderRef(), pol, testPatient(), amount},
		{"empty provider", bill, policy.ProviderRef{}, pol, testPatient(), amount},
		{"nil policy", bill, testProviderRef(), nil, testPatient(), amount},
		{"empty patient", bill, testProviderRef(), pol, models.Patient{}, amount},
		{"negative amount", bill, testProviderRef(), pol, testPatient(), decimal.NewFromInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateNew(tt.bill, tt.provider, tt.policy, tt.patient, tt.amount)
			var vErr *errors.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestSubmitLifecycle(t *testing.T) {
	claim := newDraftClaim(t)

	require.Nil(t, claim.Submit())
	assert.True(t, claim.IsSubmitted())

	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, claim.Submit(), &stateErr)
	assert.True(t, claim.IsSubmitted())
}

func TestApprove(t *testing.T) {
	claim := newDraftClaim(t)

	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, claim.Approve(decimal.NewFromInt(100)), &stateErr)

	require.Nil(t, claim.Submit())
	require.Nil(t, claim.Approve(decimal.NewFromInt(100)))
	assert.True(t, claim.IsApproved())
	assert.True(t, claim.PayableAmount().Equal(decimal.NewFromInt(100)))

	assert.ErrorAs(t, claim.Submit(), &stateErr)
	assert.ErrorAs(t, claim.Reject("no"), &stateErr)
	assert.True(t, claim.IsApproved())
}

func TestReject(t *testing.T) {
	claim := newDraftClaim(t)
	require.Nil(t, claim.Submit())
	require.Nil(t, claim.Reject("limits exhausted"))

	assert.True(t, claim.IsRejected())
	assert.True(t, claim.PayableAmount().IsZero())
	assert.Equal(t, "limits exhausted", claim.Comments())

	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, claim.Approve(decimal.NewFromInt(1)), &stateErr)
}

func TestDocumentsAndComments(t *testing.T) {
	claim := newDraftClaim(t)

	require.Nil(t, claim.AddSupportingDocument("discharge summary"))
	require.Nil(t, claim.Submit())
	require.Nil(t, claim.AddSupportingDocument("lab report"))
	require.Nil(t, claim.UpdateComments("urgent"))
	assert.Equal(t, []string{"discharge summary", "lab report"}, claim.SupportingDocuments())

	var vErr *errors.ValidationError
	assert.ErrorAs(t, claim.AddSupportingDocument(""), &vErr)

	require.Nil(t, claim.Reject("no covered items"))
	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, claim.AddSupportingDocument("late"), &stateErr)
	assert.ErrorAs(t, claim.UpdateComments("late"), &stateErr)
}

func TestClaimRoundTrip(t *testing.T) {
	claim := newDraftClaim(t)
	require.Nil(t, claim.AddSupportingDocument("discharge summary"))
	require.Nil(t, claim.Submit())

	first, err := json.Marshal(claim)
	require.Nil(t, err)

	var decoded InsuranceClaim
	require.Nil(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, claim.ClaimID(), decoded.ClaimID())
	assert.Equal(t, Submitted, decoded.Status())
	assert.Equal(t, claim.Policy().PolicyNumber, decoded.Policy().PolicyNumber)

	second, err := json.Marshal(&decoded)
	require.Nil(t, err)
	assert.JSONEq(t, string(first), string(second))
}
