package claims

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/openhms/hca-app/log"
	"github.com/shopspring/decimal"
)

type ClaimStatus string

// Transitions are forward-only: DRAFT -> SUBMITTED -> APPROVED or
// REJECTED. The terminal states are immutable.
const (
	Draft     ClaimStatus = "DRAFT"
	Submitted ClaimStatus = "SUBMITTED"
	Approved  ClaimStatus = "APPROVED"
	Rejected  ClaimStatus = "REJECTED"
)

// InsuranceClaim wraps a bill, the policy it is claimed under, and the
// adjudicated payable amount.
type InsuranceClaim struct {
	claimID             string
	bill                *billing.Bill
	provider            policy.ProviderRef
	insurancePolicy     *policy.InsurancePolicy
	patient             models.Patient
	claimedAmount       decimal.Decimal
	payableAmount       decimal.Decimal
	status              ClaimStatus
	supportingDocuments []string
	comments            string
}

func newClaimID(now time.Time) string {
	return fmt.Sprintf("CLM-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// CreateNew constructs a claim in DRAFT.
func CreateNew(bill *billing.Bill, provider policy.ProviderRef,
	insurancePolicy *policy.InsurancePolicy, patient models.Patient,
	claimedAmount decimal.Decimal) (*InsuranceClaim, error) {

	if bill == nil {
		return nil, &errors.ValidationError{Field: "bill", Msg: "must not be nil"}
	}
	if provider.Kind == "" || provider.Name == "" {
		return nil, &errors.ValidationError{Field: "provider", Msg: "must name the issuing provider"}
	}
	if insurancePolicy == nil {
		return nil, &errors.ValidationError{Field: "policy", Msg: "must not be nil"}
	}
	if patient.PatientID == "" {
		return nil, &errors.ValidationError{Field: "patient", Msg: "must identify a patient"}
	}
	if claimedAmount.IsNegative() {
		return nil, &errors.ValidationError{Field: "claimedAmount", Msg: "must not be negative"}
	}

	claim := &InsuranceClaim{
		claimID:         newClaimID(time.Now()),
		bill:            bill,
		provider:        provider,
		insurancePolicy: insurancePolicy,
		patient:         patient,
		claimedAmount:   claimedAmount,
		status:          Draft,
	}
	log.Claims.WithField("claimId", claim.claimID).
		Infof("Created claim against policy %s", insurancePolicy.PolicyNumber)
	return claim, nil
}

func (c *InsuranceClaim) ClaimID() string                 { return c.claimID }
func (c *InsuranceClaim) Bill() *billing.Bill             { return c.bill }
func (c *InsuranceClaim) Provider() policy.ProviderRef    { return c.provider }
func (c *InsuranceClaim) Policy() *policy.InsurancePolicy { return c.insurancePolicy }
func (c *InsuranceClaim) Patient() models.Patient         { return c.patient }
func (c *InsuranceClaim) ClaimedAmount() decimal.Decimal  { return c.claimedAmount }
func (c *InsuranceClaim) PayableAmount() decimal.Decimal  { return c.payableAmount }
func (c *InsuranceClaim) Status() ClaimStatus             { return c.status }
func (c *InsuranceClaim) Comments() string                { return c.comments }

func (c *InsuranceClaim) SupportingDocuments() []string {
	docs := make([]string, len(c.supportingDocuments))
	copy(docs, c.supportingDocuments)
	return docs
}

func (c *InsuranceClaim) IsDraft() bool     { return c.status == Draft }
func (c *InsuranceClaim) IsSubmitted() bool { return c.status == Submitted }
func (c *InsuranceClaim) IsApproved() bool  { return c.status == Approved }
func (c *InsuranceClaim) IsRejected() bool  { return c.status == Rejected }

// Submit moves a DRAFT claim to SUBMITTED. Resubmission fails.
func (c *InsuranceClaim) Submit() error {
	if c.status != Draft {
		return &errors.InvalidStateError{Op: "submit claim", State: string(c.status)}
	}
	c.status = Submitted
	log.Claims.WithField("claimId", c.claimID).Info("Claim submitted")
	return nil
}

// Approve records the adjudicated payable amount on a SUBMITTED claim.
func (c *InsuranceClaim) Approve(payableAmount decimal.Decimal) error {
	if c.status != Submitted {
		return &errors.InvalidStateError{Op: "approve claim", State: string(c.status)}
	}
	if payableAmount.IsNegative() {
		return &errors.ValidationError{Field: "payableAmount", Msg: "must not be negative"}
	}
	c.payableAmount = payableAmount
	c.status = Approved
	log.Claims.WithField("claimId", c.claimID).
		Infof("Claim approved, payable %s", payableAmount)
	return nil
}

// Reject closes a SUBMITTED claim with no payout.
func (c *InsuranceClaim) Reject(reason string) error {
	if c.status != Submitted {
		return &errors.InvalidStateError{Op: "reject claim", State: string(c.status)}
	}
	c.payableAmount = decimal.Zero
	c.status = Rejected
	if reason != "" {
		c.comments = reason
	}
	log.Claims.WithField("claimId", c.claimID).Infof("Claim rejected: %s", reason)
	return nil
}

// AddSupportingDocument is permitted while the claim is still being
// worked (DRAFT or SUBMITTED).
func (c *InsuranceClaim) AddSupportingDocument(text string) error {
	if c.status != Draft && c.status != Submitted {
		return &errors.InvalidStateError{Op: "add supporting document", State: string(c.status)}
	}
	if text == "" {
		return &errors.ValidationError{Field: "document", Msg: "must not be empty"}
	}
	c.supportingDocuments = append(c.supportingDocuments, text)
	return nil
}

func (c *InsuranceClaim) UpdateComments(text string) error {
	if c.status != Draft && c.status != Submitted {
		return &errors.InvalidStateError{Op: "update comments", State: string(c.status)}
	}
	c.comments = text
	return nil
}

type claimJSON struct {
	ClaimID             string                  `json:"claimId"`
	Bill                *billing.Bill           `json:"bill"`
	Provider            policy.ProviderRef      `json:"provider"`
	Policy              *policy.InsurancePolicy `json:"policy"`
	Patient             models.Patient          `json:"patient"`
	ClaimedAmount       decimal.Decimal         `json:"claimedAmount"`
	PayableAmount       decimal.Decimal         `json:"payableAmount"`
	Status              ClaimStatus             `json:"status"`
	SupportingDocuments []string                `json:"supportingDocuments,omitempty"`
	Comments            string                  `json:"comments,omitempty"`
}

func (c *InsuranceClaim) MarshalJSON() ([]byte, error) {
	return json.Marshal(claimJSON{
		ClaimID:             c.claimID,
		Bill:                c.bill,
		Provider:            c.provider,
		Policy:              c.insurancePolicy,
		Patient:             c.patient,
		ClaimedAmount:       c.claimedAmount,
		PayableAmount:       c.payableAmount,
		Status:              c.status,
		SupportingDocuments: c.supportingDocuments,
		Comments:            c.comments,
	})
}

func (c *InsuranceClaim) UnmarshalJSON(data []byte) error {
	var raw claimJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.claimID = raw.ClaimID
	c.bill = raw.Bill
	c.provider = raw.Provider
	c.insurancePolicy = raw.Policy
	c.patient = raw.Patient
	c.claimedAmount = raw.ClaimedAmount
	c.payableAmount = raw.PayableAmount
	c.status = raw.Status
	c.supportingDocuments = raw.SupportingDocuments
	c.comments = raw.Comments
	return nil
}
