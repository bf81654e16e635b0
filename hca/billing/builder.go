package billing

import (
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/openhms/hca-app/log"
	"github.com/shopspring/decimal"
)

// ChargeSource is the contract a clinical event satisfies to be
// billed: it enumerates its billable items and reports a total
// consistent with their sum.
type ChargeSource interface {
	RelatedBillableItems() []BillableItem
	TotalCharges() decimal.Decimal
}

// VisitSource is an inpatient or emergency encounter.
type VisitSource interface {
	ChargeSource
	IsInpatient() bool
	IsEmergency() bool
	IsFinalized() bool
}

// ConsultationSource is an outpatient encounter.
type ConsultationSource interface {
	ChargeSource
	IsFinalized() bool
}

// BillBuilder accumulates a patient, event sources, and an optional
// policy, then produces an OPEN bill holding every source's items.
type BillBuilder struct {
	patient      *models.Patient
	visit        VisitSource
	consultation ConsultationSource
	policy       *policy.InsurancePolicy
	extraLines   []BillingLine
}

func NewBillBuilder() *BillBuilder {
	return &BillBuilder{}
}

func (b *BillBuilder) WithPatient(patient models.Patient) *BillBuilder {
	b.patient = &patient
	return b
}

func (b *BillBuilder) WithVisit(visit VisitSource) *BillBuilder {
	b.visit = visit
	return b
}

func (b *BillBuilder) WithConsultation(consultation ConsultationSource) *BillBuilder {
	b.consultation = consultation
	return b
}

func (b *BillBuilder) WithInsurancePolicy(p *policy.InsurancePolicy) *BillBuilder {
	b.policy = p
	return b
}

// WithLineItem adds a manual line billed alongside the event sources.
func (b *BillBuilder) WithLineItem(item BillableItem, quantity int) *BillBuilder {
	b.extraLines = append(b.extraLines, BillingLine{Item: item, Quantity: quantity})
	return b
}

func (b *BillBuilder) Build() (*Bill, error) {
	if b.patient == nil {
		return nil, &errors.ValidationError{Field: "patient", Msg: "must be set before building"}
	}

	bill, err := NewBill(*b.patient)
	if err != nil {
		return nil, err
	}
	bill.policy = b.policy

	if b.visit != nil {
		if !b.visit.IsFinalized() {
			return nil, &errors.InvalidStateError{Op: "bill visit", State: "UNFINALIZED"}
		}
		bill.inpatient = b.visit.IsInpatient()
		bill.emergency = b.visit.IsEmergency()
		if err := addSourceItems(bill, b.visit); err != nil {
			return nil, err
		}
	}

	if b.consultation != nil {
		if !b.consultation.IsFinalized() {
			return nil, &errors.InvalidStateError{Op: "bill consultation", State: "UNFINALIZED"}
		}
		if err := addSourceItems(bill, b.consultation); err != nil {
			return nil, err
		}
	}

	for _, line := range b.extraLines {
		if err := bill.AddLineItem(line.Item, line.Quantity); err != nil {
			return nil, err
		}
	}

	log.Billing.WithField("billId", bill.BillID()).
		Infof("Built bill with %d lines for patient %s", len(bill.lines), bill.PatientID())
	return bill, nil
}

func addSourceItems(bill *Bill, source ChargeSource) error {
	for _, item := range source.RelatedBillableItems() {
		quantity := 1
		if quantified, ok := item.(QuantifiedItem); ok {
			quantity = quantified.ItemQuantity()
		}
		if err := bill.AddLineItem(item, quantity); err != nil {
			return err
		}
	}
	return nil
}
