package medical

import (
	"fmt"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/codes"
	"github.com/openhms/hca-app/hca/constants"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

func init() {
	billing.RegisterItemKind("wardStay", func() billing.BillableItem { return &WardStay{} })
	billing.RegisterItemKind("medicationLine", func() billing.BillableItem { return &MedicationLineItem{} })
	billing.RegisterItemKind("consultationFee", func() billing.BillableItem { return &ConsultationFeeItem{} })
	billing.RegisterItemKind("emergencyFee", func() billing.BillableItem { return &EmergencyFeeItem{} })
}

// MedicationLineItem is a prescribed medication with its dispensed
// quantity. The charge stays per unit; the quantity flows onto the
// billing line.
type MedicationLineItem struct {
	Medication *codes.Medication `json:"medication"`
	Quantity   int               `json:"quantity"`
}

var _ billing.BillableItem = &MedicationLineItem{}
var _ billing.QuantifiedItem = &MedicationLineItem{}

func NewMedicationLineItem(medication *codes.Medication, quantity int) (*MedicationLineItem, error) {
	if medication == nil {
		return nil, &errors.ValidationError{Field: "medication", Msg: "must not be nil"}
	}
	if quantity < 1 {
		return nil, &errors.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}
	return &MedicationLineItem{Medication: medication, Quantity: quantity}, nil
}

func (m *MedicationLineItem) BillingCode() string { return m.Medication.BillingCode() }
func (m *MedicationLineItem) Category() string    { return constants.CategoryMedication }
func (m *MedicationLineItem) Kind() string        { return "medicationLine" }
func (m *MedicationLineItem) ItemQuantity() int   { return m.Quantity }

func (m *MedicationLineItem) Description() string {
	return fmt.Sprintf("%s %s x%d", m.Medication.Name, m.Medication.Dosage, m.Quantity)
}

func (m *MedicationLineItem) UnsubsidisedCharge() decimal.Decimal { return m.Medication.Price }
func (m *MedicationLineItem) Charges() decimal.Decimal            { return m.Medication.Price }

func (m *MedicationLineItem) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return policy.FallbackBenefit(inpatient)
}

func (m *MedicationLineItem) BenefitDescription(inpatient bool) string {
	return m.ResolveBenefitType(inpatient).Description()
}

// ConsultationFeeItem is the doctor's attendance fee on an outpatient
// consultation.
type ConsultationFeeItem struct {
	Fee decimal.Decimal `json:"fee"`
}

var _ billing.BillableItem = &ConsultationFeeItem{}

func (c *ConsultationFeeItem) BillingCode() string { return "CONSULT-FEE" }
func (c *ConsultationFeeItem) Description() string { return "Consultation fee" }
func (c *ConsultationFeeItem) Category() string    { return constants.CategoryConsultation }
func (c *ConsultationFeeItem) Kind() string        { return "consultationFee" }

func (c *ConsultationFeeItem) UnsubsidisedCharge() decimal.Decimal { return c.Fee }
func (c *ConsultationFeeItem) Charges() decimal.Decimal            { return c.Fee }

func (c *ConsultationFeeItem) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return policy.FallbackBenefit(inpatient)
}

func (c *ConsultationFeeItem) BenefitDescription(inpatient bool) string {
	return c.ResolveBenefitType(inpatient).Description()
}

// emergencyAttendanceFee is flat per emergency visit.
var emergencyAttendanceFee = decimal.RequireFromString("350.00")

// EmergencyFeeItem is added to a visit's items when emergency details
// are present.
type EmergencyFeeItem struct {
	Fee decimal.Decimal `json:"fee"`
}

var _ billing.BillableItem = &EmergencyFeeItem{}

func NewEmergencyFeeItem() *EmergencyFeeItem {
	return &EmergencyFeeItem{Fee: emergencyAttendanceFee}
}

func (e *EmergencyFeeItem) BillingCode() string { return "ER-FEE" }
func (e *EmergencyFeeItem) Description() string { return "Emergency attendance fee" }
func (e *EmergencyFeeItem) Category() string    { return constants.CategoryEmergency }
func (e *EmergencyFeeItem) Kind() string        { return "emergencyFee" }

func (e *EmergencyFeeItem) UnsubsidisedCharge() decimal.Decimal { return e.Fee }
func (e *EmergencyFeeItem) Charges() decimal.Decimal            { return e.Fee }

func (e *EmergencyFeeItem) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return policy.FallbackBenefit(inpatient)
}

func (e *EmergencyFeeItem) BenefitDescription(inpatient bool) string {
	return e.ResolveBenefitType(inpatient).Description()
}
