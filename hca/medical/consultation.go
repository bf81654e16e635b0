package medical

import (
	"time"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/codes"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/pborman/uuid"
	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationScheduled ConsultationStatus = "SCHEDULED"
	ConsultationCompleted ConsultationStatus = "COMPLETED"
	ConsultationCancelled ConsultationStatus = "CANCELLED"
)

// Consultation is an outpatient encounter. The attendance fee is
// billed as its own line alongside any diagnostics, procedures, and
// prescriptions.
type Consultation struct {
	ConsultationID string
	Patient        models.Patient
	Doctor         models.Staff
	Fee            decimal.Decimal
	ScheduledAt    time.Time
	Status         ConsultationStatus

	procedures    []*codes.ProcedureCode
	diagnoses     []*codes.DiagnosticCode
	prescriptions []*MedicationLineItem
}

var _ billing.ConsultationSource = &Consultation{}

func NewConsultation(patient models.Patient, doctor models.Staff,
	fee decimal.Decimal, at time.Time) (*Consultation, error) {

	if patient.PatientID == "" {
		return nil, &errors.ValidationError{Field: "patient", Msg: "must identify a patient"}
	}
	if fee.IsNegative() {
		return nil, &errors.ValidationError{Field: "fee", Msg: "must not be negative"}
	}
	return &Consultation{
		ConsultationID: uuid.NewRandom().String(),
		Patient:        patient,
		Doctor:         doctor,
		Fee:            fee,
		ScheduledAt:    at,
		Status:         ConsultationScheduled,
	}, nil
}

func (c *Consultation) IsFinalized() bool { return c.Status == ConsultationCompleted }

func (c *Consultation) mutationError(op string) error {
	return &errors.InvalidStateError{Op: op, State: string(c.Status)}
}

func (c *Consultation) Complete() error {
	if c.Status != ConsultationScheduled {
		return c.mutationError("complete consultation")
	}
	c.Status = ConsultationCompleted
	return nil
}

func (c *Consultation) Cancel() error {
	if c.Status != ConsultationScheduled {
		return c.mutationError("cancel consultation")
	}
	c.Status = ConsultationCancelled
	return nil
}

func (c *Consultation) AddProcedure(procedure *codes.ProcedureCode) error {
	if c.Status != ConsultationScheduled {
		return c.mutationError("add procedure")
	}
	if procedure == nil {
		return &errors.ValidationError{Field: "procedure", Msg: "must not be nil"}
	}
	c.procedures = append(c.procedures, procedure)
	return nil
}

func (c *Consultation) AddDiagnosis(diagnosis *codes.DiagnosticCode) error {
	if c.Status != ConsultationScheduled {
		return c.mutationError("add diagnosis")
	}
	if diagnosis == nil {
		return &errors.ValidationError{Field: "diagnosis", Msg: "must not be nil"}
	}
	c.diagnoses = append(c.diagnoses, diagnosis)
	return nil
}

func (c *Consultation) Prescribe(medication *codes.Medication, quantity int) error {
	if c.Status != ConsultationScheduled {
		return c.mutationError("prescribe medication")
	}
	line, err := NewMedicationLineItem(medication, quantity)
	if err != nil {
		return err
	}
	c.prescriptions = append(c.prescriptions, line)
	return nil
}

func (c *Consultation) RelatedBillableItems() []billing.BillableItem {
	items := []billing.BillableItem{&ConsultationFeeItem{Fee: c.Fee}}
	for _, procedure := range c.procedures {
		items = append(items, procedure)
	}
	for _, diagnosis := range c.diagnoses {
		items = append(items, diagnosis)
	}
	for _, prescription := range c.prescriptions {
		items = append(items, prescription)
	}
	return items
}

func (c *Consultation) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.RelatedBillableItems() {
		charge := item.UnsubsidisedCharge()
		if quantified, ok := item.(billing.QuantifiedItem); ok {
			charge = charge.Mul(decimal.NewFromInt(int64(quantified.ItemQuantity())))
		}
		total = total.Add(charge)
	}
	return total
}
