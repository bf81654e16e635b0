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

type VisitStatus string

const (
	Admitted   VisitStatus = "ADMITTED"
	InProgress VisitStatus = "IN_PROGRESS"
	Discharged VisitStatus = "DISCHARGED"
	Cancelled  VisitStatus = "CANCELLED"
)

// EmergencyDetails marks a visit as an emergency admission. Emergency
// is a field on Visit rather than a visit subtype.
type EmergencyDetails struct {
	ArrivalMode         string `json:"arrivalMode"`
	TriageLevel         int    `json:"triageLevel"`
	PresentingComplaint string `json:"presentingComplaint"`
}

// Visit is an inpatient encounter: ward stays, procedures, diagnoses,
// and prescriptions accumulate while the visit is active, then the
// visit is discharged and billed.
type Visit struct {
	VisitID         string
	Patient         models.Patient
	AttendingDoctor models.Staff
	Status          VisitStatus
	AdmissionTime   time.Time
	DischargeTime   time.Time
	Emergency       *EmergencyDetails

	wardStays     []*WardStay
	procedures    []*codes.ProcedureCode
	diagnoses     []*codes.DiagnosticCode
	prescriptions []*MedicationLineItem
}

var _ billing.VisitSource = &Visit{}

func NewVisit(patient models.Patient, doctor models.Staff, admission time.Time) (*Visit, error) {
	if patient.PatientID == "" {
		return nil, &errors.ValidationError{Field: "patient", Msg: "must identify a patient"}
	}
	return &Visit{
		VisitID:         uuid.NewRandom().String(),
		Patient:         patient,
		AttendingDoctor: doctor,
		Status:          Admitted,
		AdmissionTime:   admission,
	}, nil
}

func (v *Visit) IsInpatient() bool { return true }
func (v *Visit) IsEmergency() bool { return v.Emergency != nil }
func (v *Visit) IsFinalized() bool { return v.Status == Discharged }

func (v *Visit) active() bool {
	return v.Status == Admitted || v.Status == InProgress
}

func (v *Visit) mutationError(op string) error {
	return &errors.InvalidStateError{Op: op, State: string(v.Status)}
}

func (v *Visit) MarkEmergency(details EmergencyDetails) error {
	if !v.active() {
		return v.mutationError("mark visit as emergency")
	}
	v.Emergency = &details
	return nil
}

func (v *Visit) Begin() error {
	if v.Status != Admitted {
		return v.mutationError("begin visit")
	}
	v.Status = InProgress
	return nil
}

func (v *Visit) Discharge(at time.Time) error {
	if !v.active() {
		return v.mutationError("discharge visit")
	}
	v.Status = Discharged
	v.DischargeTime = at
	return nil
}

func (v *Visit) Cancel() error {
	if !v.active() {
		return v.mutationError("cancel visit")
	}
	v.Status = Cancelled
	return nil
}

func (v *Visit) AddWardStay(stay *WardStay) error {
	if !v.active() {
		return v.mutationError("add ward stay")
	}
	if stay == nil {
		return &errors.ValidationError{Field: "wardStay", Msg: "must not be nil"}
	}
	v.wardStays = append(v.wardStays, stay)
	return nil
}

func (v *Visit) AddProcedure(procedure *codes.ProcedureCode) error {
	if !v.active() {
		return v.mutationError("add procedure")
	}
	if procedure == nil {
		return &errors.ValidationError{Field: "procedure", Msg: "must not be nil"}
	}
	v.procedures = append(v.procedures, procedure)
	return nil
}

func (v *Visit) AddDiagnosis(diagnosis *codes.DiagnosticCode) error {
	if !v.active() {
		return v.mutationError("add diagnosis")
	}
	if diagnosis == nil {
		return &errors.ValidationError{Field: "diagnosis", Msg: "must not be nil"}
	}
	v.diagnoses = append(v.diagnoses, diagnosis)
	return nil
}

func (v *Visit) Prescribe(medication *codes.Medication, quantity int) error {
	if !v.active() {
		return v.mutationError("prescribe medication")
	}
	line, err := NewMedicationLineItem(medication, quantity)
	if err != nil {
		return err
	}
	v.prescriptions = append(v.prescriptions, line)
	return nil
}

// RelatedBillableItems enumerates everything chargeable on this visit.
// Emergency visits carry the flat attendance fee.
func (v *Visit) RelatedBillableItems() []billing.BillableItem {
	var items []billing.BillableItem
	for _, stay := range v.wardStays {
		items = append(items, stay)
	}
	for _, procedure := range v.procedures {
		items = append(items, procedure)
	}
	for _, diagnosis := range v.diagnoses {
		items = append(items, diagnosis)
	}
	for _, prescription := range v.prescriptions {
		items = append(items, prescription)
	}
	if v.Emergency != nil {
		items = append(items, NewEmergencyFeeItem())
	}
	return items
}

func (v *Visit) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, item := range v.RelatedBillableItems() {
		charge := item.UnsubsidisedCharge()
		if quantified, ok := item.(billing.QuantifiedItem); ok {
			charge = charge.Mul(decimal.NewFromInt(int64(quantified.ItemQuantity())))
		}
		total = total.Add(charge)
	}
	return total
}
