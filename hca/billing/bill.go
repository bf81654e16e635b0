package billing

import (
	"encoding/json"
	"time"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/pborman/uuid"
	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillOpen      BillStatus = "OPEN"
	BillFinalized BillStatus = "FINALIZED"
)

var (
	residentDiscountRate = decimal.RequireFromString("0.30")
	gstRate              = decimal.RequireFromString("0.09")
)

// Bill aggregates billable items for one patient encounter. Lines can
// be added only while the bill is OPEN; all totals are recomputed from
// the lines on every query so they can never drift.
type Bill struct {
	billID    string
	patient   models.Patient
	createdAt time.Time
	lines     []BillingLine
	status    BillStatus
	inpatient bool
	emergency bool
	policy    *policy.InsurancePolicy
}

func NewBill(patient models.Patient) (*Bill, error) {
	if patient.PatientID == "" {
		return nil, &errors.ValidationError{Field: "patient", Msg: "must identify a patient"}
	}
	return &Bill{
		billID:    uuid.NewRandom().String(),
		patient:   patient,
		createdAt: time.Now().UTC().Truncate(time.Second),
		status:    BillOpen,
	}, nil
}

func (b *Bill) BillID() string    { return b.billID }
func (b *Bill) PatientID() string { return b.patient.PatientID }
func (b *Bill) Patient() models.Patient {
	return b.patient
}
func (b *Bill) CreatedAt() time.Time { return b.createdAt }
func (b *Bill) Status() BillStatus   { return b.status }
func (b *Bill) IsInpatient() bool    { return b.inpatient }
func (b *Bill) IsEmergency() bool    { return b.emergency }

func (b *Bill) InsurancePolicy() *policy.InsurancePolicy { return b.policy }

// Lines returns a copy; the bill's own slice is never exposed for
// mutation.
func (b *Bill) Lines() []BillingLine {
	lines := make([]BillingLine, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// AddLineItem appends a line while the bill is OPEN. A failed add
// leaves the bill untouched.
func (b *Bill) AddLineItem(item BillableItem, quantity int) error {
	if b.status != BillOpen {
		return &errors.InvalidStateError{Op: "add line item", State: string(b.status)}
	}
	if item == nil {
		return &errors.ValidationError{Field: "item", Msg: "must not be nil"}
	}
	if quantity < 1 {
		return &errors.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}

	b.lines = append(b.lines, BillingLine{Item: item, Quantity: quantity})
	return nil
}

// Finalize closes the bill to further mutation. Forward-only.
func (b *Bill) Finalize() error {
	if b.status != BillOpen {
		return &errors.InvalidStateError{Op: "finalize bill", State: string(b.status)}
	}
	b.status = BillFinalized
	return nil
}

// TotalAmount is the sum of charge times quantity over all lines.
func (b *Bill) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.lines {
		total = total.Add(line.Contribution())
	}
	return total
}

// TotalByCategory sums the lines whose item category matches. Unknown
// categories yield zero.
func (b *Bill) TotalByCategory(category string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.lines {
		if line.Item.Category() == category {
			total = total.Add(line.Contribution())
		}
	}
	return total
}

func (b *Bill) CategorizedTotals() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, line := range b.lines {
		category := line.Item.Category()
		totals[category] = totals[category].Add(line.Contribution())
	}
	return totals
}

// DiscountAmount is the resident subsidy: 30% of the total for
// citizens and permanent residents, zero otherwise.
func (b *Bill) DiscountAmount() decimal.Decimal {
	if !b.patient.IsResident() {
		return decimal.Zero
	}
	return b.TotalAmount().Mul(residentDiscountRate)
}

func (b *Bill) DiscountedTotal() decimal.Decimal {
	return b.TotalAmount().Sub(b.DiscountAmount())
}

// TaxAmount is GST applied to the discounted total.
func (b *Bill) TaxAmount() decimal.Decimal {
	return b.DiscountedTotal().Mul(gstRate)
}

func (b *Bill) GrandTotal() decimal.Decimal {
	return b.DiscountedTotal().Add(b.TaxAmount())
}

// ClaimableItems exposes the billed items for adjudication, one entry
// per unit so that quantities weigh into covered sums.
func (b *Bill) ClaimableItems() []policy.ClaimableItem {
	var items []policy.ClaimableItem
	for _, line := range b.lines {
		for i := 0; i < line.Quantity; i++ {
			items = append(items, line.Item)
		}
	}
	return items
}

type billJSON struct {
	BillID    string                  `json:"billId"`
	Patient   models.Patient          `json:"patient"`
	CreatedAt time.Time               `json:"createdAt"`
	Lines     []BillingLine           `json:"lines"`
	Status    BillStatus              `json:"status"`
	Inpatient bool                    `json:"inpatient"`
	Emergency bool                    `json:"emergency"`
	Policy    *policy.InsurancePolicy `json:"insurancePolicy,omitempty"`

	// Derived amounts, recomputed on load.
	TotalAmount decimal.Decimal `json:"totalAmount"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

func (b *Bill) MarshalJSON() ([]byte, error) {
	return json.Marshal(billJSON{
		BillID:      b.billID,
		Patient:     b.patient,
		CreatedAt:   b.createdAt,
		Lines:       b.lines,
		Status:      b.status,
		Inpatient:   b.inpatient,
		Emergency:   b.emergency,
		Policy:      b.policy,
		TotalAmount: b.TotalAmount(),
		GrandTotal:  b.GrandTotal(),
	})
}

func (b *Bill) UnmarshalJSON(data []byte) error {
	var raw billJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.billID = raw.BillID
	b.patient = raw.Patient
	b.createdAt = raw.CreatedAt
	b.lines = raw.Lines
	b.status = raw.Status
	b.inpatient = raw.Inpatient
	b.emergency = raw.Emergency
	b.policy = raw.Policy
	return nil
}
