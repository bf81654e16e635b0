package codes

import (
	"fmt"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/constants"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

func init() {
	billing.RegisterItemKind("diagnosis", func() billing.BillableItem { return &DiagnosticCode{} })
	billing.RegisterItemKind("procedure", func() billing.BillableItem { return &ProcedureCode{} })
	billing.RegisterItemKind("medication", func() billing.BillableItem { return &Medication{} })
}

// DiagnosticCode is an ICD-10-CM reference record. The unit price is
// assigned once at registry load and never changes afterwards.
type DiagnosticCode struct {
	CategoryCode     string          `json:"categoryCode"`
	Code             string          `json:"code"`
	FullCode         string          `json:"fullCode"`
	ShortDescription string          `json:"shortDescription"`
	FullDescription  string          `json:"fullDescription"`
	CategoryTitle    string          `json:"categoryTitle"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
}

var _ billing.BillableItem = &DiagnosticCode{}

func (d *DiagnosticCode) BillingCode() string { return d.FullCode }
func (d *DiagnosticCode) Description() string { return d.FullDescription }
func (d *DiagnosticCode) Category() string    { return constants.CategoryDiagnosis }
func (d *DiagnosticCode) Kind() string        { return "diagnosis" }

func (d *DiagnosticCode) UnsubsidisedCharge() decimal.Decimal { return d.UnitPrice }
func (d *DiagnosticCode) Charges() decimal.Decimal            { return d.UnitPrice }

func (d *DiagnosticCode) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return ClassifyDiagnosis(d.FullCode, inpatient)
}

func (d *DiagnosticCode) BenefitDescription(inpatient bool) string {
	return d.ResolveBenefitType(inpatient).Description()
}

// ProcedureCode is an ICD-10-PCS reference record.
type ProcedureCode struct {
	Code            string          `json:"code"`
	FullDescription string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
}

var _ billing.BillableItem = &ProcedureCode{}

func (p *ProcedureCode) BillingCode() string { return p.Code }
func (p *ProcedureCode) Description() string { return p.FullDescription }
func (p *ProcedureCode) Category() string    { return constants.CategoryProcedure }
func (p *ProcedureCode) Kind() string        { return "procedure" }

func (p *ProcedureCode) UnsubsidisedCharge() decimal.Decimal { return p.UnitPrice }
func (p *ProcedureCode) Charges() decimal.Decimal            { return p.UnitPrice }

func (p *ProcedureCode) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return ClassifyProcedure(p.Code, inpatient)
}

func (p *ProcedureCode) BenefitDescription(inpatient bool) string {
	benefit := p.ResolveBenefitType(inpatient).Description()
	if system := BodySystem(p.Code); system != "" {
		return fmt.Sprintf("%s (%s)", benefit, system)
	}
	if section := ProcedureSection(p.Code); section != "" {
		return fmt.Sprintf("%s (%s)", benefit, section)
	}
	return benefit
}

// Medication is a drug reference record. Prices are per unit; billed
// quantities live on the medication line, not here.
type Medication struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	DrugCategory    string          `json:"category"`
	Dosage          string          `json:"dosage"`
	UnitForm        string          `json:"unitForm"`
	Price           decimal.Decimal `json:"price"`
	UnitDescription string          `json:"unitDescription"`
	Manufacturer    string          `json:"manufacturer"`
}

var _ billing.BillableItem = &Medication{}

func (m *Medication) BillingCode() string { return "MED-" + m.Code }
func (m *Medication) Description() string { return m.Name }
func (m *Medication) Category() string    { return constants.CategoryMedication }
func (m *Medication) Kind() string        { return "medication" }

func (m *Medication) UnsubsidisedCharge() decimal.Decimal { return m.Price }
func (m *Medication) Charges() decimal.Decimal            { return m.Price }

func (m *Medication) ResolveBenefitType(inpatient bool) policy.BenefitType {
	return policy.FallbackBenefit(inpatient)
}

func (m *Medication) BenefitDescription(inpatient bool) string {
	return m.ResolveBenefitType(inpatient).Description()
}
