package codes

import (
	"testing"

	"github.com/openhms/hca-app/hca/policy"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDiagnosis(t *testing.T) {
	tests := []struct {
		code      string
		inpatient bool
		expected  policy.BenefitType
	}{
		{"O120", true, policy.Maternity},
		{"O120", false, policy.Maternity},
		{"C50911", true, policy.CriticalIllness},
		{"I219", true, policy.CriticalIllness},
		{"I350", true, policy.CriticalIllness},
		{"E119", false, policy.CriticalIllness},
		{"G309", true, policy.CriticalIllness},
		{"S72001A", true, policy.Accident},
		{"T300", false, policy.Accident},
		{"K029", false, policy.Dental},
		{"Z740", false, policy.PreventiveCare},
		{"I10", false, policy.ChronicConditions},
		{"J45909", true, policy.ChronicConditions},
		{"J069", false, policy.AcuteConditions},
		{"Z5111", true, policy.PreventiveCare},
		{"Z23", true, policy.Hospitalization},
		{"Z23", false, policy.OutpatientTreatments},
		{"X999", true, policy.Hospitalization},
		{"X999", false, policy.OutpatientTreatments},
		{"", true, policy.Hospitalization},
		{"", false, policy.OutpatientTreatments},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyDiagnosis(tt.code, tt.inpatient),
			"code %q inpatient %v", tt.code, tt.inpatient)
	}
}

func TestClassifyDiagnosisIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, policy.CriticalIllness, ClassifyDiagnosis("I219", true))
	}
}

// Z74 codes match both the dependency-care rule and the generic Zxx
// rule; the earlier, more specific rule must win.
func TestClassifyDiagnosisRuleOrder(t *testing.T) {
	assert.Equal(t, policy.PreventiveCare, ClassifyDiagnosis("Z740", true))
	assert.Equal(t, policy.PreventiveCare, ClassifyDiagnosis("Z5111", false))
	assert.Equal(t, policy.Hospitalization, ClassifyDiagnosis("Z990", true))
}

func TestClassifyProcedure(t *testing.T) {
	tests := []struct {
		code      string
		inpatient bool
		expected  policy.BenefitType
	}{
		{"10D00Z0", true, policy.Maternity},
		{"3E0234Z", false, policy.MedicationAdmin},
		{"B2111ZZ", false, policy.DiagnosticImaging},
		{"C7101ZZ", true, policy.OncologyTreatments},
		{"D0000ZZ", true, policy.OncologyTreatments},
		{"0210093", true, policy.MajorSurgery},
		{"00160J6", false, policy.MajorSurgery},
		{"0HB0XZZ", true, policy.MinorSurgery},
		{"0SG00A0", false, policy.MinorSurgery},
		{"0TB04ZZ", true, policy.Hospitalization},
		{"0TB04ZZ", false, policy.MinorSurgery},
		{"4A023N7", true, policy.Hospitalization},
		{"4A023N7", false, policy.OutpatientTreatments},
		{"", true, policy.Hospitalization},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyProcedure(tt.code, tt.inpatient),
			"code %q inpatient %v", tt.code, tt.inpatient)
	}
}

func TestProcedureSectionAndBodySystem(t *testing.T) {
	assert.Equal(t, "Medical and Surgical", ProcedureSection("0210093"))
	assert.Equal(t, "Heart and Great Vessels", BodySystem("0210093"))
	assert.Equal(t, "Imaging", ProcedureSection("B2111ZZ"))
	assert.Equal(t, "", BodySystem("B2111ZZ"))
	assert.Equal(t, "", ProcedureSection(""))
}
