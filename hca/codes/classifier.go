package codes

import (
	"regexp"
	"strings"

	"github.com/openhms/hca-app/hca/policy"
)

type diagnosticRule struct {
	pattern    *regexp.Regexp
	inpatient  policy.BenefitType
	outpatient policy.BenefitType
}

func rule(pattern string, benefit policy.BenefitType) diagnosticRule {
	return diagnosticRule{
		pattern:    regexp.MustCompile(pattern),
		inpatient:  benefit,
		outpatient: benefit,
	}
}

// diagnosticRules is evaluated top to bottom and the first match wins.
// The order is an invariant: patterns overlap (Z74 and Z5x both match
// the generic Zxx rule below them), so reordering changes outcomes.
var diagnosticRules = []diagnosticRule{
	rule(`^O.*`, policy.Maternity),
	rule(`^C\d{2}.*`, policy.CriticalIllness),
	rule(`^I(2[0-5]|3|4[0-1]).*`, policy.CriticalIllness),
	rule(`^(G30|E10|E11).*`, policy.CriticalIllness),
	rule(`^[ST].*`, policy.Accident),
	rule(`^K0[0-5].*`, policy.Dental),
	rule(`^Z74.*`, policy.PreventiveCare),
	rule(`^(E66|I10|J45|N18).*`, policy.ChronicConditions),
	rule(`^(J06|N30|R05).*`, policy.AcuteConditions),
	rule(`^Z5[1-3].*`, policy.PreventiveCare),
	{
		pattern:    regexp.MustCompile(`^Z[0-9]{2}.*`),
		inpatient:  policy.Hospitalization,
		outpatient: policy.OutpatientTreatments,
	},
}

// ClassifyDiagnosis maps a diagnostic code to its benefit bucket.
// Unmatched or empty codes fall back to the inpatient/outpatient pair.
func ClassifyDiagnosis(code string, inpatient bool) policy.BenefitType {
	if code == "" {
		return policy.FallbackBenefit(inpatient)
	}
	for _, r := range diagnosticRules {
		if r.pattern.MatchString(code) {
			if inpatient {
				return r.inpatient
			}
			return r.outpatient
		}
	}
	return policy.FallbackBenefit(inpatient)
}

// ClassifyProcedure maps a procedure code to its benefit bucket using
// the code's section character and, for medical-surgical codes, its
// body-system character.
func ClassifyProcedure(code string, inpatient bool) policy.BenefitType {
	if code == "" {
		return policy.FallbackBenefit(inpatient)
	}
	if strings.HasPrefix(code, "3E0") {
		return policy.MedicationAdmin
	}

	switch code[0] {
	case '1':
		return policy.Maternity
	case 'B':
		return policy.DiagnosticImaging
	case 'C', 'D':
		return policy.OncologyTreatments
	case '0':
		if len(code) < 2 {
			return policy.FallbackBenefit(inpatient)
		}
		switch code[1] {
		case '0', '2':
			return policy.MajorSurgery
		case 'H', 'P', 'Q', 'R', 'S':
			return policy.MinorSurgery
		default:
			if inpatient {
				return policy.Hospitalization
			}
			return policy.MinorSurgery
		}
	default:
		return policy.FallbackBenefit(inpatient)
	}
}

var procedureSections = map[byte]string{
	'0': "Medical and Surgical",
	'1': "Obstetrics",
	'2': "Placement",
	'3': "Administration",
	'4': "Measurement and Monitoring",
	'5': "Extracorporeal or Systemic Assistance and Performance",
	'6': "Extracorporeal or Systemic Therapies",
	'7': "Osteopathic",
	'8': "Other Procedures",
	'9': "Chiropractic",
	'B': "Imaging",
	'C': "Nuclear Medicine",
	'D': "Radiation Therapy",
	'F': "Physical Rehabilitation and Diagnostic Audiology",
	'G': "Mental Health",
	'H': "Substance Abuse Treatment",
	'X': "New Technology",
}

var bodySystems = map[byte]string{
	'0': "Central Nervous System and Cranial Nerves",
	'1': "Peripheral Nervous System",
	'2': "Heart and Great Vessels",
	'3': "Upper Arteries",
	'4': "Lower Arteries",
	'5': "Upper Veins",
	'6': "Lower Veins",
	'7': "Lymphatic and Hemic Systems",
	'8': "Eye",
	'9': "Ear, Nose, Sinus",
	'B': "Respiratory System",
	'C': "Mouth and Throat",
	'D': "Gastrointestinal System",
	'F': "Hepatobiliary System and Pancreas",
	'G': "Endocrine System",
	'H': "Skin and Breast",
	'J': "Subcutaneous Tissue and Fascia",
	'K': "Muscles",
	'L': "Tendons",
	'M': "Bursae and Ligaments",
	'N': "Head and Facial Bones",
	'P': "Upper Bones",
	'Q': "Lower Bones",
	'R': "Upper Joints",
	'S': "Lower Joints",
	'T': "Urinary System",
	'U': "Female Reproductive System",
	'V': "Male Reproductive System",
	'W': "Anatomical Regions, General",
	'X': "Anatomical Regions, Upper Extremities",
	'Y': "Anatomical Regions, Lower Extremities",
}

// ProcedureSection names the section a procedure code belongs to, or
// "" when the section character is unknown.
func ProcedureSection(code string) string {
	if code == "" {
		return ""
	}
	return procedureSections[code[0]]
}

// BodySystem names the body system of a medical-surgical procedure
// code, or "" for other sections.
func BodySystem(code string) string {
	if len(code) < 2 || code[0] != '0' {
		return ""
	}
	return bodySystems[code[1]]
}
