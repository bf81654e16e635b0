package policy

// BenefitType is the closed set of classification buckets a coverage
// plan includes or excludes.
type BenefitType string

const (
	Maternity            BenefitType = "MATERNITY"
	CriticalIllness      BenefitType = "CRITICAL_ILLNESS"
	Accident             BenefitType = "ACCIDENT"
	Dental               BenefitType = "DENTAL"
	PreventiveCare       BenefitType = "PREVENTIVE_CARE"
	ChronicConditions    BenefitType = "CHRONIC_CONDITIONS"
	AcuteConditions      BenefitType = "ACUTE_CONDITIONS"
	Hospitalization      BenefitType = "HOSPITALIZATION"
	OutpatientTreatments BenefitType = "OUTPATIENT_TREATMENTS"
	MajorSurgery         BenefitType = "MAJOR_SURGERY"
	MinorSurgery         BenefitType = "MINOR_SURGERY"
	DiagnosticImaging    BenefitType = "DIAGNOSTIC_IMAGING"
	OncologyTreatments   BenefitType = "ONCOLOGY_TREATMENTS"
	MedicationAdmin      BenefitType = "MEDICATION_ADMIN"
	Surgery              BenefitType = "SURGERY"
)

// AllBenefitTypes lists every member of the enumeration, for
// validation and catalog construction.
var AllBenefitTypes = []BenefitType{
	Maternity, CriticalIllness, Accident, Dental, PreventiveCare,
	ChronicConditions, AcuteConditions, Hospitalization,
	OutpatientTreatments, MajorSurgery, MinorSurgery, DiagnosticImaging,
	OncologyTreatments, MedicationAdmin, Surgery,
}

// FallbackBenefit is the classification for codes no rule matches.
func FallbackBenefit(inpatient bool) BenefitType {
	if inpatient {
		return Hospitalization
	}
	return OutpatientTreatments
}

var benefitDescriptions = map[BenefitType]string{
	Maternity:            "Maternity and childbirth care",
	CriticalIllness:      "Critical illness treatment",
	Accident:             "Accidental injury treatment",
	Dental:               "Dental treatment",
	PreventiveCare:       "Preventive care and screening",
	ChronicConditions:    "Chronic condition management",
	AcuteConditions:      "Acute condition treatment",
	Hospitalization:      "Hospitalization",
	OutpatientTreatments: "Outpatient treatments",
	MajorSurgery:         "Major surgery",
	MinorSurgery:         "Minor surgery",
	DiagnosticImaging:    "Diagnostic imaging",
	OncologyTreatments:   "Oncology treatments",
	MedicationAdmin:      "Medication administration",
	Surgery:              "Surgery",
}

func (b BenefitType) Description() string {
	if d, ok := benefitDescriptions[b]; ok {
		return d
	}
	return string(b)
}

func (b BenefitType) IsValid() bool {
	for _, known := range AllBenefitTypes {
		if b == known {
			return true
		}
	}
	return false
}
