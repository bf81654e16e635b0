package constants

// Billing categories. Every billable item carries exactly one.
const (
	CategoryConsultation = "CONSULTATION"
	CategoryMedication   = "MEDICATION"
	CategoryProcedure    = "PROCEDURE"
	CategoryDiagnosis    = "DIAGNOSIS"
	CategoryWard         = "WARD"
	CategoryEmergency    = "EMERGENCY"
)

// Provider policy-number prefixes.
const (
	GovernmentPolicyPrefix = "GOVT"
	PrivatePolicyPrefix    = "PRIV"
)

// Reference data file names, resolved relative to HCA_REF_DATA_DIR.
const (
	DiagnosticCodesFile = "icd-10-cm.csv"
	ProcedureCodesFile  = "icd-10-pcs.csv"
	MedicationsFile     = "medications.csv"
)

const TestRefDataDir = "../codes/testdata"
