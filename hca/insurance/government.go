package insurance

import (
	"fmt"
	"math/rand"

	"github.com/openhms/hca-app/hca/claims"
	"github.com/openhms/hca-app/hca/constants"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// careShieldBirthYear: patients born in this year or later get the
// CareShield supplement layered over the base plan.
const careShieldBirthYear = 1980

// GovernmentProvider issues the national base plan to residents.
type GovernmentProvider struct {
	name   string
	ledger claimLedger
}

var _ InsuranceProvider = &GovernmentProvider{}

func NewGovernmentProvider() *GovernmentProvider {
	return &GovernmentProvider{
		name:   "National Health Insurance",
		ledger: newClaimLedger(),
	}
}

func (g *GovernmentProvider) Name() string { return g.name }
func (g *GovernmentProvider) Kind() string { return "GOVERNMENT" }

// IsEligible: citizens and permanent residents only.
func (g *GovernmentProvider) IsEligible(patient models.Patient) bool {
	return patient.IsResident()
}

func (g *GovernmentProvider) providerRef() policy.ProviderRef {
	return policy.ProviderRef{Kind: g.Kind(), Name: g.name}
}

func mediShieldCoverage() (*policy.BaseCoverage, error) {
	limits, err := policy.NewCoverageLimit(
		decimal.NewFromInt(150000), decimal.NewFromInt(2000000))
	if err != nil {
		return nil, err
	}
	exclusions, err := policy.NewExclusionCriteria(
		[]policy.BenefitType{policy.Dental, policy.PreventiveCare}, nil)
	if err != nil {
		return nil, err
	}
	return policy.NewBaseCoverage("MediShield",
		[]policy.BenefitType{
			policy.Hospitalization,
			policy.Surgery,
			policy.MajorSurgery,
			policy.MinorSurgery,
			policy.DiagnosticImaging,
			policy.OncologyTreatments,
			policy.CriticalIllness,
			policy.Accident,
			policy.Maternity,
			policy.MedicationAdmin,
		},
		decimal.NewFromInt(1500), limits, exclusions)
}

func careShieldCoverage() (*policy.BaseCoverage, error) {
	limits, err := policy.NewCoverageLimit(
		decimal.NewFromInt(50000), decimal.NewFromInt(1000000))
	if err != nil {
		return nil, err
	}
	return policy.NewBaseCoverage("CareShield",
		[]policy.BenefitType{
			policy.ChronicConditions,
			policy.AcuteConditions,
		},
		decimal.NewFromInt(250), limits, nil)
}

// PatientPolicy issues the base plan, with the CareShield supplement
// for patients born from careShieldBirthYear onwards. Ineligible
// patients get no policy and no error.
func (g *GovernmentProvider) PatientPolicy(patient models.Patient) (*policy.InsurancePolicy, error) {
	if !g.IsEligible(patient) {
		return nil, nil
	}

	coverage, err := mediShieldCoverage()
	if err != nil {
		return nil, err
	}

	var issued policy.Coverage = coverage
	if patient.DateOfBirth.Year() >= careShieldBirthYear {
		supplement, err := careShieldCoverage()
		if err != nil {
			return nil, err
		}
		issued, err = policy.NewCompositeCoverage("MediShield with CareShield", coverage, supplement)
		if err != nil {
			return nil, err
		}
	}

	policyNumber := fmt.Sprintf("%s-%010d-%s",
		constants.GovernmentPolicyPrefix, rand.Int63n(1e10), patient.PatientID)
	return policy.NewInsurancePolicy(policyNumber, patient, g.providerRef(), issued)
}

func (g *GovernmentProvider) ProcessClaim(patient models.Patient, claim *claims.InsuranceClaim) (bool, error) {
	return processClaim(&g.ledger, g.name, patient, claim)
}
