package insurance

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/openhms/hca-app/hca/claims"
	"github.com/openhms/hca-app/hca/constants"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// Bounds on the randomized private coverage terms.
const (
	privateAnnualMin   = 100000
	privateAnnualMax   = 1000000
	privateLifetimeMin = 1000000
	privateLifetimeMax = 10000000
	privateDeductMin   = 1000
	privateDeductMax   = 5000
)

// PrivateProvider issues plans with randomized-but-bounded terms.
// Anyone may buy one, including visitors.
type PrivateProvider struct {
	name   string
	rng    *rand.Rand
	ledger claimLedger
}

var _ InsuranceProvider = &PrivateProvider{}

// NewPrivateProvider seeds its own source when rng is nil; tests pass
// a seeded one for reproducible terms.
func NewPrivateProvider(name string, rng *rand.Rand) *PrivateProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PrivateProvider{name: name, rng: rng, ledger: newClaimLedger()}
}

func (p *PrivateProvider) Name() string { return p.name }
func (p *PrivateProvider) Kind() string { return "PRIVATE" }

func (p *PrivateProvider) IsEligible(models.Patient) bool { return true }

func (p *PrivateProvider) providerRef() policy.ProviderRef {
	return policy.ProviderRef{Kind: p.Kind(), Name: p.name}
}

func (p *PrivateProvider) randomCoverage() (*policy.BaseCoverage, error) {
	annual := int64(privateAnnualMin + p.rng.Intn(privateAnnualMax-privateAnnualMin+1))
	lifetime := int64(privateLifetimeMin + p.rng.Intn(privateLifetimeMax-privateLifetimeMin+1))
	if lifetime < annual {
		lifetime = annual
	}
	deductible := int64(privateDeductMin + p.rng.Intn(privateDeductMax-privateDeductMin+1))

	limits, err := policy.NewCoverageLimit(
		decimal.NewFromInt(annual), decimal.NewFromInt(lifetime))
	if err != nil {
		return nil, err
	}
	exclusions, err := policy.NewExclusionCriteria(
		[]policy.BenefitType{policy.Maternity}, nil)
	if err != nil {
		return nil, err
	}

	return policy.NewBaseCoverage(p.name+" Plan",
		[]policy.BenefitType{
			policy.Hospitalization,
			policy.OutpatientTreatments,
			policy.Surgery,
			policy.MajorSurgery,
			policy.MinorSurgery,
			policy.DiagnosticImaging,
			policy.OncologyTreatments,
			policy.CriticalIllness,
			policy.ChronicConditions,
			policy.AcuteConditions,
			policy.Accident,
			policy.Dental,
			policy.PreventiveCare,
			policy.MedicationAdmin,
		},
		decimal.NewFromInt(deductible), limits, exclusions)
}

func (p *PrivateProvider) PatientPolicy(patient models.Patient) (*policy.InsurancePolicy, error) {
	if !p.IsEligible(patient) {
		return nil, nil
	}

	coverage, err := p.randomCoverage()
	if err != nil {
		return nil, err
	}

	policyNumber := fmt.Sprintf("%s-%010d-%s",
		constants.PrivatePolicyPrefix, p.rng.Int63n(1e10), patient.PatientID)
	return policy.NewInsurancePolicy(policyNumber, patient, p.providerRef(), coverage)
}

func (p *PrivateProvider) ProcessClaim(patient models.Patient, claim *claims.InsuranceClaim) (bool, error) {
	return processClaim(&p.ledger, p.name, patient, claim)
}
