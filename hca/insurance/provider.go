package insurance

import (
	"github.com/openhms/hca-app/hca/claims"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/openhms/hca-app/log"
	"github.com/shopspring/decimal"
)

// InsuranceProvider issues policies to eligible patients and
// adjudicates submitted claims against them.
type InsuranceProvider interface {
	Name() string
	Kind() string
	IsEligible(patient models.Patient) bool

	// PatientPolicy returns (nil, nil) for ineligible patients;
	// ineligibility is not an error.
	PatientPolicy(patient models.Patient) (*policy.InsurancePolicy, error)

	// ProcessClaim consumes a SUBMITTED claim and moves it to APPROVED
	// or REJECTED, reporting approval as the boolean.
	ProcessClaim(patient models.Patient, claim *claims.InsuranceClaim) (bool, error)
}

// claimLedger tracks amounts already paid out per policy number so
// that later claims are capped by the remaining headroom.
type claimLedger struct {
	histories map[string]ClaimHistory
}

func newClaimLedger() claimLedger {
	return claimLedger{histories: make(map[string]ClaimHistory)}
}

func (l *claimLedger) historyFor(policyNumber string) ClaimHistory {
	return l.histories[policyNumber]
}

func (l *claimLedger) record(policyNumber string, amount decimal.Decimal) {
	history := l.histories[policyNumber]
	history.AnnualClaimed = history.AnnualClaimed.Add(amount)
	history.LifetimeClaimed = history.LifetimeClaimed.Add(amount)
	l.histories[policyNumber] = history
}

// processClaim runs the shared adjudication path. The claim never
// stays SUBMITTED after a process attempt: it is approved when a
// positive payable amount results and rejected otherwise.
func processClaim(ledger *claimLedger, providerName string,
	patient models.Patient, claim *claims.InsuranceClaim) (bool, error) {

	if claim == nil {
		return false, &errors.ValidationError{Field: "claim", Msg: "must not be nil"}
	}
	if !claim.IsSubmitted() {
		return false, &errors.InvalidStateError{Op: "process claim", State: string(claim.Status())}
	}

	logger := log.Claims.WithField("claimId", claim.ClaimID())

	claimPolicy := claim.Policy()
	if claimPolicy.PolicyHolder.PatientID != patient.PatientID {
		if err := claim.Reject("policy holder does not match patient"); err != nil {
			return false, err
		}
		logger.Warnf("%s rejected claim: policy holder mismatch", providerName)
		return false, nil
	}

	adjudication := ResolveCoverage(claim.Bill(), claimPolicy.Coverage,
		ledger.historyFor(claimPolicy.PolicyNumber))

	if !adjudication.PayableAmount.IsPositive() {
		if err := claim.Reject("no payable amount under coverage"); err != nil {
			return false, err
		}
		logger.Infof("%s rejected claim: nothing payable", providerName)
		return false, nil
	}

	if err := claim.Approve(adjudication.PayableAmount); err != nil {
		return false, err
	}
	ledger.record(claimPolicy.PolicyNumber, adjudication.PayableAmount)
	logger.Infof("%s approved claim, payable %s", providerName, adjudication.PayableAmount)
	return true, nil
}
