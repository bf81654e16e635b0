package insurance

import (
	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// ClaimHistory is the running total already paid out against one
// policy, fed into limit arithmetic.
type ClaimHistory struct {
	AnnualClaimed   decimal.Decimal
	LifetimeClaimed decimal.Decimal
}

// Adjudication is the outcome of resolving a bill against a coverage.
type Adjudication struct {
	CoveredAmount  decimal.Decimal
	PayableAmount  decimal.Decimal
	PatientPayable decimal.Decimal
}

// ResolveCoverage computes the insurer-payable amount for a bill:
// sum the charges of covered items, subtract the deductible (floored
// at zero), then cap at the remaining annual and lifetime headroom
// (also floored at zero). Uncovered items stay fully patient-payable.
func ResolveCoverage(bill *billing.Bill, coverage policy.Coverage, history ClaimHistory) Adjudication {
	inpatient := bill.IsInpatient()

	covered := decimal.Zero
	for _, item := range bill.ClaimableItems() {
		if coverage.IsItemCovered(item, inpatient) {
			covered = covered.Add(item.Charges())
		}
	}

	payable := covered.Sub(coverage.DeductibleAmount())
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	limits := coverage.Limits()
	headroom := decimal.Min(
		limits.AnnualLimit.Sub(history.AnnualClaimed),
		limits.LifetimeLimit.Sub(history.LifetimeClaimed),
	)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}
	if payable.GreaterThan(headroom) {
		payable = headroom
	}

	return Adjudication{
		CoveredAmount:  covered,
		PayableAmount:  payable,
		PatientPayable: bill.TotalAmount().Sub(payable),
	}
}
