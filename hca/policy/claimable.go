package policy

import "github.com/shopspring/decimal"

// ClaimableItem is satisfied by any billable entity that can resolve
// itself to a benefit bucket for adjudication.
type ClaimableItem interface {
	Charges() decimal.Decimal
	ResolveBenefitType(inpatient bool) BenefitType
	BenefitDescription(inpatient bool) string
}

// CodedItem is optionally satisfied by claimable items that carry a
// billing code. Exclusion criteria consult it when present.
type CodedItem interface {
	BillingCode() string
}
