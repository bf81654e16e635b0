package billing

import (
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// BillableItem is the uniform contract every chargeable entity
// satisfies: diagnoses, procedures, medication lines, ward stays, and
// flat fees. Items are immutable once constructed.
type BillableItem interface {
	policy.ClaimableItem
	BillingCode() string
	Description() string
	Category() string
	UnsubsidisedCharge() decimal.Decimal

	// Kind discriminates the concrete type for serialization. Each
	// kind must be registered with RegisterItemKind.
	Kind() string
}

// QuantifiedItem is optionally satisfied by items that carry their own
// quantity (medication lines). The builder bills such items with that
// quantity instead of 1.
type QuantifiedItem interface {
	ItemQuantity() int
}
