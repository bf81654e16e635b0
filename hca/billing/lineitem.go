package billing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BillingLine pairs a billable item with a quantity. Its monetary
// contribution is charge times quantity, always recomputed.
type BillingLine struct {
	Item     BillableItem
	Quantity int
}

func (l BillingLine) Contribution() decimal.Decimal {
	return l.Item.UnsubsidisedCharge().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type lineJSON struct {
	Item     json.RawMessage `json:"item"`
	Quantity int             `json:"quantity"`
}

func (l BillingLine) MarshalJSON() ([]byte, error) {
	item, err := marshalItem(l.Item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(lineJSON{Item: item, Quantity: l.Quantity})
}

func (l *BillingLine) UnmarshalJSON(data []byte) error {
	var raw lineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item, err := unmarshalItem(raw.Item)
	if err != nil {
		return err
	}
	l.Item = item
	l.Quantity = raw.Quantity
	return nil
}
