package billing

import (
	"testing"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quantifiedStub struct {
	stubItem
	Qty int `json:"qty"`
}

func (q *quantifiedStub) ItemQuantity() int { return q.Qty }

type stubVisit struct {
	items     []BillableItem
	inpatient bool
	emergency bool
	finalized bool
}

func (v *stubVisit) RelatedBillableItems() []BillableItem { return v.items }
func (v *stubVisit) IsInpatient() bool                    { return v.inpatient }
func (v *stubVisit) IsEmergency() bool                    { return v.emergency }
func (v *stubVisit) IsFinalized() bool                    { return v.finalized }

func (v *stubVisit) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, item := range v.items {
		total = total.Add(item.UnsubsidisedCharge())
	}
	return total
}

type stubConsultation struct {
	items     []BillableItem
	finalized bool
}

func (c *stubConsultation) RelatedBillableItems() []BillableItem { return c.items }
func (c *stubConsultation) IsFinalized() bool                    { return c.finalized }

func (c *stubConsultation) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.UnsubsidisedCharge())
	}
	return total
}

func TestBuildFromVisit(t *testing.T) {
	visit := &stubVisit{
		items:     []BillableItem{diagnosisItem(100), procedureItem(1000)},
		inpatient: true,
		emergency: true,
		finalized: true,
	}

	bill, err := NewBillBuilder().
		WithPatient(residentPatient()).
		WithVisit(visit).
		Build()
	require.Nil(t, err)

	assert.True(t, bill.IsInpatient())
	assert.True(t, bill.IsEmergency())
	assert.Equal(t, BillOpen, bill.Status())
	assert.True(t, bill.TotalAmount().Equal(decimal.NewFromInt(1100)))
}

func TestBuildRequiresPatient(t *testing.T) {
	_, err := NewBillBuilder().Build()
	var vErr *errors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestBuildRejectsUnfinalizedVisit(t *testing.T) {
	visit := &stubVisit{items: []BillableItem{diagnosisItem(100)}}

	_, err := NewBillBuilder().
		WithPatient(residentPatient()).
		WithVisit(visit).
		Build()
	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestBuildHonorsItemQuantity(t *testing.T) {
	medication := &quantifiedStub{stubItem: *diagnosisItem(25), Qty: 4}
	consultation := &stubConsultation{
		items:     []BillableItem{medication},
		finalized: true,
	}

	bill, err := NewBillBuilder().
		WithPatient(residentPatient()).
		WithConsultation(consultation).
		Build()
	require.Nil(t, err)

	assert.False(t, bill.IsInpatient())
	require.Len(t, bill.Lines(), 1)
	assert.Equal(t, 4, bill.Lines()[0].Quantity)
	assert.True(t, bill.TotalAmount().Equal(decimal.NewFromInt(100)))
}

func TestBuildWithManualLines(t *testing.T) {
	bill, err := NewBillBuilder().
		WithPatient(residentPatient()).
		WithLineItem(procedureItem(500), 2).
		Build()
	require.Nil(t, err)
	assert.True(t, bill.TotalAmount().Equal(decimal.NewFromInt(1000)))
}
