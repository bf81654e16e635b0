package medical

import (
	"fmt"
	"time"

	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/constants"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// WardStay bills a ward at its daily rate for the whole days between
// admission and transfer or discharge, never fewer than one day.
type WardStay struct {
	Ward      Ward      `json:"ward"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

var _ billing.BillableItem = &WardStay{}

func NewWardStay(ward Ward, start, end time.Time) (*WardStay, error) {
	if end.Before(start) {
		return nil, &errors.ValidationError{Field: "endTime", Msg: "must not precede startTime"}
	}
	return &WardStay{Ward: ward, StartTime: start, EndTime: end}, nil
}

func (s *WardStay) Days() int {
	days := int(s.EndTime.Sub(s.StartTime).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func (s *WardStay) BillingCode() string {
	return fmt.Sprintf("%s-%s-%d", s.Ward.CodePrefix(), s.Ward.Class, s.Days())
}

func (s *WardStay) Description() string {
	return fmt.Sprintf("%s ward (class %s), %d day(s)", s.Ward.Kind, s.Ward.Class, s.Days())
}

func (s *WardStay) Category() string { return constants.CategoryWard }
func (s *WardStay) Kind() string     { return "wardStay" }

func (s *WardStay) UnsubsidisedCharge() decimal.Decimal {
	return s.Ward.DailyRate.Mul(decimal.NewFromInt(int64(s.Days())))
}

func (s *WardStay) Charges() decimal.Decimal { return s.UnsubsidisedCharge() }

func (s *WardStay) ResolveBenefitType(inpatient bool) policy.BenefitType {
	switch s.Ward.Kind {
	case Labour:
		return policy.Maternity
	case ICU:
		return policy.Hospitalization
	case DaySurgery:
		if inpatient {
			return policy.Surgery
		}
		return policy.OutpatientTreatments
	default:
		return policy.FallbackBenefit(inpatient)
	}
}

func (s *WardStay) BenefitDescription(inpatient bool) string {
	return s.ResolveBenefitType(inpatient).Description()
}
