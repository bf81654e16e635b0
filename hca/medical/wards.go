package medical

import (
	"fmt"

	"github.com/openhms/hca-app/hca/errors"
	"github.com/shopspring/decimal"
)

type WardKind string

const (
	Labour     WardKind = "LABOUR"
	ICU        WardKind = "ICU"
	DaySurgery WardKind = "DAYSURGERY"
	General    WardKind = "GENERAL"
)

var wardCodePrefixes = map[WardKind]string{
	Labour:     "LBR",
	ICU:        "ICU",
	DaySurgery: "DSG",
	General:    "GEN",
}

// Daily rates by ward kind and class.
var wardRates = map[WardKind]map[string]decimal.Decimal{
	Labour: {
		"A":  decimal.NewFromInt(1500),
		"B1": decimal.NewFromInt(1000),
		"B2": decimal.NewFromInt(500),
		"C":  decimal.NewFromInt(250),
	},
	ICU: {
		"ICU": decimal.NewFromInt(2000),
	},
	DaySurgery: {
		"SEATER": decimal.NewFromInt(300),
		"COHORT": decimal.NewFromInt(250),
		"SINGLE": decimal.NewFromInt(200),
	},
	General: {
		"A":  decimal.NewFromInt(500),
		"B1": decimal.NewFromInt(250),
		"B2": decimal.NewFromInt(200),
		"C":  decimal.NewFromInt(150),
	},
}

// Ward is a bed class within a ward kind, carrying its daily rate.
type Ward struct {
	Kind      WardKind        `json:"kind"`
	Class     string          `json:"class"`
	DailyRate decimal.Decimal `json:"dailyRate"`
}

func NewWard(kind WardKind, class string) (Ward, error) {
	classes, ok := wardRates[kind]
	if !ok {
		return Ward{}, &errors.ValidationError{Field: "kind", Msg: fmt.Sprintf("unknown ward kind %s", kind)}
	}
	rate, ok := classes[class]
	if !ok {
		return Ward{}, &errors.ValidationError{
			Field: "class",
			Msg:   fmt.Sprintf("ward kind %s has no class %s", kind, class),
		}
	}
	return Ward{Kind: kind, Class: class, DailyRate: rate}, nil
}

func (w Ward) CodePrefix() string {
	return wardCodePrefixes[w.Kind]
}
