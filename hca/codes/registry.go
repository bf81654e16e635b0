package codes

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/dimchansky/utfbom"
	"github.com/openhms/hca-app/conf"
	"github.com/openhms/hca-app/hca/constants"
	hcaerrors "github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/openhms/hca-app/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Procedure records carry no price column; every procedure bills at a
// flat reference rate.
var defaultProcedurePrice = decimal.RequireFromString("1000.00")

// Registry holds the loaded reference tables. It is populated once by
// LoadRegistry and read-only afterwards, so concurrent readers need no
// locking.
type Registry struct {
	diagnoses   map[string]*DiagnosticCode
	diagList    []*DiagnosticCode
	procedures  map[string]*ProcedureCode
	procList    []*ProcedureCode
	medications map[string]*Medication
	medList     []*Medication
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default loads the process-wide registry from HCA_REF_DATA_DIR
// exactly once. Prefer constructing a Registry explicitly and passing
// it down; Default exists for application entry points.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadRegistry(conf.GetEnv("HCA_REF_DATA_DIR"))
	})
	return defaultRegistry, defaultErr
}

// LoadRegistry reads the three reference tables from dir. Diagnostic
// unit prices are drawn uniformly from [100,500] at load time; they
// stay fixed for the registry's lifetime.
func LoadRegistry(dir string) (*Registry, error) {
	r := &Registry{
		diagnoses:   make(map[string]*DiagnosticCode),
		procedures:  make(map[string]*ProcedureCode),
		medications: make(map[string]*Medication),
	}

	if err := r.loadDiagnoses(filepath.Join(dir, constants.DiagnosticCodesFile)); err != nil {
		return nil, err
	}
	if err := r.loadProcedures(filepath.Join(dir, constants.ProcedureCodesFile)); err != nil {
		return nil, err
	}
	if err := r.loadMedications(filepath.Join(dir, constants.MedicationsFile)); err != nil {
		return nil, err
	}

	log.Registry.Infof("Loaded %d diagnoses, %d procedures, %d medications from %s",
		len(r.diagList), len(r.procList), len(r.medList), dir)
	return r, nil
}

func readTable(path string, fields int) ([][]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &hcaerrors.ReferenceDataError{Err: err, Path: path}
	}
	defer f.Close()

	reader := csv.NewReader(utfbom.SkipOnly(f))
	reader.FieldsPerRecord = fields

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &hcaerrors.ReferenceDataError{Err: errors.Wrap(err, "malformed csv"), Path: path}
	}
	if len(rows) < 2 {
		return nil, &hcaerrors.ReferenceDataError{Err: errors.New("no data rows"), Path: path}
	}
	return rows[1:], nil
}

func (r *Registry) loadDiagnoses(path string) error {
	rows, err := readTable(path, 6)
	if err != nil {
		return err
	}
	for _, row := range rows {
		price := decimal.NewFromInt(int64(100 + rand.Intn(401)))
		d := &DiagnosticCode{
			CategoryCode:     row[0],
			Code:             row[1],
			FullCode:         row[2],
			ShortDescription: row[3],
			FullDescription:  row[4],
			CategoryTitle:    row[5],
			UnitPrice:        price,
		}
		r.diagnoses[d.FullCode] = d
		r.diagList = append(r.diagList, d)
	}
	return nil
}

func (r *Registry) loadProcedures(path string) error {
	rows, err := readTable(path, 2)
	if err != nil {
		return err
	}
	for _, row := range rows {
		p := &ProcedureCode{
			Code:            row[0],
			FullDescription: row[1],
			UnitPrice:       defaultProcedurePrice,
		}
		r.procedures[p.Code] = p
		r.procList = append(r.procList, p)
	}
	return nil
}

func (r *Registry) loadMedications(path string) error {
	rows, err := readTable(path, 8)
	if err != nil {
		return err
	}
	for _, row := range rows {
		price, err := decimal.NewFromString(row[5])
		if err != nil {
			return &hcaerrors.ReferenceDataError{
				Err:  errors.Wrapf(err, "bad price for medication %s", row[0]),
				Path: path,
			}
		}
		m := &Medication{
			Code:            row[0],
			Name:            row[1],
			DrugCategory:    row[2],
			Dosage:          row[3],
			UnitForm:        row[4],
			Price:           price,
			UnitDescription: row[6],
			Manufacturer:    row[7],
		}
		r.medications[m.Code] = m
		r.medList = append(r.medList, m)
	}
	return nil
}

func (r *Registry) DiagnosticCount() int { return len(r.diagList) }
func (r *Registry) ProcedureCount() int  { return len(r.procList) }
func (r *Registry) MedicationCount() int { return len(r.medList) }

// LookupDiagnostic resolves a full diagnostic code. Unknown codes fail
// with CodeNotFoundError, never a silent default.
func (r *Registry) LookupDiagnostic(code string) (*DiagnosticCode, error) {
	if d, ok := r.diagnoses[code]; ok {
		return d, nil
	}
	return nil, &hcaerrors.CodeNotFoundError{Code: code}
}

func (r *Registry) LookupProcedure(code string) (*ProcedureCode, error) {
	if p, ok := r.procedures[code]; ok {
		return p, nil
	}
	return nil, &hcaerrors.CodeNotFoundError{Code: code}
}

func (r *Registry) LookupMedication(code string) (*Medication, error) {
	if m, ok := r.medications[code]; ok {
		return m, nil
	}
	return nil, &hcaerrors.CodeNotFoundError{Code: code}
}

// AllDiagnosticsInCategory returns every diagnosis whose category code
// matches. An unknown category yields an empty slice, not an error.
func (r *Registry) AllDiagnosticsInCategory(categoryCode string) []*DiagnosticCode {
	var matches []*DiagnosticCode
	for _, d := range r.diagList {
		if d.CategoryCode == categoryCode {
			matches = append(matches, d)
		}
	}
	return matches
}

func (r *Registry) RandomDiagnosticOfCategory(categoryCode string) (*DiagnosticCode, error) {
	matches := r.AllDiagnosticsInCategory(categoryCode)
	if len(matches) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: fmt.Sprintf("diagnostic category %s", categoryCode)}
	}
	return matches[rand.Intn(len(matches))], nil
}

func (r *Registry) RandomDiagnostic() (*DiagnosticCode, error) {
	if len(r.diagList) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: "any diagnostic"}
	}
	return r.diagList[rand.Intn(len(r.diagList))], nil
}

func (r *Registry) RandomProcedure() (*ProcedureCode, error) {
	if len(r.procList) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: "any procedure"}
	}
	return r.procList[rand.Intn(len(r.procList))], nil
}

func (r *Registry) RandomMedication() (*Medication, error) {
	if len(r.medList) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: "any medication"}
	}
	return r.medList[rand.Intn(len(r.medList))], nil
}

// RandomDiagnosticMatchingBenefit picks among diagnoses classifying to
// the wanted benefit under the given patient setting.
func (r *Registry) RandomDiagnosticMatchingBenefit(benefit policy.BenefitType, inpatient bool) (*DiagnosticCode, error) {
	var matches []*DiagnosticCode
	for _, d := range r.diagList {
		if d.ResolveBenefitType(inpatient) == benefit {
			matches = append(matches, d)
		}
	}
	if len(matches) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: fmt.Sprintf("diagnostic benefit %s", benefit)}
	}
	return matches[rand.Intn(len(matches))], nil
}

func (r *Registry) RandomProcedureMatchingBenefit(benefit policy.BenefitType, inpatient bool) (*ProcedureCode, error) {
	var matches []*ProcedureCode
	for _, p := range r.procList {
		if p.ResolveBenefitType(inpatient) == benefit {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return nil, &hcaerrors.NoMatchingCodesError{Criteria: fmt.Sprintf("procedure benefit %s", benefit)}
	}
	return matches[rand.Intn(len(matches))], nil
}
