package testUtils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/openhms/hca-app/hca/codes"
	"github.com/openhms/hca-app/hca/errors"
	"github.com/openhms/hca-app/hca/medical"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/policy"
	"github.com/shopspring/decimal"
)

// RandomPatient fabricates a plausible resident-or-visitor patient.
func RandomPatient(rng *rand.Rand) models.Patient {
	sex := "F"
	name := randomdata.FullName(randomdata.Female)
	if rng.Intn(2) == 0 {
		sex = "M"
		name = randomdata.FullName(randomdata.Male)
	}

	statuses := []models.ResidentialStatus{
		models.Citizen, models.PermanentResident, models.Visitor,
	}
	dob := time.Date(1950+rng.Intn(60), time.Month(1+rng.Intn(12)),
		1+rng.Intn(28), 0, 0, 0, 0, time.UTC)

	return models.Patient{
		Person:            models.Person{Name: name, Sex: sex, DateOfBirth: dob},
		PatientID:         fmt.Sprintf("P%07d", rng.Intn(10000000)),
		ResidentialStatus: statuses[rng.Intn(len(statuses))],
	}
}

func RandomDoctor(rng *rand.Rand) models.Staff {
	return models.Staff{
		Person:  models.Person{Name: randomdata.FullName(randomdata.RandomGender)},
		StaffID: fmt.Sprintf("S%05d", rng.Intn(100000)),
		Role:    models.Doctor,
	}
}

// RandomVisit builds a discharged visit with a handful of random
// reference codes from the registry.
func RandomVisit(registry *codes.Registry, patient models.Patient,
	doctor models.Staff, rng *rand.Rand) (*medical.Visit, error) {

	admission := time.Now().UTC().Add(-96 * time.Hour)
	visit, err := medical.NewVisit(patient, doctor, admission)
	if err != nil {
		return nil, err
	}

	ward, err := medical.NewWard(medical.General, "B2")
	if err != nil {
		return nil, err
	}
	stay, err := medical.NewWardStay(ward, admission, admission.Add(time.Duration(1+rng.Intn(4))*24*time.Hour))
	if err != nil {
		return nil, err
	}
	if err := visit.AddWardStay(stay); err != nil {
		return nil, err
	}

	for i := 0; i < 1+rng.Intn(3); i++ {
		d, err := registry.RandomDiagnostic()
		if err != nil {
			return nil, err
		}
		if err := visit.AddDiagnosis(d); err != nil {
			return nil, err
		}
	}
	for i := 0; i < rng.Intn(3); i++ {
		p, err := registry.RandomProcedure()
		if err != nil {
			return nil, err
		}
		if err := visit.AddProcedure(p); err != nil {
			return nil, err
		}
	}
	if m, err := registry.RandomMedication(); err == nil {
		if err := visit.Prescribe(m, 1+rng.Intn(20)); err != nil {
			return nil, err
		}
	}

	if err := visit.Discharge(admission.Add(96 * time.Hour)); err != nil {
		return nil, err
	}
	return visit, nil
}

// CompatibleVisit builds a discharged visit whose covered charges land
// past a deductible-derived target, so the resulting claim has a
// positive payable amount. Fixture machinery only; adjudication never
// depends on it.
func CompatibleVisit(registry *codes.Registry, coverage policy.Coverage,
	patient models.Patient, doctor models.Staff, rng *rand.Rand) (*medical.Visit, error) {

	visit, err := medical.NewVisit(patient, doctor, time.Now().UTC().Add(-72*time.Hour))
	if err != nil {
		return nil, err
	}

	target := coverage.DeductibleAmount().Mul(decimal.NewFromInt(3))
	if !target.IsPositive() {
		target = decimal.NewFromInt(1000)
	}

	var coveredBenefits []policy.BenefitType
	for _, benefit := range policy.AllBenefitTypes {
		if coverage.IsBenefitCovered(benefit) {
			coveredBenefits = append(coveredBenefits, benefit)
		}
	}
	if len(coveredBenefits) == 0 {
		return nil, &errors.NoMatchingCodesError{Criteria: "coverage with no covered benefits"}
	}

	coveredTotal := decimal.Zero
	added := 0
	for attempts := 0; attempts < 200 && coveredTotal.LessThan(target); attempts++ {
		benefit := coveredBenefits[rng.Intn(len(coveredBenefits))]

		if d, err := registry.RandomDiagnosticMatchingBenefit(benefit, true); err == nil {
			if !coverage.IsItemCovered(d, true) {
				continue
			}
			if err := visit.AddDiagnosis(d); err != nil {
				return nil, err
			}
			coveredTotal = coveredTotal.Add(d.Charges())
			added++
			continue
		}
		if p, err := registry.RandomProcedureMatchingBenefit(benefit, true); err == nil {
			if !coverage.IsItemCovered(p, true) {
				continue
			}
			if err := visit.AddProcedure(p); err != nil {
				return nil, err
			}
			coveredTotal = coveredTotal.Add(p.Charges())
			added++
		}
	}

	if added == 0 {
		return nil, &errors.NoMatchingCodesError{Criteria: "codes matching any covered benefit"}
	}

	if err := visit.Discharge(time.Now().UTC()); err != nil {
		return nil, err
	}
	return visit, nil
}
