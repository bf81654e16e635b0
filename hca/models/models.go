package models

import (
	"time"

	"github.com/openhms/hca-app/hca/errors"
)

type ResidentialStatus string

const (
	Citizen           ResidentialStatus = "CITIZEN"
	PermanentResident ResidentialStatus = "PERMANENT_RESIDENT"
	Visitor           ResidentialStatus = "VISITOR"
)

type StaffRole string

const (
	Doctor StaffRole = "DOCTOR"
	Nurse  StaffRole = "NURSE"
	Clerk  StaffRole = "CLERK"
)

// Person holds the demographic fields shared by patients and staff.
// Roles are modeled as separate records embedding Person rather than
// as a type hierarchy.
type Person struct {
	Name        string    `json:"name"`
	Sex         string    `json:"sex"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

type Patient struct {
	Person
	PatientID         string            `json:"patientId"`
	ResidentialStatus ResidentialStatus `json:"residentialStatus"`
}

type Staff struct {
	Person
	StaffID string    `json:"staffId"`
	Role    StaffRole `json:"role"`
}

func NewPatient(name, sex string, dob time.Time, patientID string, status ResidentialStatus) (*Patient, error) {
	if name == "" {
		return nil, &errors.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if patientID == "" {
		return nil, &errors.ValidationError{Field: "patientId", Msg: "must not be empty"}
	}
	switch status {
	case Citizen, PermanentResident, Visitor:
	default:
		return nil, &errors.ValidationError{Field: "residentialStatus", Msg: "unrecognized value"}
	}

	return &Patient{
		Person:            Person{Name: name, Sex: sex, DateOfBirth: dob},
		PatientID:         patientID,
		ResidentialStatus: status,
	}, nil
}

// IsResident reports whether the patient qualifies for resident
// benefits (citizens and permanent residents).
func (p *Patient) IsResident() bool {
	return p.ResidentialStatus == Citizen || p.ResidentialStatus == PermanentResident
}
