/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

// Status is the clinical classification of a single test result.
type Status string

// Status values are the only statuses a TestResult can carry.
const (
	StatusHigh     Status = "HIGH"
	StatusLow      Status = "LOW"
	StatusNormal   Status = "NORMAL"
	StatusAbnormal Status = "ABNORMAL"
	StatusUnknown  Status = "UNKNOWN"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusHigh, StatusLow, StatusNormal, StatusAbnormal, StatusUnknown:
		return true
	}

	return false
}

// Section names a clinical region of a report.
type Section string

// Section values, in the order their test lists appear on a PatientReport.
const (
	SectionHematology        Section = "hematology"
	SectionBiochemistry      Section = "biochemistry"
	SectionSerology          Section = "serology"
	SectionClinicalPathology Section = "clinical_pathology"
)

// Sections lists every section in report order.
func Sections() []Section {
	return []Section{
		SectionHematology,
		SectionBiochemistry,
		SectionSerology,
		SectionClinicalPathology,
	}
}

// TestResult is one measured test as found in the report text.
type TestResult struct {
	Name           string `json:"name"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
	Status         Status `json:"status"`
}

// Field identifies a patient or report metadata field.
type Field string

// Field values scraped by the field extractor.
const (
	FieldRegistrationNumber Field = "registration_number"
	FieldPatientName        Field = "patient_name"
	FieldAge                Field = "age"
	FieldSex                Field = "sex"
	FieldPhoneNumber        Field = "phone_number"
	FieldCollectionDate     Field = "collection_date"
	FieldReportingDate      Field = "reporting_date"
	FieldReferringDoctor    Field = "referring_doctor"
	FieldLocation           Field = "location"
	FieldLabName            Field = "lab_name"
	FieldPathologist        Field = "pathologist"
)

// PatientReport is the structured record extracted from one report document.
// Metadata fields are nil when the report did not contain them.
type PatientReport struct {
	RegistrationNumber *string `json:"registration_number"`
	PatientName        *string `json:"patient_name"`
	Age                *string `json:"age"`
	Sex                *string `json:"sex"`
	PhoneNumber        *string `json:"phone_number"`
	CollectionDate     *string `json:"collection_date"`
	ReportingDate      *string `json:"reporting_date"`
	ReferringDoctor    *string `json:"referring_doctor"`
	Location           *string `json:"location"`
	LabName            *string `json:"lab_name"`
	Pathologist        *string `json:"pathologist"`

	HematologyTests        []TestResult `json:"hematology_tests"`
	BiochemistryTests      []TestResult `json:"biochemistry_tests"`
	SerologyTests          []TestResult `json:"serology_tests"`
	ClinicalPathologyTests []TestResult `json:"clinical_pathology_tests"`

	BloodGroup              *string  `json:"blood_group"`
	RhType                  *string  `json:"rh_type"`
	PeripheralSmearFindings []string `json:"peripheral_smear_findings"`
	ClinicalNotes           []string `json:"clinical_notes"`
}

// Tests returns every test result in section order.
func (r *PatientReport) Tests() []TestResult {
	all := make([]TestResult, 0,
		len(r.HematologyTests)+len(r.BiochemistryTests)+len(r.SerologyTests)+len(r.ClinicalPathologyTests))
	all = append(all, r.HematologyTests...)
	all = append(all, r.BiochemistryTests...)
	all = append(all, r.SerologyTests...)
	all = append(all, r.ClinicalPathologyTests...)

	return all
}

// SectionTests returns the test list stored for a section.
func (r *PatientReport) SectionTests(section Section) []TestResult {
	switch section {
	case SectionHematology:
		return r.HematologyTests
	case SectionBiochemistry:
		return r.BiochemistryTests
	case SectionSerology:
		return r.SerologyTests
	case SectionClinicalPathology:
		return r.ClinicalPathologyTests
	}

	return nil
}

// IsEmpty reports whether nothing at all was extracted.
func (r *PatientReport) IsEmpty() bool {
	if len(r.Tests()) > 0 || len(r.PeripheralSmearFindings) > 0 || len(r.ClinicalNotes) > 0 {
		return false
	}

	for _, v := range r.metadataFields() {
		if *v != nil {
			return false
		}
	}

	return r.BloodGroup == nil && r.RhType == nil
}

func (r *PatientReport) metadataFields() map[Field]**string {
	return map[Field]**string{
		FieldRegistrationNumber: &r.RegistrationNumber,
		FieldPatientName:        &r.PatientName,
		FieldAge:                &r.Age,
		FieldSex:                &r.Sex,
		FieldPhoneNumber:        &r.PhoneNumber,
		FieldCollectionDate:     &r.CollectionDate,
		FieldReportingDate:      &r.ReportingDate,
		FieldReferringDoctor:    &r.ReferringDoctor,
		FieldLocation:           &r.Location,
		FieldLabName:            &r.LabName,
		FieldPathologist:        &r.Pathologist,
	}
}

// Metadata returns the metadata fields that are present.
func (r *PatientReport) Metadata() map[Field]string {
	out := make(map[Field]string)
	for field, v := range r.metadataFields() {
		if *v != nil {
			out[field] = **v
		}
	}

	return out
}
