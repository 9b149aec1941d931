/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"fmt"
	"strings"
)

// DefaultTips is shown for tests without curated advice.
const DefaultTips = "Consult with your healthcare provider for specific recommendations based on your results."

// Export is the record handed to renderers and summarizers.
type Export struct {
	PatientInfo PatientInfo  `json:"patient_info"`
	Tests       []ExportTest `json:"tests"`
}

// PatientInfo is the subset of report metadata shown to the patient.
type PatientInfo struct {
	Name               *string `json:"name"`
	Age                *string `json:"age"`
	Sex                *string `json:"sex"`
	RegistrationNumber *string `json:"registration_number"`
	CollectionDate     *string `json:"collection_date"`
	ReportingDate      *string `json:"reporting_date"`
	LabName            *string `json:"lab_name"`
}

// Bounds are the curated normal limits of a test.
type Bounds struct {
	NormalMin float64 `json:"normal_min"`
	NormalMax float64 `json:"normal_max"`
}

// ExportTest is one test in the export record. Tests with a reference table
// entry carry Ranges; the others carry the printed ReferenceRange, if any.
type ExportTest struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Unit           string  `json:"unit"`
	Status         Status  `json:"status"`
	Ranges         *Bounds `json:"ranges,omitempty"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Meaning        string  `json:"meaning"`
	Tips           string  `json:"tips"`
}

// FallbackMeaning is the meaning shown for a test that has no table entry.
func FallbackMeaning(name string) string {
	return fmt.Sprintf("This test measures %s levels in your body.", strings.ToLower(name))
}

// BuildExport converts a report into the export record, enriching every test
// from table.
func BuildExport(report *PatientReport, table *ReferenceTable) Export {
	out := Export{
		PatientInfo: PatientInfo{
			Name:               report.PatientName,
			Age:                report.Age,
			Sex:                report.Sex,
			RegistrationNumber: report.RegistrationNumber,
			CollectionDate:     report.CollectionDate,
			ReportingDate:      report.ReportingDate,
			LabName:            report.LabName,
		},
		Tests: []ExportTest{},
	}

	for _, t := range report.Tests() {
		et := ExportTest{
			Name:   t.Name,
			Value:  t.Value,
			Unit:   t.Unit,
			Status: t.Status,
		}

		if entry, ok := table.Lookup(t.Name); ok {
			et.Ranges = &Bounds{NormalMin: entry.NormalMin, NormalMax: entry.NormalMax}
			et.Meaning = entry.Meaning
			et.Tips = entry.Tips
		} else {
			et.ReferenceRange = t.ReferenceRange
			et.Meaning = FallbackMeaning(t.Name)
			et.Tips = DefaultTips
		}

		if et.Meaning == "" {
			et.Meaning = FallbackMeaning(t.Name)
		}

		if et.Tips == "" {
			et.Tips = DefaultTips
		}

		out.Tests = append(out.Tests, et)
	}

	return out
}
