// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package pathology

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	metadata := map[Field]string{FieldPatientName: "ASHA", FieldAge: "32 Y"}
	sections := map[Section][]TestResult{
		SectionHematology: {{Name: TestHemoglobin, Value: "13", Status: StatusNormal}},
		SectionSerology: {
			{Name: TestHIV1, Value: "Non Reactive", Status: StatusNormal},
			{Name: TestHIV2, Value: "Reactive", Status: StatusAbnormal},
		},
	}

	report := Assemble(metadata, sections, Findings{BloodGroup: "O", ClinicalNotes: []string{"Fasting sample."}})

	if report.PatientName == nil || *report.PatientName != "ASHA" {
		t.Fatalf("expected patient name, got %v", report.PatientName)
	}

	if report.Sex != nil || report.LabName != nil {
		t.Fatalf("absent fields must stay nil")
	}

	if len(report.BiochemistryTests) != 0 || len(report.ClinicalPathologyTests) != 0 {
		t.Fatalf("expected empty lists for missing sections")
	}

	if report.SerologyTests[0].Name != TestHIV1 || report.SerologyTests[1].Name != TestHIV2 {
		t.Fatalf("expected extraction order to be kept: %+v", report.SerologyTests)
	}

	if report.BloodGroup == nil || *report.BloodGroup != "O" || report.RhType != nil {
		t.Fatalf("unexpected typing fields %v %v", report.BloodGroup, report.RhType)
	}

	if len(report.Tests()) != 3 {
		t.Fatalf("expected 3 tests, got %d", len(report.Tests()))
	}
}

func TestAssembleKeepsDuplicatesAcrossSections(t *testing.T) {
	t.Parallel()

	dup := TestResult{Name: TestHemoglobin, Value: "13", Status: StatusNormal}
	report := Assemble(nil, map[Section][]TestResult{
		SectionHematology:   {dup},
		SectionBiochemistry: {dup},
	}, Findings{})

	if len(report.Tests()) != 2 {
		t.Fatalf("expected duplicates to be kept, got %d tests", len(report.Tests()))
	}
}

func TestBuildExport(t *testing.T) {
	t.Parallel()

	name := "ASHA"
	report := &PatientReport{
		PatientName: &name,
		HematologyTests: []TestResult{
			{Name: TestHemoglobin, Value: "16.2", Unit: "gm%", ReferenceRange: "12.0 - 16.0", Status: StatusHigh},
			{Name: TestPolymorphs, Value: "60", Unit: "%", ReferenceRange: "40 - 75", Status: StatusNormal},
		},
		ClinicalPathologyTests: []TestResult{
			{Name: TestUrineColour, Value: "Pale Yellow", Status: StatusNormal},
		},
	}

	export := BuildExport(report, DefaultReferenceTable())

	if export.PatientInfo.Name == nil || *export.PatientInfo.Name != "ASHA" || export.PatientInfo.Age != nil {
		t.Fatalf("unexpected patient info %+v", export.PatientInfo)
	}

	if len(export.Tests) != 3 {
		t.Fatalf("expected 3 tests, got %d", len(export.Tests))
	}

	hb := export.Tests[0]
	if hb.Ranges == nil || hb.Ranges.NormalMin != 12 || hb.Ranges.NormalMax != 16 || hb.ReferenceRange != "" {
		t.Fatalf("expected table ranges for hemoglobin, got %+v", hb)
	}

	poly := export.Tests[1]
	if poly.Ranges != nil || poly.ReferenceRange != "40 - 75" {
		t.Fatalf("expected printed range for polymorphs, got %+v", poly)
	}

	if poly.Meaning != "This test measures polymorphs levels in your body." || poly.Tips != DefaultTips {
		t.Fatalf("unexpected fallback text %+v", poly)
	}

	raw, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	info := decoded["patient_info"].(map[string]any)
	if info["sex"] != nil {
		t.Fatalf("expected null sex, got %v", info["sex"])
	}

	tests := decoded["tests"].([]any)
	colour := tests[2].(map[string]any)
	if _, ok := colour["reference_range"]; ok {
		t.Fatalf("reference_range must be omitted when empty: %s", raw)
	}

	if _, ok := colour["ranges"]; ok {
		t.Fatalf("ranges must be omitted without a table entry: %s", raw)
	}

	if !strings.Contains(string(raw), `"ranges":{"normal_min":12,"normal_max":16}`) {
		t.Fatalf("unexpected ranges encoding: %s", raw)
	}
}

func TestBuildExportEmptyReport(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(BuildExport(&PatientReport{}, DefaultReferenceTable()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if !strings.Contains(string(raw), `"tests":[]`) {
		t.Fatalf("expected empty tests array, got %s", raw)
	}
}
