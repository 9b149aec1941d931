// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/humaidq/labscan/pathology"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func sampleReport() *pathology.PatientReport {
	return &pathology.PatientReport{
		PatientName:    stringPtr("RAMESH KUMAR"),
		Age:            stringPtr("45 Y"),
		CollectionDate: stringPtr("12-03-2024 08:15 AM"),
		LabName:        stringPtr("Airmed Pathology Pvt. Ltd."),
		HematologyTests: []pathology.TestResult{
			{Name: pathology.TestHemoglobin, Value: "16.2", Unit: "gm%", ReferenceRange: "12.0 - 16.0", Status: pathology.StatusHigh},
			{Name: pathology.TestRBCCount, Value: "4.8", Unit: "mill/cmm", ReferenceRange: "4.5 - 5.5", Status: pathology.StatusNormal},
		},
		SerologyTests: []pathology.TestResult{
			{Name: pathology.TestHIV1, Value: "Non Reactive", Status: pathology.StatusNormal},
			{Name: pathology.TestHIV2, Value: "Reactive", Status: pathology.StatusAbnormal},
		},
		BloodGroup:              stringPtr("B"),
		RhType:                  stringPtr("Positive"),
		PeripheralSmearFindings: []string{"Normocytic normochromic RBCs."},
	}
}

func mustSaveReport(t *testing.T, source string, report *pathology.PatientReport) uuid.UUID {
	t.Helper()

	id, err := SaveReport(testContext(), source, report)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	return id
}
