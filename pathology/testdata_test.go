// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package pathology

import "testing"

const sampleReport = `Airmed Pathology Pvt. Ltd.
Reg. No. : 1234 (OPD)    Name : RAMESH KUMAR Reporting Date : 12-03-2024 10:30 AM
Age : 45 Y    Sex : MALE    Pt. Tele No: 9876543210
Collection Date : 12-03-2024 08:15 AM
Ref. By : DR SHARMA    Location : PUNE
HEMATOLOGY
HEMOGLOBIN 16.2 gm% 12.0 - 16.0
Total RBC Count 4.8 mill/cmm 4.5 - 5.5
Total WBC Count (TLC) 12500 /cmm 4000 - 11000
Platelet Count 140000 /cmm 150000 - 450000
ABO "B" Rh Type Positive
Peripheral Smear: Normocytic normochromic RBCs.
Platelets adequate on smear.

BIOCHEMISTRY
Glucose, Fasting, Plasma 96 mg/dL 70 - 110
SGPT 55 IU/L 10 - 40
SEROLOGY/IMMUNOLOGY
HbsAg Negative
HIV I Non Reactive
HIV II Reactive
CLINICAL PATHOLOGY
Volume 30 ML
Colour Pale Yellow
Protein Nil
Glucose Present (++)
Pus Cells 2-3
Note: Kindly correlate clinically.
Pathologist : Dr.Anita Rao
`

func findResult(results []TestResult, name string) *TestResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}

	return nil
}

func mustResult(t *testing.T, results []TestResult, name string) TestResult {
	t.Helper()

	r := findResult(results, name)
	if r == nil {
		t.Fatalf("expected result %q in %+v", name, results)
	}

	return *r
}
