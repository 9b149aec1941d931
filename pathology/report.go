/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

// Assemble builds a report from extracted metadata, per-section results and
// free-text findings. Fields missing from metadata stay nil and section lists
// keep their extraction order. No result is deduplicated across sections.
func Assemble(metadata map[Field]string, sections map[Section][]TestResult, findings Findings) *PatientReport {
	report := &PatientReport{}

	for field, dst := range report.metadataFields() {
		if value, ok := metadata[field]; ok {
			*dst = &value
		}
	}

	report.HematologyTests = append(report.HematologyTests, sections[SectionHematology]...)
	report.BiochemistryTests = append(report.BiochemistryTests, sections[SectionBiochemistry]...)
	report.SerologyTests = append(report.SerologyTests, sections[SectionSerology]...)
	report.ClinicalPathologyTests = append(report.ClinicalPathologyTests, sections[SectionClinicalPathology]...)

	if findings.BloodGroup != "" {
		bg := findings.BloodGroup
		report.BloodGroup = &bg
	}

	if findings.RhType != "" {
		rh := findings.RhType
		report.RhType = &rh
	}

	report.PeripheralSmearFindings = append(report.PeripheralSmearFindings, findings.PeripheralSmear...)
	report.ClinicalNotes = append(report.ClinicalNotes, findings.ClinicalNotes...)

	return report
}
