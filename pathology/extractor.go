/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

// Extractor turns report text into a PatientReport. It holds only read-only
// state and is safe for concurrent use.
type Extractor struct {
	table      *ReferenceTable
	classifier *Classifier
}

// NewExtractor returns an extractor that classifies against table. A nil table
// selects DefaultReferenceTable.
func NewExtractor(table *ReferenceTable) *Extractor {
	if table == nil {
		table = DefaultReferenceTable()
	}

	return &Extractor{table: table, classifier: NewClassifier(table)}
}

// Table returns the reference table the extractor classifies against.
func (e *Extractor) Table() *ReferenceTable {
	return e.table
}

// Extract segments text, matches every section and assembles the report.
// Text that matches nothing yields an empty report, never an error.
func (e *Extractor) Extract(text string) *PatientReport {
	spans := Segment(text)

	results := make(map[Section][]TestResult, len(spans))
	for _, section := range Sections() {
		results[section] = MatchTests(section, spans[section], e.classifier)
	}

	report := Assemble(ExtractFields(text), results, ExtractFindings(text, spans))

	logger.Debug("Extracted report", "tests", len(report.Tests()), "fields", len(report.Metadata()))

	return report
}

// Export builds the export record of report using the extractor's table.
func (e *Extractor) Export(report *PatientReport) Export {
	return BuildExport(report, e.table)
}
