/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/labscan/pathology"
)

// StoredReport is a saved report with its storage metadata.
type StoredReport struct {
	ID                uuid.UUID
	SourceName        string
	VocabularyVersion string
	CreatedAt         time.Time
	Report            *pathology.PatientReport
}

// ReportSummary is the list view of a stored report.
type ReportSummary struct {
	ID             uuid.UUID `json:"id"`
	SourceName     string    `json:"source_name"`
	PatientName    *string   `json:"patient_name"`
	CollectionDate *string   `json:"collection_date"`
	LabName        *string   `json:"lab_name"`
	TestCount      int       `json:"test_count"`
	FlaggedCount   int       `json:"flagged_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveReport stores report and its test results in one transaction and
// returns the new report id.
func SaveReport(ctx context.Context, sourceName string, report *pathology.PatientReport) (uuid.UUID, error) {
	if pool == nil {
		return uuid.Nil, ErrDatabaseConnectionNotInitialized
	}

	if report == nil {
		return uuid.Nil, ErrNilReport
	}

	id := uuid.New()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO reports (
			id, source_name, vocabulary_version,
			registration_number, patient_name, age, sex, phone_number,
			collection_date, reporting_date, referring_doctor, location, lab_name, pathologist,
			blood_group, rh_type, peripheral_smear_findings, clinical_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.Exec(ctx, query,
		id, sourceName, pathology.VocabularyVersion,
		report.RegistrationNumber, report.PatientName, report.Age, report.Sex, report.PhoneNumber,
		report.CollectionDate, report.ReportingDate, report.ReferringDoctor, report.Location,
		report.LabName, report.Pathologist,
		report.BloodGroup, report.RhType,
		nonNil(report.PeripheralSmearFindings), nonNil(report.ClinicalNotes),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert report: %w", err)
	}

	var rows [][]any

	for _, section := range pathology.Sections() {
		for i, t := range report.SectionTests(section) {
			rows = append(rows, []any{id, string(section), i, t.Name, t.Value, t.Unit, t.ReferenceRange, string(t.Status)})
		}
	}

	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"report_tests"},
			[]string{"report_id", "section", "position", "name", "value", "unit", "reference_range", "status"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert report tests: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit report: %w", err)
	}

	logger.Info("Saved report", "id", id, "source", sourceName, "tests", len(rows))

	return id, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// GetReport loads a stored report by id.
func GetReport(ctx context.Context, id string) (*StoredReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReportID, id)
	}

	stored := &StoredReport{ID: reportID, Report: &pathology.PatientReport{}}
	r := stored.Report

	query := `
		SELECT source_name, vocabulary_version, created_at,
			registration_number, patient_name, age, sex, phone_number,
			collection_date, reporting_date, referring_doctor, location, lab_name, pathologist,
			blood_group, rh_type, peripheral_smear_findings, clinical_notes
		FROM reports
		WHERE id = $1
	`

	err = pool.QueryRow(ctx, query, reportID).Scan(
		&stored.SourceName, &stored.VocabularyVersion, &stored.CreatedAt,
		&r.RegistrationNumber, &r.PatientName, &r.Age, &r.Sex, &r.PhoneNumber,
		&r.CollectionDate, &r.ReportingDate, &r.ReferringDoctor, &r.Location, &r.LabName, &r.Pathologist,
		&r.BloodGroup, &r.RhType, &r.PeripheralSmearFindings, &r.ClinicalNotes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}

		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT section, name, value, unit, reference_range, status
		FROM report_tests
		WHERE report_id = $1
		ORDER BY section, position
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report tests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			section string
			status  string
			t       pathology.TestResult
		)

		if err := rows.Scan(&section, &t.Name, &t.Value, &t.Unit, &t.ReferenceRange, &status); err != nil {
			return nil, fmt.Errorf("failed to scan report test: %w", err)
		}

		t.Status = pathology.Status(status)

		switch pathology.Section(section) {
		case pathology.SectionHematology:
			r.HematologyTests = append(r.HematologyTests, t)
		case pathology.SectionBiochemistry:
			r.BiochemistryTests = append(r.BiochemistryTests, t)
		case pathology.SectionSerology:
			r.SerologyTests = append(r.SerologyTests, t)
		case pathology.SectionClinicalPathology:
			r.ClinicalPathologyTests = append(r.ClinicalPathologyTests, t)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report tests: %w", err)
	}

	return stored, nil
}

// ListReports returns the most recent stored reports, newest first.
func ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT r.id, r.source_name, r.patient_name, r.collection_date, r.lab_name, r.created_at,
			COUNT(t.name),
			COUNT(t.name) FILTER (WHERE t.status IN ('HIGH', 'LOW', 'ABNORMAL'))
		FROM reports r
		LEFT JOIN report_tests t ON t.report_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id
		LIMIT $1
	`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	summaries := []ReportSummary{}

	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.SourceName, &s.PatientName, &s.CollectionDate, &s.LabName,
			&s.CreatedAt, &s.TestCount, &s.FlaggedCount); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report summaries: %w", err)
	}

	return summaries, nil
}

// DeleteReport removes a stored report and its tests.
func DeleteReport(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	reportID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidReportID, id)
	}

	tag, err := pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

// Reports exposes the report functions as a value so handlers can depend on
// an interface.
type Reports struct{}

// SaveReport calls the package-level SaveReport.
func (Reports) SaveReport(ctx context.Context, sourceName string, report *pathology.PatientReport) (uuid.UUID, error) {
	return SaveReport(ctx, sourceName, report)
}

// GetReport calls the package-level GetReport.
func (Reports) GetReport(ctx context.Context, id string) (*StoredReport, error) {
	return GetReport(ctx, id)
}

// ListReports calls the package-level ListReports.
func (Reports) ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	return ListReports(ctx, limit)
}

// DeleteReport calls the package-level DeleteReport.
func (Reports) DeleteReport(ctx context.Context, id string) error {
	return DeleteReport(ctx, id)
}
