/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"

	"github.com/google/uuid"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/summary"
)

// ReportStore persists extracted reports. db.Reports implements it.
type ReportStore interface {
	SaveReport(ctx context.Context, sourceName string, report *pathology.PatientReport) (uuid.UUID, error)
	GetReport(ctx context.Context, id string) (*db.StoredReport, error)
	ListReports(ctx context.Context, limit int) ([]db.ReportSummary, error)
	DeleteReport(ctx context.Context, id string) error
}

// Summarizer streams an AI summary of an export record.
// summary.Client implements it.
type Summarizer interface {
	Summarize(ctx context.Context, export pathology.Export, onChunk func(string) error) error
}

// UnavailableStore is mapped when no database is configured.
type UnavailableStore struct{}

// SaveReport always fails with errStoreUnavailable.
func (UnavailableStore) SaveReport(context.Context, string, *pathology.PatientReport) (uuid.UUID, error) {
	return uuid.Nil, errStoreUnavailable
}

// GetReport always fails with errStoreUnavailable.
func (UnavailableStore) GetReport(context.Context, string) (*db.StoredReport, error) {
	return nil, errStoreUnavailable
}

// ListReports always fails with errStoreUnavailable.
func (UnavailableStore) ListReports(context.Context, int) ([]db.ReportSummary, error) {
	return nil, errStoreUnavailable
}

// DeleteReport always fails with errStoreUnavailable.
func (UnavailableStore) DeleteReport(context.Context, string) error {
	return errStoreUnavailable
}

// UnconfiguredSummarizer is mapped when no summary backend is configured.
type UnconfiguredSummarizer struct{}

// Summarize always fails with summary.ErrNotConfigured.
func (UnconfiguredSummarizer) Summarize(context.Context, pathology.Export, func(string) error) error {
	return summary.ErrNotConfigured
}
