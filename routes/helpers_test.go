// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"sync"
	"time"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
)

const sampleText = `HEMATOLOGY
HEMOGLOBIN 16.2 gm% 12.0 - 16.0
Platelet Count 140000 /cmm 150000 - 450000
SEROLOGY/IMMUNOLOGY
HIV I Non Reactive
`

// memoryStore is an in-memory ReportStore.
type memoryStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*db.StoredReport
}

func newMemoryStore() *memoryStore {
	return &memoryStore{reports: make(map[uuid.UUID]*db.StoredReport)}
}

func (s *memoryStore) SaveReport(_ context.Context, sourceName string, report *pathology.PatientReport) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.reports[id] = &db.StoredReport{
		ID:                id,
		SourceName:        sourceName,
		VocabularyVersion: pathology.VocabularyVersion,
		CreatedAt:         time.Now(),
		Report:            report,
	}

	return id, nil
}

func (s *memoryStore) lookup(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, db.ErrInvalidReportID
	}

	if _, ok := s.reports[parsed]; !ok {
		return uuid.Nil, db.ErrReportNotFound
	}

	return parsed, nil
}

func (s *memoryStore) GetReport(_ context.Context, id string) (*db.StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	return s.reports[parsed], nil
}

func (s *memoryStore) ListReports(_ context.Context, _ int) ([]db.ReportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]db.ReportSummary, 0, len(s.reports))
	for id, stored := range s.reports {
		out = append(out, db.ReportSummary{
			ID:         id,
			SourceName: stored.SourceName,
			TestCount:  len(stored.Report.Tests()),
			CreatedAt:  stored.CreatedAt,
		})
	}

	return out, nil
}

func (s *memoryStore) DeleteReport(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := s.lookup(id)
	if err != nil {
		return err
	}

	delete(s.reports, parsed)

	return nil
}

// fakeSummarizer replays chunks, then returns err.
type fakeSummarizer struct {
	chunks []string
	err    error
}

func (s fakeSummarizer) Summarize(_ context.Context, _ pathology.Export, onChunk func(string) error) error {
	for _, chunk := range s.chunks {
		if err := onChunk(chunk); err != nil {
			return err
		}
	}

	return s.err
}

func newTestServer(store ReportStore, summarizer Summarizer) *flamego.Flame {
	f := flamego.New()
	f.Map(pathology.NewExtractor(nil))
	f.MapTo(store, (*ReportStore)(nil))
	f.MapTo(summarizer, (*Summarizer)(nil))

	f.Post("/api/extract", ExtractReport)
	f.Get("/api/reports", ListReports)
	f.Get("/api/reports/{id}", GetReport)
	f.Delete("/api/reports/{id}", DeleteReport)
	f.Get("/api/reports/{id}/chart", ReportChart)
	f.Get("/api/reports/{id}/summary", ReportSummary)
	f.Get("/api/vocabulary", Vocabulary)

	return f
}

func saveSample(store *memoryStore) string {
	report := pathology.NewExtractor(nil).Extract(sampleText)

	id, err := store.SaveReport(context.Background(), "sample.txt", report)
	if err != nil {
		panic(err)
	}

	return id.String()
}
