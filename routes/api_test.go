// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
)

func serve(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decodeExport(t *testing.T, rec *httptest.ResponseRecorder) pathology.Export {
	t.Helper()

	var export pathology.Export
	if err := json.Unmarshal(rec.Body.Bytes(), &export); err != nil {
		t.Fatalf("failed to decode export %q: %v", rec.Body.String(), err)
	}

	return export
}

func findTest(export pathology.Export, name string) *pathology.ExportTest {
	for i := range export.Tests {
		if export.Tests[i].Name == name {
			return &export.Tests[i]
		}
	}

	return nil
}

func TestExtractReportText(t *testing.T) {
	t.Parallel()

	f := newTestServer(UnavailableStore{}, UnconfiguredSummarizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(sampleText))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	rec := serve(t, f, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	export := decodeExport(t, rec)
	if len(export.Tests) != 3 {
		t.Fatalf("expected 3 tests, got %+v", export.Tests)
	}

	hb := findTest(export, pathology.TestHemoglobin)
	if hb == nil || hb.Status != pathology.StatusHigh || hb.Ranges == nil {
		t.Fatalf("unexpected hemoglobin entry %+v", hb)
	}

	if rec.Header().Get(ReportIDHeader) != "" {
		t.Fatalf("expected no report id without save")
	}
}

func TestExtractReportSaves(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	f := newTestServer(store, UnconfiguredSummarizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/extract?save=1&name=march.txt", strings.NewReader(sampleText))

	rec := serve(t, f, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	id, err := uuid.Parse(rec.Header().Get(ReportIDHeader))
	if err != nil {
		t.Fatalf("expected report id header, got %q", rec.Header().Get(ReportIDHeader))
	}

	stored, ok := store.reports[id]
	if !ok {
		t.Fatalf("expected report %s to be stored", id)
	}

	if stored.SourceName != "march.txt" {
		t.Fatalf("unexpected source name %q", stored.SourceName)
	}
}

func TestExtractReportSaveWithoutStore(t *testing.T) {
	t.Parallel()

	f := newTestServer(UnavailableStore{}, UnconfiguredSummarizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/extract?save=1", strings.NewReader(sampleText))

	rec := serve(t, f, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestExtractReportRejectsBadBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        int
	}{
		{name: "empty", body: nil, want: http.StatusBadRequest},
		{name: "binary", body: []byte{0xff, 0xfe, 0x00, 0x81}, want: http.StatusUnsupportedMediaType},
		{name: "malformed pdf", body: []byte("%PDF-1.4\nnot really"), contentType: "application/pdf", want: http.StatusUnprocessableEntity},
		{name: "oversized", body: bytes.Repeat([]byte("a"), MaxUploadBytes+1), want: http.StatusRequestEntityTooLarge},
	}

	f := newTestServer(UnavailableStore{}, UnconfiguredSummarizer{})

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewReader(tt.body))
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}

		rec := serve(t, f, req)
		if rec.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d: %s", tt.name, tt.want, rec.Code, rec.Body.String())
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Fatalf("%s: expected JSON error body, got %q", tt.name, rec.Body.String())
		}
	}
}

func TestGetReport(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	id := saveSample(store)
	f := newTestServer(store, UnconfiguredSummarizer{})

	rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if rec.Header().Get(ReportIDHeader) != id {
		t.Fatalf("expected report id header %s, got %q", id, rec.Header().Get(ReportIDHeader))
	}

	if export := decodeExport(t, rec); findTest(export, pathology.TestHIV1) == nil {
		t.Fatalf("expected HIV I in %+v", export.Tests)
	}
}

func TestGetReportErrors(t *testing.T) {
	t.Parallel()

	f := newTestServer(newMemoryStore(), UnconfiguredSummarizer{})

	tests := []struct {
		id   string
		want int
	}{
		{id: "not-a-uuid", want: http.StatusBadRequest},
		{id: uuid.NewString(), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/reports/"+tt.id, nil))
		if rec.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.id, tt.want, rec.Code)
		}
	}

	unavailable := newTestServer(UnavailableStore{}, UnconfiguredSummarizer{})

	rec := serve(t, unavailable, httptest.NewRequest(http.MethodGet, "/api/reports/"+uuid.NewString(), nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestListAndDeleteReports(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	id := saveSample(store)
	f := newTestServer(store, UnconfiguredSummarizer{})

	rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/reports?limit=10", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var summaries []db.ReportSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	if len(summaries) != 1 || summaries[0].ID.String() != id || summaries[0].TestCount != 3 {
		t.Fatalf("unexpected list %+v", summaries)
	}

	rec = serve(t, f, httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	rec = serve(t, f, httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d after delete, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestVocabulary(t *testing.T) {
	t.Parallel()

	f := newTestServer(UnavailableStore{}, UnconfiguredSummarizer{})

	rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/vocabulary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var body struct {
		Version string   `json:"version"`
		Tests   []string `json:"tests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode vocabulary: %v", err)
	}

	if body.Version != pathology.VocabularyVersion || len(body.Tests) != len(pathology.Vocabulary()) {
		t.Fatalf("unexpected vocabulary response %+v", body)
	}
}
