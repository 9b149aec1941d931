// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/routes"
)

func testServer() http.Handler {
	return newServer(pathology.NewExtractor(nil), routes.UnavailableStore{}, routes.UnconfiguredSummarizer{})
}

func TestNotFoundReturnsStatusOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404 body, got %q", rec.Body.String())
	}
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{method: http.MethodGet, path: "/api/vocabulary", want: http.StatusOK},
		{method: http.MethodPost, path: "/api/extract", body: "HEMATOLOGY\nHEMOGLOBIN 13 gm% 12 - 16\n", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/reports", want: http.StatusServiceUnavailable},
		{method: http.MethodDelete, path: "/api/reports/x", want: http.StatusServiceUnavailable},
	}

	handler := testServer()

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

		if rec.Code != tt.want {
			t.Fatalf("%s %s: expected status %d, got %d: %s", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
		}
	}
}

func TestServerSummaryWithoutBackend(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/x/summary", nil))

	if !strings.Contains(rec.Body.String(), "event: error") {
		t.Fatalf("expected error event, got %q", rec.Body.String())
	}
}
