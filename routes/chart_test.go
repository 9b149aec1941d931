// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/humaidq/labscan/pathology"
)

func TestChartBounds(t *testing.T) {
	t.Parallel()

	curated := pathology.ExportTest{Ranges: &pathology.Bounds{NormalMin: 1, NormalMax: 2}, ReferenceRange: "5 - 6"}
	if bounds, ok := chartBounds(curated); !ok || bounds.Min != 1 || bounds.Max != 2 {
		t.Fatalf("expected curated bounds, got %+v %v", bounds, ok)
	}

	printed := pathology.ExportTest{ReferenceRange: "5 - 6"}
	if bounds, ok := chartBounds(printed); !ok || bounds.Min != 5 || bounds.Max != 6 {
		t.Fatalf("expected printed bounds, got %+v %v", bounds, ok)
	}

	if _, ok := chartBounds(pathology.ExportTest{}); ok {
		t.Fatalf("expected no bounds without ranges")
	}
}

func TestRenderReportCharts(t *testing.T) {
	t.Parallel()

	export := pathology.Export{Tests: []pathology.ExportTest{
		{Name: pathology.TestHemoglobin, Value: "16.2", Unit: "gm%", Status: pathology.StatusHigh,
			Ranges: &pathology.Bounds{NormalMin: 12, NormalMax: 16}},
		{Name: pathology.TestHIV1, Value: "Non Reactive", Status: pathology.StatusNormal},
	}}

	html, err := renderReportCharts(export, "Report test")
	if err != nil {
		t.Fatalf("renderReportCharts failed: %v", err)
	}

	out := string(html)
	for _, want := range []string{pathology.TestHemoglobin, "Ref Min", "Ref Max", "Report test"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected chart page to contain %q", want)
		}
	}

	if strings.Contains(out, pathology.TestHIV1) {
		t.Fatalf("expected qualitative test to be left out of charts")
	}
}

func TestRenderReportChartsNothingToChart(t *testing.T) {
	t.Parallel()

	export := pathology.Export{Tests: []pathology.ExportTest{
		{Name: pathology.TestHIV1, Value: "Non Reactive", Status: pathology.StatusNormal},
	}}

	if _, err := renderReportCharts(export, "empty"); !errors.Is(err, errNoChartableTests) {
		t.Fatalf("expected errNoChartableTests, got %v", err)
	}
}

func TestReportChartHandler(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	id := saveSample(store)
	f := newTestServer(store, UnconfiguredSummarizer{})

	rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/chart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}

	if !strings.Contains(rec.Body.String(), pathology.TestPlateletCount) {
		t.Fatalf("expected platelet chart in page")
	}
}

func TestReportChartHandlerNoNumericTests(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	report := pathology.NewExtractor(nil).Extract("SEROLOGY\nHIV I Non Reactive\n")

	id, err := store.SaveReport(context.Background(), "hiv.txt", report)
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	f := newTestServer(store, UnconfiguredSummarizer{})

	rec := serve(t, f, httptest.NewRequest(http.MethodGet, "/api/reports/"+id.String()+"/chart", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
