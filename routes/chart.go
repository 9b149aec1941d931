/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/utils"
)

var statusColors = map[pathology.Status]string{
	pathology.StatusHigh:     "#d9534f",
	pathology.StatusLow:      "#f0ad4e",
	pathology.StatusAbnormal: "#d9534f",
	pathology.StatusNormal:   "#5cb85c",
	pathology.StatusUnknown:  "#999999",
}

// chartBounds returns the range a test is drawn against: the curated bounds
// when present, otherwise the range printed on the report.
func chartBounds(t pathology.ExportTest) (utils.Range, bool) {
	if t.Ranges != nil {
		return utils.Range{Min: t.Ranges.NormalMin, Max: t.Ranges.NormalMax}, true
	}

	return utils.ParseRange(t.ReferenceRange)
}

func testChart(t pathology.ExportTest, value float64, bounds utils.Range) *charts.Bar {
	// A degenerate range is widened so both lines stay visible.
	bounds = bounds.Widen()

	yMin := min(bounds.Min, value)
	yMax := max(bounds.Max, value)
	padding := (yMax - yMin) * 0.1

	unitLabel := t.Unit
	if unitLabel == "" {
		unitLabel = "value"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "480px",
			Height: "280px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    t.Name,
			Subtitle: fmt.Sprintf("%s %s (%s)", t.Value, t.Unit, t.Status),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: unitLabel,
			Min:  max(0, yMin-padding),
			Max:  yMax + padding,
		}),
	)

	markLineItems := []interface{}{
		opts.MarkLineNameYAxisItem{Name: "Ref Min", YAxis: bounds.Min},
		opts.MarkLineNameYAxisItem{Name: "Ref Max", YAxis: bounds.Max},
	}

	bar.SetXAxis([]string{t.Name}).
		AddSeries(t.Name, []opts.BarData{{
			Value:     value,
			ItemStyle: &opts.ItemStyle{Color: statusColors[t.Status]},
		}}).
		SetSeriesOptions(func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})

	return bar
}

// renderReportCharts renders one bar chart per numeric test that has a range.
func renderReportCharts(export pathology.Export, title string) ([]byte, error) {
	page := components.NewPage()
	page.PageTitle = title

	added := 0

	for _, t := range export.Tests {
		value, ok := utils.ParseNumber(t.Value)
		if !ok {
			continue
		}

		bounds, ok := chartBounds(t)
		if !ok {
			continue
		}

		page.AddCharts(testChart(t, value, bounds))
		added++
	}

	if added == 0 {
		return nil, errNoChartableTests
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ReportChart renders the range chart page of a stored report.
func ReportChart(c flamego.Context, extractor *pathology.Extractor, store ReportStore) {
	stored, err := store.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	html, err := renderReportCharts(extractor.Export(stored.Report), "Report "+stored.ID.String())
	if err != nil {
		if errors.Is(err, errNoChartableTests) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}

		webLogger.Error("Failed to render report chart", "id", stored.ID, "error", err)
		writeError(c, http.StatusInternalServerError, "failed to render chart")

		return
	}

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(html); err != nil {
		webLogger.Warn("Failed to write chart response", "error", err)
	}
}
