/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/summary"
)

// ReportSummary streams an AI summary of a stored report as Server-Sent
// Events: "chunk" events carry text, then a single "done" or "error" event.
func ReportSummary(c flamego.Context, extractor *pathology.Extractor, store ReportStore, summarizer Summarizer) {
	ctx := c.Request().Context()
	w := c.ResponseWriter()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sendEvent := func(event, data string) error {
		var sb strings.Builder
		if event != "" {
			sb.WriteString("event: " + event + "\n")
		}

		sb.WriteString("data: " + strings.ReplaceAll(data, "\n", "\ndata: ") + "\n\n")

		if _, err := w.Write([]byte(sb.String())); err != nil {
			return err
		}

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		return nil
	}

	sendError := func(message string) {
		if err := sendEvent("error", message); err != nil {
			webLogger.Debug("Failed to send summary error event", "error", err)
		}
	}

	stored, err := store.GetReport(ctx, c.Param("id"))
	if err != nil {
		if storeErrorStatus(err) == http.StatusInternalServerError {
			webLogger.Error("Failed to load report for summary", "id", c.Param("id"), "error", err)
			sendError("Failed to load report")

			return
		}

		sendError(err.Error())

		return
	}

	err = summarizer.Summarize(ctx, extractor.Export(stored.Report), func(chunk string) error {
		return sendEvent("chunk", chunk)
	})
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrNotConfigured):
			sendError("AI summary is not configured")
		case errors.Is(err, summary.ErrNoTests):
			sendError("No test results to summarize")
		default:
			webLogger.Error("Failed to generate summary", "id", stored.ID, "error", err)
			sendError("Failed to generate summary")
		}

		return
	}

	if err := sendEvent("done", ""); err != nil {
		webLogger.Debug("Failed to send summary done event", "error", err)
	}
}
