/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/pdftext"
)

// MaxUploadBytes bounds the size of a document posted for extraction.
const MaxUploadBytes = 20 << 20

// ReportIDHeader carries the id of a saved report.
const ReportIDHeader = "X-Report-ID"

func writeJSON(c flamego.Context, status int, v any) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		webLogger.Warn("Failed to write JSON response", "error", err)
	}
}

func writeError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// storeErrorStatus maps storage errors onto HTTP statuses.
func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, errStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, db.ErrInvalidReportID):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrReportNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeStoreError(c flamego.Context, err error) {
	status := storeErrorStatus(err)
	if status == http.StatusInternalServerError {
		webLogger.Error("Report storage failed", "path", c.Request().URL.Path, "error", err)
		writeError(c, status, "internal error")

		return
	}

	writeError(c, status, err.Error())
}

// documentText reads the request body as a PDF or as report text.
func documentText(r *http.Request) (string, int, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusRequestEntityTooLarge, err
		}

		return "", http.StatusBadRequest, err
	}

	if len(body) == 0 {
		return "", http.StatusBadRequest, errEmptyBody
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var text string
	if mediaType == "application/pdf" {
		text, err = pdftext.FromPDF(bytes.NewReader(body), int64(len(body)))
	} else {
		text, err = pdftext.FromBytes(body)
	}

	switch {
	case err == nil:
		return text, http.StatusOK, nil
	case errors.Is(err, pdftext.ErrUnsupportedDocument):
		return "", http.StatusUnsupportedMediaType, err
	default:
		return "", http.StatusUnprocessableEntity, err
	}
}

// ExtractReport extracts a posted document and responds with its export
// record. With ?save=1 the report is also stored and its id returned in the
// X-Report-ID header.
func ExtractReport(c flamego.Context, extractor *pathology.Extractor, store ReportStore) {
	text, status, err := documentText(c.Request().Request)
	if err != nil {
		writeError(c, status, err.Error())
		return
	}

	report := extractor.Extract(text)

	if c.QueryBool("save") {
		id, err := store.SaveReport(c.Request().Context(), c.Query("name"), report)
		if err != nil {
			writeStoreError(c, err)
			return
		}

		c.ResponseWriter().Header().Set(ReportIDHeader, id.String())
	}

	writeJSON(c, http.StatusOK, extractor.Export(report))
}

// ListReports responds with the most recent stored reports.
func ListReports(c flamego.Context, store ReportStore) {
	summaries, err := store.ListReports(c.Request().Context(), c.QueryInt("limit"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, summaries)
}

// GetReport responds with the export record of a stored report.
func GetReport(c flamego.Context, extractor *pathology.Extractor, store ReportStore) {
	stored, err := store.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.ResponseWriter().Header().Set(ReportIDHeader, stored.ID.String())
	writeJSON(c, http.StatusOK, extractor.Export(stored.Report))
}

// DeleteReport removes a stored report.
func DeleteReport(c flamego.Context, store ReportStore) {
	if err := store.DeleteReport(c.Request().Context(), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}

// Vocabulary responds with the canonical test names and their version.
func Vocabulary(c flamego.Context) {
	writeJSON(c, http.StatusOK, map[string]any{
		"version": pathology.VocabularyVersion,
		"tests":   pathology.Vocabulary(),
	})
}
