/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package pdftext turns report documents into linear text for extraction.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/humaidq/labscan/logging"
)

var logger = logging.Logger(logging.SourceExtract)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// FromFile returns the text of a PDF or plain-text file.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return FromBytes(data)
}

// FromBytes returns the text of an in-memory document. PDFs are detected by
// their header; anything else must be valid UTF-8 text.
func FromBytes(data []byte) (string, error) {
	if IsPDF(data) {
		return FromPDF(bytes.NewReader(data), int64(len(data)))
	}

	if !utf8.Valid(data) {
		return "", ErrUnsupportedDocument
	}

	return string(data), nil
}

// FromPDF extracts the plain text of every page in order, one page per block.
func FromPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The PDF reader panics on some corrupt cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPDF, err)
	}

	var sb strings.Builder

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Failed to extract text from page", "page", i, "error", err)
			continue
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrNoText
	}

	return sb.String(), nil
}
