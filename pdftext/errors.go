/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pdftext

import "errors"

var (
	// ErrUnsupportedDocument is returned for inputs that are neither PDF nor text.
	ErrUnsupportedDocument = errors.New("unsupported document type")
	// ErrMalformedPDF is returned when the PDF structure cannot be read.
	ErrMalformedPDF = errors.New("malformed PDF document")
	// ErrNoText is returned when a PDF has no extractable text layer.
	ErrNoText = errors.New("PDF has no text layer")
)
