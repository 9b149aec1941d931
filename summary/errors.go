/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package summary

import "errors"

var (
	// ErrNotConfigured is returned when OLLAMA_URL or OLLAMA_MODEL is unset.
	ErrNotConfigured = errors.New("summary backend not configured: OLLAMA_URL and OLLAMA_MODEL must be set")
	// ErrNoTests is returned when a report has nothing to summarize.
	ErrNoTests = errors.New("report has no tests to summarize")
	// ErrUpstreamStatus is returned when the backend answers with a non-200 status.
	ErrUpstreamStatus = errors.New("summary backend returned an error status")
	// ErrUpstream is returned when the backend reports an error inside the stream.
	ErrUpstream = errors.New("summary backend error")
)
