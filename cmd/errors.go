/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errNoInputFiles        = errors.New("at least one report file is required")
	errInvalidJobs         = errors.New("jobs must be at least 1")
	errExtractFailed       = errors.New("extraction failed")
)
