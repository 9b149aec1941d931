/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	// ErrDatabaseURLEnvVarNotSet is returned when DATABASE_URL is empty.
	ErrDatabaseURLEnvVarNotSet = errors.New("DATABASE_URL environment variable is not set")
	// ErrDatabaseNameNotSpecified is returned when the connection string has no database name.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in DATABASE_URL")
	// ErrDatabaseConnectionNotInitialized is returned when Init has not been called.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	// ErrReportNotFound is returned when no stored report has the given id.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidReportID is returned when a report id is not a UUID.
	ErrInvalidReportID = errors.New("invalid report id")
	// ErrNilReport is returned when asked to save a nil report.
	ErrNilReport = errors.New("report is nil")
)
