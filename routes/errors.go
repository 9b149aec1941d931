/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errStoreUnavailable = errors.New("report storage is not configured")
	errEmptyBody        = errors.New("request body is empty")
	errNoChartableTests = errors.New("report has no tests with numeric values and ranges")
)
