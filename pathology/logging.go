/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import "github.com/humaidq/labscan/logging"

var logger = logging.Logger(logging.SourceExtract)
