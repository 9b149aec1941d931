/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import "errors"

var (
	// ErrEmptyReferenceTable is returned when a reference table has no entries.
	ErrEmptyReferenceTable = errors.New("reference table has no entries")
	// ErrInvalidReferenceEntry is returned for an entry with a blank name or inverted bounds.
	ErrInvalidReferenceEntry = errors.New("invalid reference table entry")
	// ErrUnknownTestName is returned when a table or rule names a test outside the vocabulary.
	ErrUnknownTestName = errors.New("test name is not in the vocabulary")
)
