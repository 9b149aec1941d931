/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"strings"
	"unicode"

	"github.com/humaidq/labscan/utils"
)

// expectedAbsentTests are qualitative urine findings that should not be present.
var expectedAbsentTests = map[string]struct{}{
	TestUrineProtein: {},
	TestUrineGlucose: {},
	TestBileSalts:    {},
	TestBilePigments: {},
	TestCasts:        {},
	TestFungus:       {},
	TestCrystals:     {},
	TestBacteria:     {},
}

// absentLiterals are the values that mean "not found" for expected-absent tests.
var absentLiterals = map[string]struct{}{
	"NIL":      {},
	"ABSENT":   {},
	"NEGATIVE": {},
}

// descriptiveTests record a typing or a physical description rather than a
// measurement, and are always reported as NORMAL.
var descriptiveTests = map[string]struct{}{
	TestBloodGroup:      {},
	TestRhType:          {},
	TestUrineColour:     {},
	TestUrineAppearance: {},
	TestUrineReaction:   {},
	TestEpithelialCells: {},
}

var categoricalStatus = map[string]Status{
	"POSITIVE":     StatusAbnormal,
	"PRESENT":      StatusAbnormal,
	"REACTIVE":     StatusAbnormal,
	"NEGATIVE":     StatusNormal,
	"ABSENT":       StatusNormal,
	"NON REACTIVE": StatusNormal,
	"NONREACTIVE":  StatusNormal,
	"NIL":          StatusNormal,
}

// Classifier decides the clinical status of a test result. The zero value is
// not usable; construct it with NewClassifier.
type Classifier struct {
	table *ReferenceTable
}

// NewClassifier returns a classifier backed by table. A nil table means no
// test has curated bounds.
func NewClassifier(table *ReferenceTable) *Classifier {
	return &Classifier{table: table}
}

// IsQualitative reports whether name is classified by presence rather than by
// numeric comparison.
func IsQualitative(name string) bool {
	_, ok := expectedAbsentTests[name]
	return ok
}

// Classify returns the status for a named test. The reference table takes
// precedence over the range printed in the report.
func (c *Classifier) Classify(name, value, unit, referenceRange string) Status {
	if IsQualitative(name) {
		return classifyQualitative(value)
	}

	if _, ok := descriptiveTests[name]; ok {
		return StatusNormal
	}

	digits := numericContent(value)
	if digits == "" {
		if status, ok := classifyCategorical(value); ok {
			return status
		}

		return StatusUnknown
	}

	numeric, ok := utils.ParseNumber(digits)
	if !ok {
		return StatusUnknown
	}

	if entry, ok := c.table.Lookup(name); ok {
		return compare(numeric, utils.Range{Min: entry.NormalMin, Max: entry.NormalMax})
	}

	if bounds, ok := utils.ParseRange(referenceRange); ok {
		return compare(numeric, bounds)
	}

	if status, ok := classifyCategorical(value); ok {
		return status
	}

	// Present but unclassifiable values are shown as normal rather than
	// raising a false alarm.
	return StatusNormal
}

func compare(v float64, bounds utils.Range) Status {
	switch {
	case v < bounds.Min:
		return StatusLow
	case v > bounds.Max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

func classifyQualitative(value string) Status {
	if _, ok := absentLiterals[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return StatusNormal
	}

	return StatusAbnormal
}

func classifyCategorical(value string) (Status, bool) {
	key := strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(value, "-", " ")), " "))
	status, ok := categoricalStatus[key]

	return status, ok
}

// numericContent keeps only digits (any script) and dots.
func numericContent(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || unicode.IsDigit(r) {
			return r
		}

		return -1
	}, value)
}
