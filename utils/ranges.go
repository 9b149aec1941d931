/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"math"
	"regexp"
)

// numeralGroup accepts an optional leading sign, then digits from any script
// plus decimal and grouping separators.
const numeralGroup = `-?[\p{Nd}.,\x{066B}\x{066C}\x{2009}\x{202F}]+`

var rangePattern = regexp.MustCompile(`(` + numeralGroup + `)\s*-\s*(` + numeralGroup + `)`)

// Range is a numeric reference interval with Min <= Max.
type Range struct {
	Min float64
	Max float64
}

// ParseRange extracts the first "a - b" interval from raw. The bounds are
// ordered so that a range authored as "max-min" parses the same as "min-max".
// It reports false when no interval is found or either bound is not a number.
func ParseRange(raw string) (Range, bool) {
	if raw == "" {
		return Range{}, false
	}

	match := rangePattern.FindStringSubmatch(NormalizeDashes(raw))
	if match == nil {
		return Range{}, false
	}

	a, ok := ParseNumber(match[1])
	if !ok {
		return Range{}, false
	}

	b, ok := ParseNumber(match[2])
	if !ok {
		return Range{}, false
	}

	return Range{Min: math.Min(a, b), Max: math.Max(a, b)}, true
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Widen returns a copy of r that has a visible width. Degenerate ranges get
// Max = Min + max(1, 10% of |Min|). Only chart rendering uses this; stored
// ranges keep their parsed bounds.
func (r Range) Widen() Range {
	if r.Max > r.Min {
		return r
	}

	return Range{Min: r.Min, Max: r.Min + math.Max(1, 0.1*math.Abs(r.Min))}
}
