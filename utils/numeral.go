/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// isDash reports whether r is one of the hyphen, dash or minus variants that
// report authors use in place of an ASCII hyphen-minus.
func isDash(r rune) bool {
	switch r {
	case '-', '\u2010', '\u2011', '\u2012', '\u2013', '\u2014', '\u2212', '\ufe63', '\uff0d':
		return true
	}

	return false
}

// isThousandsSeparator reports whether r groups digits and carries no value.
func isThousandsSeparator(r rune) bool {
	return r == ',' || r == '\u066c' || r == '\u2009' || r == '\u202f'
}

// isDecimalSeparator reports whether r is an ASCII dot or the Arabic decimal
// separator.
func isDecimalSeparator(r rune) bool {
	return r == '.' || r == '\u066b'
}

// DigitValue returns the value of a decimal digit from any script.
//
// Every decimal digit block in Unicode is a contiguous run of ten code points
// starting at zero, so the value is the offset into the run.
func DigitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}

	if !unicode.Is(unicode.Nd, r) {
		return 0, false
	}

	for _, rng := range unicode.Nd.R16 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r >= lo && r <= hi && rng.Stride == 1 {
			return int(r-lo) % 10, true
		}
	}

	for _, rng := range unicode.Nd.R32 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r >= lo && r <= hi && rng.Stride == 1 {
			return int(r-lo) % 10, true
		}
	}

	return 0, false
}

// NormalizeNumber converts numeric text written with any script's digits,
// dash variants and thousands separators into a canonical ASCII numeral.
//
// An empty result means the input had no usable numeric content; callers must
// treat it as absent, never as zero.
func NormalizeNumber(raw string) string {
	raw = width.Fold.String(strings.TrimSpace(raw))

	var sb strings.Builder

	for _, r := range raw {
		if d, ok := DigitValue(r); ok {
			sb.WriteByte(byte('0' + d))
			continue
		}

		switch {
		case isDash(r):
			sb.WriteByte('-')
		case isDecimalSeparator(r):
			sb.WriteByte('.')
		case isThousandsSeparator(r):
		default:
			// Units, letters and whitespace carry no numeric meaning.
		}
	}

	cleaned := sb.String()

	if strings.Count(cleaned, ".") > 1 {
		first := strings.Index(cleaned, ".")
		cleaned = cleaned[:first+1] + strings.ReplaceAll(cleaned[first+1:], ".", "")
	}

	// A sign is only kept when it is the single leading character.
	if strings.Count(cleaned, "-") > 1 || strings.Index(cleaned, "-") > 0 {
		cleaned = strings.ReplaceAll(cleaned, "-", "")
	}

	cleaned = strings.Trim(cleaned, ".")

	if cleaned == "" {
		return ""
	}

	if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
		return ""
	}

	return cleaned
}

// ParseNumber normalizes raw and parses it as a float64.
func ParseNumber(raw string) (float64, bool) {
	normalized := NormalizeNumber(raw)
	if normalized == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// NormalizeDashes replaces every dash or minus variant with an ASCII hyphen.
func NormalizeDashes(s string) string {
	return strings.Map(func(r rune) rune {
		if isDash(r) {
			return '-'
		}

		return r
	}, s)
}
