/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"regexp"
	"strings"
)

// boundaryPattern matches every recognised section heading. The combined
// SEROLOGY/IMMUNOLOGY heading is listed before its halves so it is consumed
// as one boundary. There is no trailing word boundary because text extraction
// often glues a heading to the first row beneath it.
var boundaryPattern = regexp.MustCompile(
	`(?i)\b(HA?EMATOLOGY|BIOCHEMISTRY|SEROLOGY\s*/\s*IMMUNOLOGY|SEROLOGY|IMMUNOLOGY|CLINICAL\s*PATHOLOGY)`,
)

type boundary struct {
	section Section
	start   int
	end     int
}

func sectionForKeyword(keyword string) Section {
	upper := strings.ToUpper(keyword)

	switch {
	case strings.HasSuffix(upper, "EMATOLOGY"):
		return SectionHematology
	case upper == "BIOCHEMISTRY":
		return SectionBiochemistry
	case strings.HasPrefix(upper, "CLINICAL"):
		return SectionClinicalPathology
	default:
		return SectionSerology
	}
}

func findBoundaries(text string) []boundary {
	locs := boundaryPattern.FindAllStringSubmatchIndex(text, -1)

	boundaries := make([]boundary, 0, len(locs))
	for _, loc := range locs {
		boundaries = append(boundaries, boundary{
			section: sectionForKeyword(text[loc[2]:loc[3]]),
			start:   loc[0],
			end:     loc[1],
		})
	}

	return boundaries
}

// Segment splits report text into section spans. A section starts after the
// first occurrence of its heading and runs until the heading of a different
// section or the end of the text; repeated headings of the same section, as
// printed on continuation pages, stay inside the span. Sections without a
// heading map to the empty string.
func Segment(text string) map[Section]string {
	spans := make(map[Section]string, len(Sections()))
	for _, section := range Sections() {
		spans[section] = ""
	}

	boundaries := findBoundaries(text)

	for i, b := range boundaries {
		if sectionSeen(boundaries[:i], b.section) {
			continue
		}

		end := len(text)
		for _, next := range boundaries[i+1:] {
			if next.section != b.section {
				end = next.start
				break
			}
		}

		spans[b.section] = text[b.end:end]
	}

	return spans
}

func sectionSeen(earlier []boundary, section Section) bool {
	for _, b := range earlier {
		if b.section == section {
			return true
		}
	}

	return false
}
