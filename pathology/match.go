/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"regexp"
	"strings"
)

// MatchTests runs the rule set of section against text and returns one result
// per matching rule, in rule order. Every rule is tried independently, so a
// missing row never affects the others.
func MatchTests(section Section, text string, classifier *Classifier) []TestResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	set := RulesFor(section)

	var results []TestResult

	for _, r := range set.Rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		result := TestResult{Name: r.Name, Value: strings.TrimSpace(m[1])}
		if r.Arity >= 2 {
			result.Unit = strings.TrimSpace(m[2])
		}

		if r.Arity >= 3 {
			result.ReferenceRange = strings.TrimSpace(m[3])
		}

		result.Status = classifier.Classify(result.Name, result.Value, result.Unit, result.ReferenceRange)
		results = append(results, result)
	}

	for _, c := range set.Composites {
		m := c.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		for i, name := range c.Names {
			value := strings.TrimSpace(m[i+1])
			results = append(results, TestResult{
				Name:   name,
				Value:  value,
				Status: classifier.Classify(name, value, "", ""),
			})
		}
	}

	return results
}

// Findings holds the free-text and typing results lifted onto a report.
type Findings struct {
	BloodGroup      string
	RhType          string
	PeripheralSmear []string
	ClinicalNotes   []string
}

var (
	smearLabel = regexp.MustCompile(`(?i)^\s*peripheral\s+(?:blood\s+)?smear(?:\s+(?:examination|findings))?\s*:?\s*(.*)$`)
	noteLabel  = regexp.MustCompile(`(?i)^\s*(?:note|comments?|interpretation|remarks?)\s*:\s*(.*)$`)
)

// ExtractFindings collects the peripheral smear description from the
// hematology span, note lines from the whole text and the blood group.
func ExtractFindings(text string, sections map[Section]string) Findings {
	var f Findings

	if m := bloodGroupPattern.FindStringSubmatch(text); m != nil {
		f.BloodGroup = m[1]
		f.RhType = m[2]
	}

	f.PeripheralSmear = smearLines(sections[SectionHematology])

	for _, line := range strings.Split(text, "\n") {
		m := noteLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		if note := strings.TrimSpace(m[1]); note != "" {
			f.ClinicalNotes = append(f.ClinicalNotes, note)
		}
	}

	return f
}

// smearLines returns the text on the smear label line and the non-blank lines
// that follow it, up to the first blank line or note.
func smearLines(span string) []string {
	var (
		lines   []string
		inSmear bool
	)

	for _, line := range strings.Split(span, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inSmear {
			m := smearLabel.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			inSmear = true

			if rest := strings.TrimSpace(m[1]); rest != "" {
				lines = append(lines, rest)
			}

			continue
		}

		if trimmed == "" {
			if len(lines) > 0 {
				break
			}

			continue
		}

		if noteLabel.MatchString(line) {
			break
		}

		lines = append(lines, trimmed)
	}

	return lines
}
