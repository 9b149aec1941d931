/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// fieldMatchTimeout bounds a single field rule on pathological input.
const fieldMatchTimeout = 250 * time.Millisecond

// nextLabel ends a free-text value at the next known label, a line break or
// the end of the text.
const nextLabel = `(?=[ \t]{2,}|[ \t]+(?:Reg\.|Name\b|Age\b|Sex\b|Gender\b|Pt\.|Phone\b|Mobile\b|Collection\b|Reporting\b|Ref\.|Location\b|Pathologist\b|Lab(?:oratory)?\s+Name\b)|\r?\n|$)`

// nameLabel is a patient name label standing at a line start or after a
// column gap, so "Hospital Name" or "Lab Name" never qualify.
const nameLabel = `(?:^|[ \t]{2,})(?:Patient[ \t]+)?Name`

type fieldRule struct {
	field   Field
	pattern *regexp2.Regexp
}

func fieldPattern(field Field, pattern string, opts regexp2.RegexOptions) fieldRule {
	re := regexp2.MustCompile(pattern, opts)
	re.MatchTimeout = fieldMatchTimeout

	return fieldRule{field: field, pattern: re}
}

// fieldRules are evaluated in order and the first rule that matches a field
// wins. Layout-specific rules come before the generic ones.
var fieldRules = []fieldRule{
	fieldPattern(FieldRegistrationNumber, `Reg\.\s*No\.\s*:\s*(\d+\s*\([^)]+\))`, regexp2.IgnoreCase),
	fieldPattern(FieldRegistrationNumber, `(?:Reg(?:istration)?\.?\s*No\.?|UHID|Patient\s+ID)\s*:\s*([A-Z0-9][A-Z0-9/\-]*)`, regexp2.IgnoreCase),

	fieldPattern(FieldPatientName, nameLabel+`[ \t]*:[ \t]*([A-Z \t]+?)(?=[ \t]+Reporting Date)`, regexp2.IgnoreCase|regexp2.Multiline),
	fieldPattern(FieldPatientName, nameLabel+`[ \t]*:[ \t]*([A-Z][A-Z .']*?)`+nextLabel, regexp2.IgnoreCase|regexp2.Multiline),

	fieldPattern(FieldAge, `Age\s*:\s*(\d+\s*(?:Years?|Yrs?\.?|Y)\b\.?)`, regexp2.IgnoreCase),
	fieldPattern(FieldAge, `Age\s*/\s*(?:Sex|Gender)\s*:\s*(\d+\s*(?:Years?|Yrs?\.?|Y)?\b)`, regexp2.IgnoreCase),

	fieldPattern(FieldSex, `(?:Sex|Gender)\s*:\s*(MALE|FEMALE)\b`, regexp2.IgnoreCase),
	fieldPattern(FieldSex, `Age\s*/\s*(?:Sex|Gender)\s*:\s*\d+\s*(?:Years?|Yrs?\.?|Y)?\s*/\s*(MALE|FEMALE|M|F)\b`, regexp2.IgnoreCase),

	fieldPattern(FieldPhoneNumber, `Pt\.\s*Tele\s*No:\s*(\d+)`, regexp2.IgnoreCase),
	fieldPattern(FieldPhoneNumber, `(?:Phone|Mobile|Mob\.?|Contact)(?:\s*No\.?)?\s*:\s*(\+?\d[\d \-]{5,}\d)`, regexp2.IgnoreCase),

	fieldPattern(FieldCollectionDate, `Collection Date\s*:\s*([\d\-]+\s+[\d:]+\s+[AP]M)`, regexp2.IgnoreCase),
	fieldPattern(FieldCollectionDate, `(?:Collection|Collected|Sample)\s*(?:Date|On)?\s*:\s*(\d{1,4}[\-/.]\d{1,2}[\-/.]\d{1,4}(?:[ \t]+\d{1,2}:\d{2}(?::\d{2})?(?:[ \t]*[AP]M)?)?)`, regexp2.IgnoreCase),

	fieldPattern(FieldReportingDate, `Reporting Date\s*:\s*([\d\-]+\s+[\d:]+\s+[AP]M)`, regexp2.IgnoreCase),
	fieldPattern(FieldReportingDate, `(?:Reporting|Reported)\s*(?:Date|On)?\s*:\s*(\d{1,4}[\-/.]\d{1,2}[\-/.]\d{1,4}(?:[ \t]+\d{1,2}:\d{2}(?::\d{2})?(?:[ \t]*[AP]M)?)?)`, regexp2.IgnoreCase),

	fieldPattern(FieldReferringDoctor, `Ref\.\s*By\s*:[ \t]*(DR\.?[ \t]+[A-Z .]+?)`+nextLabel, regexp2.IgnoreCase),
	fieldPattern(FieldReferringDoctor, `(?:Referred\s+By|Ref(?:erring)?\.?\s*(?:By|Doctor))\s*:[ \t]*([A-Z][A-Z .]*?)`+nextLabel, regexp2.IgnoreCase),

	fieldPattern(FieldLocation, `Location\s*:\s*([A-Z]+)`, regexp2.IgnoreCase),

	fieldPattern(FieldPathologist, `Pathologist\s*:[ \t]*(Dr\.[A-Z .]+?)`+nextLabel, regexp2.IgnoreCase),

	fieldPattern(FieldLabName, `(Airmed Pathology Pvt\.\s*Ltd\.)`, regexp2.IgnoreCase),
	fieldPattern(FieldLabName, `Lab(?:oratory)?\s+Name\s*:[ \t]*([A-Z][A-Za-z .&]*?)`+nextLabel, regexp2.IgnoreCase),
	fieldPattern(FieldLabName, `([A-Z][A-Za-z&]*(?:[ \t]+[A-Z][A-Za-z&]*)*[ \t]+(?:Pathology|Diagnostics|Labs?|Laboratory)[ \t]+(?:Pvt\.?|Private)[ \t]*(?:Ltd|Limited)\.?)`, regexp2.None),
}

// ExtractFields scrapes the labeled patient and report metadata from the
// whole report text. Fields that no rule finds are omitted from the result.
func ExtractFields(text string) map[Field]string {
	fields := make(map[Field]string)

	for _, r := range fieldRules {
		if _, ok := fields[r.field]; ok {
			continue
		}

		m, err := r.pattern.FindStringMatch(text)
		if err != nil {
			logger.Debug("Field rule timed out", "field", r.field, "error", err)
			continue
		}

		if m == nil {
			continue
		}

		value := strings.TrimSpace(m.GroupByNumber(1).String())
		if value == "" {
			continue
		}

		fields[r.field] = value
	}

	return fields
}
