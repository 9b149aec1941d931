/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
)

// ReferenceEntry holds the curated normal bounds and patient-facing text for a
// canonical test.
type ReferenceEntry struct {
	NormalMin float64 `json:"normal_min"`
	NormalMax float64 `json:"normal_max"`
	Meaning   string  `json:"meaning"`
	Tips      string  `json:"tips"`
}

// ReferenceTable is an immutable mapping of canonical test name to its
// reference entry. It is safe for concurrent use.
type ReferenceTable struct {
	entries map[string]ReferenceEntry
}

// NewReferenceTable validates entries and copies them into a table. Every name
// must belong to the canonical vocabulary and every entry must satisfy
// NormalMin <= NormalMax.
func NewReferenceTable(entries map[string]ReferenceEntry) (*ReferenceTable, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyReferenceTable
	}

	copied := make(map[string]ReferenceEntry, len(entries))
	for name, entry := range entries {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: blank test name", ErrInvalidReferenceEntry)
		}

		if !InVocabulary(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTestName, name)
		}

		if math.IsNaN(entry.NormalMin) || math.IsNaN(entry.NormalMax) || entry.NormalMin > entry.NormalMax {
			return nil, fmt.Errorf("%w: %q has bounds %v..%v", ErrInvalidReferenceEntry, name, entry.NormalMin, entry.NormalMax)
		}

		copied[name] = entry
	}

	return &ReferenceTable{entries: copied}, nil
}

// LoadReferenceTable reads a JSON object keyed by canonical test name.
func LoadReferenceTable(r io.Reader) (*ReferenceTable, error) {
	var entries map[string]ReferenceEntry

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode reference table: %w", err)
	}

	return NewReferenceTable(entries)
}

// Lookup returns the entry for a canonical test name.
func (t *ReferenceTable) Lookup(name string) (ReferenceEntry, bool) {
	if t == nil {
		return ReferenceEntry{}, false
	}

	entry, ok := t.entries[name]

	return entry, ok
}

// Names returns the covered test names in sorted order.
func (t *ReferenceTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of entries.
func (t *ReferenceTable) Len() int {
	return len(t.entries)
}

// DefaultReferenceTable returns the built-in curated table. It is built once
// and shared.
var DefaultReferenceTable = sync.OnceValue(func() *ReferenceTable {
	table, err := NewReferenceTable(defaultReferenceEntries())
	if err != nil {
		panic(fmt.Sprintf("built-in reference table is invalid: %v", err))
	}

	return table
})

func defaultReferenceEntries() map[string]ReferenceEntry {
	return map[string]ReferenceEntry{
		// ===== HEMATOLOGY =====
		TestHemoglobin: {
			NormalMin: 12.0, NormalMax: 16.0,
			Meaning: "Hemoglobin carries oxygen in your blood. Low levels can cause fatigue and anemia.",
			Tips:    "Eat iron-rich foods like spinach, beetroot, and jaggery. Combine with Vitamin C foods like citrus fruits.",
		},
		TestRBCCount: {
			NormalMin: 4.5, NormalMax: 5.5,
			Meaning: "Red blood cells carry oxygen throughout your body.",
			Tips:    "Maintain adequate iron, B12, and folate intake through green vegetables and lean meats.",
		},
		TestHematocrit: {
			NormalMin: 36.0, NormalMax: 46.0,
			Meaning: "Hematocrit shows the percentage of blood made up of red blood cells.",
			Tips:    "Stay hydrated and maintain a balanced diet rich in iron.",
		},
		TestMCV: {
			NormalMin: 80.0, NormalMax: 100.0,
			Meaning: "MCV indicates the average size of your red blood cells.",
			Tips:    "Ensure adequate B12 and folate intake through fortified cereals and leafy greens.",
		},
		TestMCH: {
			NormalMin: 27.0, NormalMax: 33.0,
			Meaning: "MCH is the average amount of hemoglobin in each red blood cell. It tracks with MCV.",
			Tips:    "Low values often point to iron deficiency; include iron-rich foods and get iron studies if advised.",
		},
		TestMCHC: {
			NormalMin: 33.0, NormalMax: 36.0,
			Meaning: "MCHC measures how concentrated hemoglobin is inside your red blood cells.",
			Tips:    "Keep a diet with enough iron, B12 and folate and stay hydrated.",
		},
		TestRDW: {
			NormalMin: 11.5, NormalMax: 14.5,
			Meaning: "RDW shows how much your red blood cells vary in size.",
			Tips:    "A high value can reflect mixed nutrient deficiencies; review iron, B12 and folate intake.",
		},
		TestWBCCount: {
			NormalMin: 4000, NormalMax: 11000,
			Meaning: "White blood cells help fight infections and diseases.",
			Tips:    "Maintain good hygiene, eat immune-boosting foods, and get adequate rest.",
		},
		TestPlateletCount: {
			NormalMin: 150000, NormalMax: 450000,
			Meaning: "Platelets help your blood clot and prevent bleeding.",
			Tips:    "Eat foods rich in folate and B12. Avoid excessive alcohol consumption.",
		},
		TestESR: {
			NormalMin: 0, NormalMax: 20,
			Meaning: "ESR indicates inflammation in your body. Higher values may suggest infection or inflammation.",
			Tips:    "If elevated, follow up with your doctor. Maintain anti-inflammatory diet with turmeric and omega-3.",
		},

		// ===== BIOCHEMISTRY =====
		TestHbA1c: {
			NormalMin: 4.0, NormalMax: 6.0,
			Meaning: "HbA1c shows average blood sugar over 2-3 months. Higher values indicate diabetes risk.",
			Tips:    "Control carb intake, exercise regularly, and monitor blood sugar. Consult doctor if elevated.",
		},
		TestGlucoseFasting: {
			NormalMin: 70, NormalMax: 100,
			Meaning: "Fasting glucose shows blood sugar after overnight fasting. High levels indicate diabetes.",
			Tips:    "Limit sugary foods, exercise regularly, and maintain healthy weight.",
		},
		TestGlucosePostPrandial: {
			NormalMin: 70, NormalMax: 140,
			Meaning: "Post-meal glucose shows how well your body processes sugar after eating.",
			Tips:    "Eat balanced meals, avoid refined sugars, and take short walks after meals.",
		},
		TestSGPT: {
			NormalMin: 10, NormalMax: 40,
			Meaning: "SGPT indicates liver function. Elevated levels may suggest liver damage.",
			Tips:    "Limit alcohol, maintain healthy weight, and eat liver-friendly foods like garlic and green tea.",
		},
		TestCreatinine: {
			NormalMin: 0.6, NormalMax: 1.4,
			Meaning: "Creatinine indicates kidney function. High levels may suggest kidney problems.",
			Tips:    "Stay well hydrated, limit protein supplements, and maintain healthy blood pressure.",
		},
	}
}
