/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import "sort"

// VocabularyVersion identifies the set of canonical test names below. Bump it
// whenever a name is added, renamed or removed, since stored reports and
// downstream renderers key off these strings.
const VocabularyVersion = "2025.2"

// Canonical test names. Matching rules map source spellings onto these and
// never derive a name from report text.
const (
	// Hematology
	TestHemoglobin    = "HEMOGLOBIN"
	TestRBCCount      = "Total RBC Count"
	TestHematocrit    = "H.CT"
	TestMCV           = "M.C.V"
	TestMCH           = "M.C.H."
	TestMCHC          = "M.C.H.C."
	TestRDW           = "R.D.W"
	TestWBCCount      = "Total WBC Count (TLC)"
	TestPlateletCount = "Platelet Count"
	TestESR           = "1 Hour ESR"
	TestPolymorphs    = "Polymorphs"
	TestLymphocytes   = "Lymphocytes"
	TestEosinophils   = "Eosinophils"
	TestMonocytes     = "Monocytes"
	TestBasophils     = "Basophils"
	TestPT            = "PT (Prothrombin Time)"
	TestINR           = "INR"
	TestAPTT          = "APTT (Activated Partial Thrombin Time)"
	TestBloodGroup    = "ABO Blood Group"
	TestRhType        = "Rh Type"

	// Biochemistry
	TestHbA1c               = "HbA1c (Glycosylated Hemoglobin)"
	TestMeanBloodGlucose    = "Mean Blood Glucose"
	TestGlucoseFasting      = "Glucose, Fasting, Plasma"
	TestGlucosePostPrandial = "Post Prandial Glucose (PPBS)"
	TestSGPT                = "SGPT"
	TestCreatinine          = "Creatinine"

	// Serology
	TestHBsAg = "HbsAg"
	TestHIV1  = "HIV I"
	TestHIV2  = "HIV II"
	TestHCV   = "HCV"
	TestVDRL  = "VDRL"

	// Clinical pathology (urine routine)
	TestUrineVolume     = "Urine Volume"
	TestUrineColour     = "Urine Colour"
	TestUrineAppearance = "Urine Appearance"
	TestUrineReaction   = "Urine Reaction"
	TestSpecificGravity = "Specific Gravity"
	TestUrineProtein    = "Urine Protein"
	TestUrineGlucose    = "Urine Glucose"
	TestBileSalts       = "Bile Salts"
	TestBilePigments    = "Bile Pigments"
	TestPusCells        = "Pus Cells"
	TestRedCells        = "Red Cells"
	TestEpithelialCells = "Epithelial Cells"
	TestCasts           = "Casts"
	TestFungus          = "Fungus"
	TestCrystals        = "Crystals"
	TestBacteria        = "Bacteria"
)

var vocabulary = map[string]struct{}{
	TestHemoglobin: {}, TestRBCCount: {}, TestHematocrit: {}, TestMCV: {}, TestMCH: {},
	TestMCHC: {}, TestRDW: {}, TestWBCCount: {}, TestPlateletCount: {}, TestESR: {},
	TestPolymorphs: {}, TestLymphocytes: {}, TestEosinophils: {}, TestMonocytes: {},
	TestBasophils: {}, TestPT: {}, TestINR: {}, TestAPTT: {}, TestBloodGroup: {}, TestRhType: {},

	TestHbA1c: {}, TestMeanBloodGlucose: {}, TestGlucoseFasting: {}, TestGlucosePostPrandial: {},
	TestSGPT: {}, TestCreatinine: {},

	TestHBsAg: {}, TestHIV1: {}, TestHIV2: {}, TestHCV: {}, TestVDRL: {},

	TestUrineVolume: {}, TestUrineColour: {}, TestUrineAppearance: {}, TestUrineReaction: {},
	TestSpecificGravity: {}, TestUrineProtein: {}, TestUrineGlucose: {}, TestBileSalts: {},
	TestBilePigments: {}, TestPusCells: {}, TestRedCells: {}, TestEpithelialCells: {},
	TestCasts: {}, TestFungus: {}, TestCrystals: {}, TestBacteria: {},
}

// InVocabulary reports whether name is a canonical test name.
func InVocabulary(name string) bool {
	_, ok := vocabulary[name]
	return ok
}

// Vocabulary returns every canonical test name in sorted order.
func Vocabulary() []string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
