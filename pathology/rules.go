/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pathology

import "regexp"

// Building blocks shared by the test patterns. Digits are matched with \p{Nd}
// so values printed in any numeral script are captured as written.
const (
	valueCapture    = `([\p{Nd}][\p{Nd}.,\x{066B}\x{066C}]*)`
	rangeCapture    = `([\p{Nd}][\p{Nd}.,\x{066B}\x{066C}\t \-\x{2012}\x{2013}\x{2014}\x{2212}]*)`
	reactivity      = `(Non[ -]?Reactive|Reactive|Negative|Positive)`
	presence        = `(Absent|Present|Nil)`
	sp              = `[ \t]+`
	optionalUnitCap = `(?:([A-Za-z%/]+)` + sp + `)?`
)

// Rule maps one source spelling of a test to its canonical name. Arity is the
// number of fields the pattern captures: 1 for value, 2 adds the unit and 3
// adds the printed reference range.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Arity   int
}

// CompositeRule captures several related tests in one expression and emits an
// independent result per capture group, named by Names in group order.
type CompositeRule struct {
	Names   []string
	Pattern *regexp.Regexp
}

// RuleSet is the ordered list of rules evaluated for one section.
type RuleSet struct {
	Rules      []Rule
	Composites []CompositeRule
}

func rule(name, pattern string, arity int) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Arity: arity}
}

// bloodGroupPattern matches a paired ABO / Rh declaration.
var bloodGroupPattern = regexp.MustCompile(
	`ABO` + sp + `["\x{201C}]?(AB|A|B|O)["\x{201D}]?` + `\s+Rh\s*Type` + sp + `(Positive|Negative)`,
)

var sectionRules = map[Section]RuleSet{
	SectionHematology: {
		Rules: []Rule{
			rule(TestHemoglobin, `\bHEMOGLOBIN`+sp+valueCapture+sp+`([a-zA-Z%/]+)`+sp+rangeCapture, 3),
			rule(TestRBCCount, `Total RBC Count`+sp+valueCapture+sp+`([a-zA-Z/]+)`+sp+rangeCapture, 3),
			rule(TestHematocrit, `\bH\.CT`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestMCV, `\bM\.C\.V\.?`+sp+valueCapture+sp+optionalUnitCap+rangeCapture, 3),
			rule(TestMCH, `\bM\.C\.H\.`+sp+valueCapture+sp+`([a-zA-Z]+)`+sp+rangeCapture, 3),
			rule(TestMCHC, `\bM\.C\.H\.C\.`+sp+valueCapture+sp+`(%|[a-zA-Z/]+)`+sp+rangeCapture, 3),
			rule(TestRDW, `\bR\.D\.W`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestWBCCount, `Total WBC Count \(TLC\)`+sp+valueCapture+sp+`([/a-zA-Z]+)`+sp+rangeCapture, 3),
			rule(TestPlateletCount, `Platelet Count`+sp+valueCapture+sp+`([/a-zA-Z]+)`+sp+rangeCapture, 3),
			rule(TestESR, `1 Hour ESR`+sp+valueCapture+sp+`(mm)`+sp+rangeCapture, 3),
			rule(TestPolymorphs, `\bPolymorphs`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestLymphocytes, `(?i:\blymphocytes)`+sp+valueCapture+sp+`(%|[a-zA-Z]+)`+sp+rangeCapture, 3),
			rule(TestEosinophils, `\bEosinophils`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestMonocytes, `\bMonocytes`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestBasophils, `\bBasophils`+sp+valueCapture+sp+`(%)`+sp+rangeCapture, 3),
			rule(TestPT, `\bPT`+sp+valueCapture+sp+`(seconds?)`+sp+rangeCapture, 3),
			rule(TestINR, `\bINR`+sp+valueCapture, 1),
			rule(TestAPTT, `\bAPTT`+sp+valueCapture+sp+`(seconds?)`+sp+rangeCapture, 3),
		},
		Composites: []CompositeRule{
			{Names: []string{TestBloodGroup, TestRhType}, Pattern: bloodGroupPattern},
		},
	},
	SectionBiochemistry: {
		Rules: []Rule{
			rule(TestHbA1c, `(?i:HBA1c)\s*\(GLYCOSYLATED\s+HEMOGLOBIN\)`+sp+valueCapture+sp+`(%)`, 2),
			rule(TestMeanBloodGlucose, `Mean Blood Glucose`+sp+valueCapture+sp+`(mg/dL)`, 2),
			rule(TestGlucoseFasting, `Glucose, Fasting, Plasma`+sp+valueCapture+sp+`(mg/dL)`+sp+rangeCapture, 3),
			rule(TestGlucosePostPrandial, `POST PRANDIAL GLUCOSE\s*\(\s*PPBS\s*\)`+sp+valueCapture+sp+`(mg/dL)`+sp+rangeCapture, 3),
			rule(TestSGPT, `\bSGPT`+sp+valueCapture+sp+`(I?U/L)`+sp+rangeCapture, 3),
			rule(TestCreatinine, `\bCREATININE`+sp+valueCapture+sp+`(mg/dL)`+sp+rangeCapture, 3),
		},
	},
	SectionSerology: {
		Rules: []Rule{
			rule(TestHBsAg, `(?i:\bHBsAg)`+sp+reactivity, 1),
			rule(TestHIV1, `\bHIV[ -]?(?:I|1)`+sp+reactivity, 1),
			rule(TestHIV2, `\bHIV[ -]?(?:II|2)`+sp+reactivity, 1),
			rule(TestHCV, `\b(?:Anti[ -])?HCV`+sp+reactivity, 1),
			rule(TestVDRL, `\bVDRL`+sp+reactivity, 1),
		},
	},
	SectionClinicalPathology: {
		Rules: []Rule{
			rule(TestUrineVolume, `\bVolume`+sp+valueCapture+sp+`(ML|ml|mL)`, 2),
			rule(TestUrineColour, `\bColou?r`+sp+`(Pale Yellow|Dark Yellow|Straw|Yellow|Amber|Colourless|Red|Clear|[A-Za-z]+)`, 1),
			rule(TestUrineAppearance, `\bAppearance`+sp+`(Slightly Turbid|Turbid|Clear|Hazy|Cloudy|[A-Za-z]+)`, 1),
			rule(TestUrineReaction, `\bReaction`+sp+`(Acidic|Alkaline|Neutral)`, 1),
			rule(TestSpecificGravity, `\bSp\.?\s*Gravity`+sp+valueCapture, 1),
			rule(TestUrineProtein, `\bProtein`+sp+`(Nil|Absent|Trace|Present(?:\s*\(\++\))?|\++)`, 1),
			rule(TestUrineGlucose, `\bGlucose`+sp+`(Nil|Absent|Trace|Present(?:\s*\(\++\))?|\++)`, 1),
			rule(TestBileSalts, `\bBile Salts`+sp+presence, 1),
			rule(TestBilePigments, `\bBile Pigments`+sp+presence, 1),
			rule(TestPusCells, `\bPus Cells`+sp+`([\p{Nd}]+\s*-\s*[\p{Nd}]+|[\p{Nd}]+|Nil|NIL|Occasional|OCCASIONAL)`, 1),
			rule(TestRedCells, `\bRed Cells`+sp+`([\p{Nd}]+\s*-\s*[\p{Nd}]+|[\p{Nd}]+|Nil|NIL)`, 1),
			rule(TestEpithelialCells, `\bEpithelial Cells`+sp+`([\p{Nd}]+\s*-\s*[\p{Nd}]+|[\p{Nd}]+|Occasional|OCCASIONAL|Nil|NIL)`, 1),
			rule(TestCasts, `\bCasts`+sp+presence, 1),
			rule(TestFungus, `\bFungus`+sp+presence, 1),
			rule(TestCrystals, `\bCrystals`+sp+presence, 1),
			rule(TestBacteria, `\bBacteria`+sp+presence, 1),
		},
	},
}

// RulesFor returns the ordered rule set for a section.
func RulesFor(section Section) RuleSet {
	return sectionRules[section]
}
