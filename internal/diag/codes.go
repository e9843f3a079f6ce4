package diag

import (
	"fmt"
	"strings"
)

type Code uint16

// Коды правил совпадают с их приоритетом.
const (
	UnknownCode Code = 0

	RuleQuotes       Code = 1
	RuleApostrophe   Code = 2
	RuleDash         Code = 3
	RuleEllipsis     Code = 4
	RuleSpacing      Code = 5
	RulePunctuation  Code = 6
	RuleUnits        Code = 7
	RuleLigatures    Code = 8
	RuleAbbreviation Code = 9
	RuleOrdinals     Code = 10
	RuleForeign      Code = 11
	RuleBullets      Code = 12
	RuleCasse        Code = 13
	RuleDiacritics   Code = 14
	RuleAdmonitions  Code = 15

	// Структурные
	StructUnterminated Code = 1001
	StructFrontMatter  Code = 1002
	RuleFailure        Code = 1003
)

// NumCategories is the number of rule categories; rule codes run from 1 to NumCategories.
const NumCategories = 15

var (
	codeName = map[Code]string{
		RuleQuotes:         "quotes",
		RuleApostrophe:     "apostrophe",
		RuleDash:           "dash",
		RuleEllipsis:       "ellipsis",
		RuleSpacing:        "spacing",
		RulePunctuation:    "punctuation",
		RuleUnits:          "units",
		RuleLigatures:      "ligatures",
		RuleAbbreviation:   "abbreviation",
		RuleOrdinals:       "ordinals",
		RuleForeign:        "foreign",
		RuleBullets:        "bullets",
		RuleCasse:          "casse",
		RuleDiacritics:     "diacritics",
		RuleAdmonitions:    "admonitions",
		StructUnterminated: "structure",
		StructFrontMatter:  "structure",
		RuleFailure:        "structure",
	}

	codeDescription = map[Code]string{
		UnknownCode:        "Unknown",
		RuleQuotes:         "French angled quotes",
		RuleApostrophe:     "Typographic apostrophe",
		RuleDash:           "Em dash",
		RuleEllipsis:       "Ellipsis character",
		RuleSpacing:        "Space before double punctuation",
		RulePunctuation:    "Redundant punctuation",
		RuleUnits:          "Space between number and unit",
		RuleLigatures:      "Ligatures",
		RuleAbbreviation:   "Abbreviation spelling",
		RuleOrdinals:       "Ordinal suffix",
		RuleForeign:        "Foreign phrase in italics",
		RuleBullets:        "List bullet",
		RuleCasse:          "Letter case",
		RuleDiacritics:     "Diacritics on capitals",
		RuleAdmonitions:    "Admonition title",
		StructUnterminated: "Unterminated protected region",
		StructFrontMatter:  "Malformed front matter",
		RuleFailure:        "Rule failed on span",
	}

	categoryAliases = map[string]Code{
		"ordinaux": RuleOrdinals,
		"case":     RuleCasse,
	}
)

// Categories returns the rule codes in execution order.
func Categories() []Code {
	out := make([]Code, 0, NumCategories)
	for c := Code(1); c <= NumCategories; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory maps a configuration key (or one of its aliases) to a rule code.
func ParseCategory(name string) (Code, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := categoryAliases[key]; ok {
		return c, true
	}
	for c := Code(1); c <= NumCategories; c++ {
		if codeName[c] == key {
			return c, true
		}
	}
	return UnknownCode, false
}

// IsRule reports whether c is a rule category.
func (c Code) IsRule() bool {
	return c >= 1 && c <= NumCategories
}

// ID returns the category key used in configuration and in output.
func (c Code) ID() string {
	if name, ok := codeName[c]; ok {
		return name
	}
	return "unknown"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
