package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

type abbreviationForm struct {
	re        *regexp.Regexp
	canonical string
	// keepCase copies the case of the first letter of the match.
	keepCase bool
	note     string
	// joiners extend the word boundary, so "NB-IoT" stays a single word.
	joiners string
}

var abbreviationForms = []abbreviationForm{
	{regexp.MustCompile(`(?i)c[ \t]*[.-]{1,2}[ \t]*[aà][ \t]*[.-]{0,2}[ \t]*d\.?`), "c.-à-d.", true, "abbreviation c.-à-d.", ""},
	{regexp.MustCompile(`(?i)i\.[ \t]?e\.?`), "c.-à-d.", true, "abbreviation c.-à-d. instead of i.e.", ""},
	{regexp.MustCompile(`(?i)p[ \t]*\.[ \t]*ex\.?`), "p. ex.", true, "abbreviation p. ex.", ""},
	{regexp.MustCompile(`(?i)e\.[ \t]?g\.?`), "p. ex.", true, "abbreviation p. ex. instead of e.g.", ""},
	{regexp.MustCompile(`(?i)n[ \t]*\.[ \t]*b\.?`), "N. B.", false, "abbreviation N. B.", "-"},
	{regexp.MustCompile(`NB`), "N. B.", false, "abbreviation N. B.", "-"},
}

// etcTrail matches "etc" followed by several dots or an ellipsis.
var etcTrail = regexp.MustCompile(`(?i)etc(?:[ \t]*\.(?:[ \t]*\.)+|[ \t]*…+)`)

type abbreviation struct{ base }

func newAbbreviation() *abbreviation { return &abbreviation{base{diag.RuleAbbreviation}} }

func (a *abbreviation) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, form := range abbreviationForms {
		for _, loc := range form.re.FindAllStringIndex(text, -1) {
			if !bounded(text, loc[0], loc[1]) {
				continue
			}
			if form.joiners != "" && (strings.ContainsRune(form.joiners, runeBefore(text, loc[0])) ||
				strings.ContainsRune(form.joiners, runeAt(text, loc[1]))) {
				continue
			}
			before := text[loc[0]:loc[1]]
			after := form.canonical
			if form.keepCase {
				after = keepInitialCase(after, before)
			}
			if before == after {
				continue
			}
			edits = append(edits, fix.Replace(text, loc[0], loc[1], after, form.note))
		}
	}
	for _, loc := range etcTrail.FindAllStringIndex(text, -1) {
		if isWordRune(runeBefore(text, loc[0])) || isWordRune(runeAt(text, loc[1])) {
			continue
		}
		word := text[loc[0] : loc[0]+3]
		edits = append(edits, fix.Replace(text, loc[0], loc[1], etcCase(word)+".", "single dot after etc"))
	}
	return fix.Disjoint(edits)
}

// etcCase keeps ETC, Etc and etc apart.
func etcCase(word string) string {
	if strings.ToUpper(word) == word {
		return "ETC"
	}
	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		return "Etc"
	}
	return "etc"
}
