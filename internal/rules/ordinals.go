package rules

import (
	"regexp"

	"frtypo/internal/diag"
	"frtypo/internal/lexicon"
)

var ordinalPattern = regexp.MustCompile(`(?i)(\d+)(ières|ieres|ièmes|iemes|ière|iere|ième|ieme|èmes|emes|ères|eres|ires|ème|eme|ère|ere|ers|ire|res|er|re|es|e)`)

// firstSuffix and nthSuffix give the superscript for "1" and for other
// numbers; a missing entry leaves the ordinal alone.
var (
	firstSuffix = map[string]string{
		"ières": "res", "ieres": "res", "ière": "re", "iere": "re",
		"èmes": "ers", "emes": "ers", "ème": "er", "eme": "er",
		"ères": "res", "eres": "res", "ère": "re", "ere": "re",
		"ires": "res", "ire": "re", "res": "res", "re": "re",
		"ers": "ers", "er": "er", "es": "ers", "e": "er",
	}
	nthSuffix = map[string]string{
		"ièmes": "es", "iemes": "es", "ième": "e", "ieme": "e",
		"èmes": "es", "emes": "es", "ème": "e", "eme": "e",
		"es": "es", "e": "e",
	}
)

type ordinals struct{ base }

func newOrdinals() *ordinals { return &ordinals{base{diag.RuleOrdinals}} }

// Check rewrites a numeral glued to its suffix, "2eme" -> "2^e^".
func (o *ordinals) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, m := range ordinalPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		prev := runeBefore(text, start)
		if isWordRune(prev) || prev == '^' || (prev == '.' || prev == ',') && isWordRune(runeBefore(text, start-1)) {
			continue
		}
		if next := runeAt(text, end); isWordRune(next) || next == '^' {
			continue
		}
		number := text[m[2]:m[3]]
		suffix := lexicon.Lower(text[m[4]:m[5]])
		table := nthSuffix
		if number == "1" {
			table = firstSuffix
		}
		sup, ok := table[suffix]
		if !ok {
			continue
		}
		edits = append(edits, Edit{
			Start:  start,
			End:    end,
			Before: text[start:end],
			After:  number + "^" + sup + "^",
			Note:   "ordinal " + number + sup,
		})
	}
	return edits
}
