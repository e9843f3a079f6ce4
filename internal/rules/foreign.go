package rules

import (
	"strings"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
	"frtypo/internal/lexicon"
)

// ForeignPhrases are the built-in locutions set in italics.
var ForeignPhrases = []string{
	"a capella",
	"de facto",
	"honoris causa",
	"ipso facto",
	"manu militari",
	"sine die",
}

type foreign struct {
	base
	phrases *phraseMatcher
}

// newForeign merges user phrases into the built-in list and drops the
// naturalized ones.
func newForeign(extra, naturalized []string) *foreign {
	skip := make(map[string]bool, len(naturalized))
	for _, p := range naturalized {
		skip[phraseKey(p)] = true
	}
	set := make(map[string]string)
	for _, p := range append(append([]string(nil), ForeignPhrases...), extra...) {
		if k := phraseKey(p); k != "" && !skip[k] {
			set[k] = k
		}
	}
	return &foreign{base: base{diag.RuleForeign}, phrases: newPhraseMatcher(set)}
}

// Check wraps foreign locutions in _…_ unless they are already emphasized.
func (f *foreign) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, m := range f.phrases.find(text, "-*") {
		if insideEmphasis(text, m.start) {
			continue
		}
		note := "italics for foreign phrase " + lexicon.Lower(text[m.start:m.end])
		edits = append(edits, fix.Wrap(text, m.start, m.end, "_", "_", note))
	}
	return edits
}

// insideEmphasis guesses whether offset i sits inside an emphasized run
// opened earlier on the same line.
func insideEmphasis(text string, i int) bool {
	line := text[strings.LastIndexByte(text[:i], '\n')+1 : i]
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	return strings.Count(line, "*")%2 == 1 || strings.Count(line, "_")%2 == 1
}
