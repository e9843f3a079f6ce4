package rules

import (
	"regexp"
	"strings"
	"unicode"

	"frtypo/internal/diag"
)

// emojiTail matches the ":name" part of an :emoji: shortcode.
var emojiTail = regexp.MustCompile(`:[A-Za-z0-9_+-]+$`)

type spacing struct{ base }

func newSpacing() *spacing { return &spacing{base{diag.RuleSpacing}} }

func isHighPunct(b byte) bool {
	return b == ';' || b == ':' || b == '!' || b == '?'
}

// Check puts a no-break space before the first mark of a ; : ! ? run: narrow
// before ; ! ?, regular before :. The run must follow a word and be followed
// by a blank, the end of text, or closing punctuation.
func (s *spacing) Check(text string, _ *State) []Edit {
	var edits []Edit
	for i := 0; i < len(text); {
		if !isHighPunct(text[i]) {
			i++
			continue
		}
		runStart := i
		for i < len(text) && isHighPunct(text[i]) {
			i++
		}
		runEnd := i

		q := blanksBefore(text, runStart)
		if q == 0 {
			continue
		}
		prev := runeBefore(text, q)
		if prev == '\n' || strings.ContainsRune("«([{", prev) {
			continue
		}
		if !closesPunct(runeAt(text, runEnd)) {
			continue
		}
		if text[runStart] == ':' && q == runStart && emojiTail.MatchString(text[:q]) {
			continue
		}
		want, note := NNBSP, "narrow no-break space before "+text[runStart:runStart+1]
		if text[runStart] == ':' {
			want, note = NBSP, "no-break space before :"
		}
		if text[q:runStart] == want {
			continue
		}
		edits = append(edits, Edit{
			Start:  q,
			End:    runEnd,
			Before: text[q:runEnd],
			After:  want + text[runStart:runEnd],
			Note:   note,
		})
	}
	return edits
}

// closesPunct reports whether r may follow a punctuation run.
func closesPunct(r rune) bool {
	return r == -1 || unicode.IsSpace(r) || strings.ContainsRune(".,…»\"')]*_’", r)
}
