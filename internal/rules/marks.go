package rules

import (
	"regexp"
	"strings"
	"unicode"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

type apostrophe struct{ base }

func newApostrophe() *apostrophe { return &apostrophe{base{diag.RuleApostrophe}} }

func (a *apostrophe) Check(text string, _ *State) []Edit {
	var edits []Edit
	for i := 0; i < len(text); i++ {
		if text[i] != '\'' {
			continue
		}
		if unicode.IsLetter(runeBefore(text, i)) && unicode.IsLetter(runeAt(text, i+1)) {
			edits = append(edits, fix.Replace(text, i, i+1, "’", "typographic apostrophe"))
		}
	}
	return edits
}

// tableDelimiter matches a Markdown table separator row.
var tableDelimiter = regexp.MustCompile(`^[ \t]*\|?[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)

type dash struct{ base }

func newDash() *dash { return &dash{base{diag.RuleDash}} }

func (d *dash) Check(text string, _ *State) []Edit {
	var edits []Edit
	forEachLine(text, func(start int, line string) {
		if !strings.Contains(line, "--") || tableDelimiter.MatchString(line) {
			return
		}
		for i := 0; i+1 < len(line); i++ {
			if line[i] != '-' || line[i+1] != '-' {
				continue
			}
			end := i + 2
			if i > 0 && line[i-1] == '-' || end < len(line) && line[end] == '-' {
				for i < len(line) && line[i] == '-' {
					i++
				}
				continue
			}
			before, after := runeBefore(line, i), runeAt(line, end)
			if (before == -1 || isHorizontalBlank(before)) && dashEnds(after) {
				edits = append(edits, fix.Replace(text, start+i, start+end, "—", "em dash"))
			}
			i = end - 1
		}
	})
	return edits
}

// dashEnds: a blank, the end of the text, or a mark that spacing will later
// separate from the dash.
func dashEnds(r rune) bool {
	return r == -1 || isHorizontalBlank(r) || strings.ContainsRune("?!;:….", r)
}

type ellipsis struct{ base }

func newEllipsis() *ellipsis { return &ellipsis{base{diag.RuleEllipsis}} }

func (e *ellipsis) Check(text string, _ *State) []Edit {
	var edits []Edit
	for i := 0; i < len(text); {
		k := strings.IndexByte(text[i:], '.')
		if k < 0 {
			break
		}
		start := i + k
		end := start
		for end < len(text) && text[end] == '.' {
			end++
		}
		if end-start == 3 {
			edits = append(edits, fix.Replace(text, start, end, "…", "ellipsis character"))
		}
		i = end
	}
	return edits
}
