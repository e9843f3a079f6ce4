package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

var (
	asciiQuotes = regexp.MustCompile(`"([^"\n]+)"`)
	// admonitionLine: на строке заголовка кавычки - это синтаксис
	admonitionLine = regexp.MustCompile(`^[ \t]*(?:!!!|\?\?\?\+?)[ \t]+[A-Za-z0-9_-]+`)
)

type quotes struct{ base }

func newQuotes() *quotes { return &quotes{base{diag.RuleQuotes}} }

func (q *quotes) Check(text string, _ *State) []Edit {
	var edits []Edit
	forEachLine(text, func(start int, line string) {
		if admonitionLine.MatchString(line) {
			return
		}
		last := 0
		for _, m := range asciiQuotes.FindAllStringSubmatchIndex(line, -1) {
			edits = append(edits, guillemetEdits(line[last:m[0]], start+last)...)
			last = m[1]
			inner := strings.TrimFunc(line[m[2]:m[3]], isHorizontalBlank)
			if inner == "" {
				continue
			}
			inner = fix.Apply(inner, guillemetEdits(inner, 0))
			edits = append(edits, Edit{
				Start:  start + m[0],
				End:    start + m[1],
				Before: line[m[0]:m[1]],
				After:  "«" + NNBSP + inner + NNBSP + "»",
				Note:   "use French quotation marks",
			})
		}
		edits = append(edits, guillemetEdits(line[last:], start+last)...)
	})
	return edits
}

// guillemetEdits puts exactly one narrow no-break space inside existing
// guillemets. Offsets are shifted by off.
func guillemetEdits(text string, off int) []Edit {
	var edits []Edit
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '«':
			k := blanksAfter(text, i+size)
			if k == len(text) || runeAt(text, k) == '»' {
				break
			}
			if text[i+size:k] != NNBSP {
				edits = append(edits, Edit{
					Start:  off + i,
					End:    off + k,
					Before: text[i:k],
					After:  "«" + NNBSP,
					Note:   "narrow no-break space after «",
				})
			}
		case '»':
			k := blanksBefore(text, i)
			if k == 0 || runeBefore(text, k) == '«' {
				break
			}
			if text[k:i] != NNBSP {
				edits = append(edits, Edit{
					Start:  off + k,
					End:    off + i + size,
					Before: text[k : i+size],
					After:  NNBSP + "»",
					Note:   "narrow no-break space before »",
				})
			}
		}
		i += size
	}
	return edits
}
