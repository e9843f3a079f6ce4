package rules

import (
	"regexp"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

var (
	commaEllipsis  = regexp.MustCompile(`,[ \t\x{00A0}\x{202F}]*…`)
	doubledAbbrDot = regexp.MustCompile(`(?i)(?:etc|cf|env|vol|chap|fig|art|ibid)\.\.`)
)

type punctuation struct{ base }

func newPunctuation() *punctuation { return &punctuation{base{diag.RulePunctuation}} }

func (p *punctuation) Check(text string, _ *State) []Edit {
	var edits []Edit
	// "?." и "!." - точка лишняя
	for i := 0; i+1 < len(text); i++ {
		if (text[i] != '?' && text[i] != '!') || text[i+1] != '.' {
			continue
		}
		after := runeAt(text, i+2)
		if after == '.' || !closesPunct(after) {
			continue
		}
		edits = append(edits, fix.Replace(text, i, i+2, text[i:i+1], "redundant dot after "+text[i:i+1]))
	}
	for _, loc := range commaEllipsis.FindAllStringIndex(text, -1) {
		edits = append(edits, fix.Replace(text, loc[0], loc[1], "…", "comma before ellipsis"))
	}
	for _, loc := range doubledAbbrDot.FindAllStringIndex(text, -1) {
		if isWordRune(runeBefore(text, loc[0])) || runeAt(text, loc[1]) == '.' {
			continue
		}
		edits = append(edits, fix.Replace(text, loc[0], loc[1], text[loc[0]:loc[1]-1], "doubled abbreviation dot"))
	}
	return fix.Disjoint(edits)
}
