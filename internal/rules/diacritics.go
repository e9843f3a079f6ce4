package rules

import (
	"unicode"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
	"frtypo/internal/lexicon"
)

type diacritics struct {
	base
	lex *lexicon.Lexicon
}

func newDiacritics(lex *lexicon.Lexicon) *diacritics {
	return &diacritics{base: base{diag.RuleDiacritics}, lex: lex}
}

// Check restores accents on capitals when the lexicon has a single answer.
// Ambiguous words are never touched; they only leave a trace.
func (d *diacritics) Check(text string, st *State) []Edit {
	if d.lex == nil {
		return nil
	}
	var edits []Edit
	for _, tok := range letterRuns(text) {
		before, after := runeBefore(text, tok.start), runeAt(text, tok.end)
		if unicode.IsDigit(before) || before == '_' || unicode.IsDigit(after) || after == '_' {
			continue
		}
		word := text[tok.start:tok.end]
		res := d.lex.Resolve(word)
		switch {
		case res.Ambiguous:
			st.Tracef("diacritics: %q is ambiguous %v, default %q, left unchanged", word, res.Candidates, res.Default)
		case res.Changed():
			edits = append(edits, fix.Replace(text, tok.start, tok.end, res.Replacement, "accented capital"))
		}
	}
	return edits
}
