package rules

import (
	"unicode"
	"unicode/utf8"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
	"frtypo/internal/lexicon"
)

var (
	months = []string{
		"janvier", "février", "mars", "avril", "mai", "juin", "juillet",
		"août", "septembre", "octobre", "novembre", "décembre",
	}
	days = []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

	// Countries are proper nouns. Demonyms and language names are left
	// alone: "les Français" and "le français" are both correct.
	countries = []string{
		"France", "Suisse", "Allemagne", "Italie", "Espagne", "Portugal",
		"Belgique", "Luxembourg", "États-Unis", "Royaume-Uni",
	}
)

type casse struct {
	base
	calendar  map[string]string // folded -> lowercase form
	countries map[string]string // folded -> canonical form
}

func newCasse() *casse {
	c := &casse{
		base:      base{diag.RuleCasse},
		calendar:  make(map[string]string, len(months)+len(days)),
		countries: make(map[string]string, len(countries)),
	}
	for _, w := range append(append([]string(nil), months...), days...) {
		c.calendar[lexicon.Fold(w)] = w
	}
	for _, w := range countries {
		c.countries[lexicon.Fold(w)] = w
	}
	return c
}

func (c *casse) Check(text string, st *State) []Edit {
	var edits []Edit
	for _, tok := range hyphenatedWords(text) {
		word := text[tok.start:tok.end]
		fold := lexicon.Fold(word)

		if canon, ok := c.countries[fold]; ok {
			if word == canon || lexicon.ShapeOf(lettersOf(word)) == lexicon.ShapeUpper {
				continue
			}
			if canon == "Suisse" && !afterArticle(text, tok.start) {
				continue
			}
			edits = append(edits, fix.Replace(text, tok.start, tok.end, canon, "country name is capitalized"))
			continue
		}

		lower, ok := c.calendar[fold]
		if !ok || lexicon.ShapeOf(word) != lexicon.ShapeTitle {
			continue
		}
		if SentenceStart(text, tok.start, st.SentenceStart) {
			continue
		}
		if lower == "mars" && !nearNumber(text, tok.start, tok.end) {
			continue
		}
		edits = append(edits, fix.Replace(text, tok.start, tok.end, lower, "lowercase "+lower))
	}
	return edits
}

// hyphenatedWords splits text into letter runs joined by single hyphens.
func hyphenatedWords(text string) []token {
	runs := letterRuns(text)
	var out []token
	for i := 0; i < len(runs); i++ {
		tok := runs[i]
		for i+1 < len(runs) && runs[i+1].start == tok.end+1 && text[tok.end] == '-' {
			i++
			tok.end = runs[i].end
		}
		out = append(out, tok)
	}
	return out
}

// afterArticle reports whether the word at i follows "la" or "en".
func afterArticle(text string, i int) bool {
	j := blanksBefore(text, i)
	if j == i {
		return false
	}
	k := j
	for k > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:k])
		if !unicode.IsLetter(r) {
			break
		}
		k -= size
	}
	prev := lexicon.Lower(text[k:j])
	return prev == "la" || prev == "en"
}

// nearNumber reports whether a numeral sits right before or after text[start:end].
func nearNumber(text string, start, end int) bool {
	if r := runeBefore(text, blanksBefore(text, start)); unicode.IsDigit(r) || r == '^' {
		return true
	}
	after := blanksAfter(text, end)
	return after > end && unicode.IsDigit(runeAt(text, after))
}
