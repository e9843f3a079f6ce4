package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Resolution is the outcome of resolving one token.
type Resolution struct {
	Token string
	// Candidates are the lexicon forms compatible with the diacritics
	// already present in Token.
	Candidates []string
	// Replacement is set only when exactly one candidate differs from Token.
	Replacement string
	Ambiguous   bool
	// Default is the preferred form of an ambiguous key.
	Default string
}

// Changed reports whether the token should be rewritten.
func (r Resolution) Changed() bool {
	return r.Replacement != "" && r.Replacement != r.Token
}

// accentable lists capitals that can carry a diacritic in French.
const accentable = "AEIOUCY"

// Resolve looks a token up and decides conservatively. Only fully uppercase
// tokens and capitalized tokens starting with an accentable capital are
// considered; single letters never are. A capitalized token is corrected only
// on its first letter.
func (l *Lexicon) Resolve(token string) Resolution {
	res := Resolution{Token: token}
	if l == nil || utf8.RuneCountInString(token) < 2 {
		return res
	}
	shape := ShapeOf(token)
	switch shape {
	case ShapeUpper:
	case ShapeTitle:
		first, _ := utf8.DecodeRuneInString(token)
		if !strings.ContainsRune(accentable, first) {
			return res
		}
	default:
		return res
	}

	entry, ok := l.entries[Key(token)]
	if !ok {
		return res
	}

	lower := Lower(token)
	for _, form := range entry.Forms {
		if compatible(lower, form) {
			res.Candidates = append(res.Candidates, form)
		}
	}
	switch len(res.Candidates) {
	case 0:
		return res
	case 1:
	default:
		res.Ambiguous = true
		res.Default = entry.Preferred()
		return res
	}

	form := res.Candidates[0]
	if form == lower {
		return res
	}
	if shape == ShapeTitle && !sameTail(lower, form) {
		return res
	}
	res.Replacement = ApplyShape(form, shape)
	return res
}

// compatible reports whether candidate keeps every diacritic already present
// in original and differs only by added diacritics.
func compatible(original, candidate string) bool {
	orig := []rune(original)
	cr := []rune(candidate)
	if len(orig) != len(cr) {
		return false
	}
	for i := range orig {
		o, c := string(orig[i]), string(cr[i])
		if StripDiacritics(o) != o {
			if o != c {
				return false
			}
			continue
		}
		if StripDiacritics(c) != o {
			return false
		}
	}
	return true
}

func sameTail(a, b string) bool {
	_, sa := utf8.DecodeRuneInString(a)
	_, sb := utf8.DecodeRuneInString(b)
	return a[sa:] == b[sb:]
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}
