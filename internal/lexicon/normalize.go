package lexicon

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transformers and casers keep state between calls, so every call builds its
// own: documents are resolved from several goroutines.

// StripDiacritics removes combining marks: "Élévation" -> "Elevation".
// Ligatures such as œ are letters, not marks, and are kept.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Upper uppercases with French rules.
func Upper(s string) string {
	return cases.Upper(language.French).String(s)
}

// Lower lowercases with French rules.
func Lower(s string) string {
	return cases.Lower(language.French).String(s)
}

// Key is the lookup key of a word: uppercased, diacritics stripped.
func Key(word string) string {
	return Upper(StripDiacritics(norm.NFC.String(word)))
}

// Fold is the diacritic- and case-insensitive form used for comparisons.
func Fold(word string) string {
	return Lower(StripDiacritics(norm.NFC.String(word)))
}

// Shape describes the casing pattern of a token.
type Shape uint8

const (
	ShapeOther Shape = iota
	ShapeLower
	ShapeUpper
	ShapeTitle
)

// ShapeOf classifies a token made of letters.
func ShapeOf(token string) Shape {
	if token == "" {
		return ShapeOther
	}
	upper, lower := 0, 0
	first, _ := utf8.DecodeRuneInString(token)
	for _, r := range token {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	switch {
	case upper > 0 && lower == 0:
		return ShapeUpper
	case upper == 0 && lower > 0:
		return ShapeLower
	case upper == 1 && unicode.IsUpper(first):
		return ShapeTitle
	}
	return ShapeOther
}

// ApplyShape recases a lowercase form to the given shape.
func ApplyShape(form string, shape Shape) string {
	switch shape {
	case ShapeUpper:
		return Upper(form)
	case ShapeTitle:
		r, size := utf8.DecodeRuneInString(form)
		if r == utf8.RuneError {
			return form
		}
		return Upper(string(r)) + form[size:]
	}
	return form
}
