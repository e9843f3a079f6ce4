package rules

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"frtypo/internal/lexicon"
)

const (
	NBSP  = "\u00a0"
	NNBSP = "\u202f"
)

func isHorizontalBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0' || r == '\u202f'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// runeBefore returns the rune ending at i, or -1 at the start of text.
func runeBefore(text string, i int) rune {
	if i <= 0 {
		return -1
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r
}

// runeAt returns the rune starting at i, or -1 at the end of text.
func runeAt(text string, i int) rune {
	if i >= len(text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return r
}

// bounded reports whether text[start:end] is a whole word. A match ending
// with a dot needs no boundary on the right.
func bounded(text string, start, end int) bool {
	if isWordRune(runeBefore(text, start)) {
		return false
	}
	if end > start && text[end-1] == '.' {
		return true
	}
	return !isWordRune(runeAt(text, end))
}

// blanksBefore returns the offset where the run of horizontal blanks ending at i starts.
func blanksBefore(text string, i int) int {
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if !isHorizontalBlank(r) {
			break
		}
		i -= size
	}
	return i
}

// blanksAfter returns the offset where the run of horizontal blanks starting at i ends.
func blanksAfter(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isHorizontalBlank(r) {
			break
		}
		i += size
	}
	return i
}

// forEachLine calls fn with the offset and content of every line, without '\n'.
func forEachLine(text string, fn func(start int, line string)) {
	for start := 0; start <= len(text); {
		k := strings.IndexByte(text[start:], '\n')
		if k < 0 {
			fn(start, text[start:])
			return
		}
		fn(start, text[start:start+k])
		start += k + 1
	}
}

type token struct {
	start, end int
}

// letterRuns splits text into maximal runs of letters.
func letterRuns(text string) []token {
	var out []token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, token{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, token{start, len(text)})
	}
	return out
}

// phraseMatcher finds whole-word, case-insensitive occurrences of a fixed
// phrase list. Blanks inside a phrase match any run of horizontal blanks.
type phraseMatcher struct {
	re    *regexp.Regexp
	canon map[string]string
}

// newPhraseMatcher maps each source phrase to its canonical replacement.
func newPhraseMatcher(phrases map[string]string) *phraseMatcher {
	if len(phrases) == 0 {
		return nil
	}
	keys := make([]string, 0, len(phrases))
	canon := make(map[string]string, len(phrases))
	for src, dst := range phrases {
		k := phraseKey(src)
		if k == "" {
			continue
		}
		if _, dup := canon[k]; !dup {
			keys = append(keys, k)
		}
		canon[k] = dst
	}
	if len(keys) == 0 {
		return nil
	}
	// длинные фразы первыми: альтернация выбирает первую подходящую
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	alts := make([]string, len(keys))
	for i, k := range keys {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `[ \t\x{00A0}\x{202F}]+`)
	}
	return &phraseMatcher{
		re:    regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`),
		canon: canon,
	}
}

type phraseMatch struct {
	start, end int
	canonical  string
}

// find returns bounded matches; extra word characters (such as '-') can be
// added to the boundary test with joiners.
func (m *phraseMatcher) find(text, joiners string) []phraseMatch {
	if m == nil {
		return nil
	}
	var out []phraseMatch
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		before, after := runeBefore(text, loc[0]), runeAt(text, loc[1])
		if isWordRune(before) || isWordRune(after) {
			continue
		}
		if joiners != "" && (strings.ContainsRune(joiners, before) || strings.ContainsRune(joiners, after)) {
			continue
		}
		canonical, ok := m.canon[phraseKey(text[loc[0]:loc[1]])]
		if !ok {
			continue
		}
		out = append(out, phraseMatch{start: loc[0], end: loc[1], canonical: canonical})
	}
	return out
}

func phraseKey(s string) string {
	return strings.Join(strings.FieldsFunc(lexicon.Lower(s), isHorizontalBlank), " ")
}

// recase gives form the casing pattern of sample; mixed casing returns "".
func recase(form, sample string) string {
	switch shape := lexicon.ShapeOf(lettersOf(sample)); shape {
	case lexicon.ShapeLower, lexicon.ShapeUpper, lexicon.ShapeTitle:
		return lexicon.ApplyShape(form, shape)
	}
	return ""
}

func lettersOf(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// keepInitialCase copies the case of the first letter of sample onto form.
func keepInitialCase(form, sample string) string {
	r, _ := utf8.DecodeRuneInString(sample)
	if !unicode.IsUpper(r) {
		return form
	}
	f, size := utf8.DecodeRuneInString(form)
	return string(unicode.ToUpper(f)) + form[size:]
}
