// Package lexicon implements the dictionary behind diacritics restoration.
//
// A Lexicon maps a normalized key (uppercase, no diacritics) to the ordered
// lowercase surface forms sharing that key. It is built once, from a word
// list or a compressed artifact, and never mutated afterwards, so a single
// *Lexicon is shared by every document worker.
package lexicon

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode/utf8"
)

// Entry lists the surface forms of one key. Default indexes the preferred form.
type Entry struct {
	Forms   []string `msgpack:"forms"`
	Default int      `msgpack:"default"`
}

// Ambiguous reports whether the key has more than one surface form.
func (e Entry) Ambiguous() bool {
	return len(e.Forms) > 1
}

// Preferred returns the default form.
func (e Entry) Preferred() string {
	if e.Default < 0 || e.Default >= len(e.Forms) {
		return ""
	}
	return e.Forms[e.Default]
}

type Lexicon struct {
	entries map[string]Entry
	words   int
}

// Len returns the number of keys.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Words returns the number of distinct words the lexicon was built from.
func (l *Lexicon) Words() int {
	if l == nil {
		return 0
	}
	return l.words
}

// Lookup returns the entry for a word in any casing.
func (l *Lexicon) Lookup(word string) (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	e, ok := l.entries[Key(word)]
	return e, ok
}

// Digest identifies the content of the lexicon; a nil lexicon has the empty digest.
func (l *Lexicon) Digest() string {
	if l == nil {
		return ""
	}
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h := sha256.New()
	for _, k := range keys {
		e := l.entries[k]
		_, _ = h.Write([]byte(k + "=" + strings.Join(e.Forms, ",") + ";"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Build indexes a word list. Every word keeps its diacritics; the forms of a
// key are ordered with the unaccented form first when it is itself a word,
// then the accented forms sorted. The first form is the default.
func Build(words []string) *Lexicon {
	groups := make(map[string]map[string]struct{})
	distinct := make(map[string]struct{})
	for _, w := range words {
		w = Lower(w)
		if utf8.RuneCountInString(w) < 2 || !isWord(w) {
			continue
		}
		distinct[w] = struct{}{}
		key := Key(w)
		if groups[key] == nil {
			groups[key] = make(map[string]struct{})
		}
		groups[key][w] = struct{}{}
	}

	entries := make(map[string]Entry, len(groups))
	for key, set := range groups {
		base := Lower(key)
		forms := make([]string, 0, len(set))
		_, hasBase := set[base]
		for f := range set {
			if f != base {
				forms = append(forms, f)
			}
		}
		// ключ без вариантов с диакритикой бесполезен для восстановления
		if len(forms) == 0 {
			continue
		}
		sort.Strings(forms)
		if hasBase {
			forms = append([]string{base}, forms...)
		}
		entries[key] = Entry{Forms: forms, Default: 0}
	}
	return &Lexicon{entries: entries, words: len(distinct)}
}

func isWord(w string) bool {
	for _, r := range w {
		if !isLetter(r) && r != '-' && r != '\'' && r != '’' {
			return false
		}
	}
	return true
}
