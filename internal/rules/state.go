package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// State is carried from span to span while one rule walks a document.
type State struct {
	// SentenceStart is true when the next span begins a sentence.
	SentenceStart bool

	traces []string
}

// NewState returns the state at the start of a document.
func NewState() *State {
	return &State{SentenceStart: true}
}

// Advance updates the state after text has been visited.
func (st *State) Advance(text string) {
	st.SentenceStart = SentenceStart(text, len(text), st.SentenceStart)
}

// Break marks a block boundary: what follows starts a sentence.
func (st *State) Break() { st.SentenceStart = true }

// Continue marks inline content: what follows continues the sentence.
func (st *State) Continue() { st.SentenceStart = false }

// Tracef records a debug note; the engine forwards it to the tracer.
func (st *State) Tracef(format string, args ...any) {
	st.traces = append(st.traces, fmt.Sprintf(format, args...))
}

// DrainTraces returns and clears the recorded notes.
func (st *State) DrainTraces() []string {
	out := st.traces
	st.traces = nil
	return out
}

// blockPrefix matches a heading, quote or list marker (plus emphasis) at the
// start of a line.
var blockPrefix = regexp.MustCompile(`^[ \t]*(?:(?:#{1,6}|>|[-+*]|\d{1,9}[.)])[ \t]+|>[ \t]*)+[*_~]*$`)

// SentenceStart reports whether offset i of text begins a sentence. Blanks
// and emphasis markers before i are skipped; carried is the answer for the
// start of text.
func SentenceStart(text string, i int, carried bool) bool {
	lineStart := strings.LastIndexByte(text[:i], '\n') + 1
	if prefix := text[lineStart:i]; prefix != "" && blockPrefix.MatchString(prefix) {
		return lineStart > 0 || carried
	}
	j := i
	for j > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:j])
		switch {
		case r == '\n':
			k := j - 1
			for k > 0 && (text[k-1] == ' ' || text[k-1] == '\t') {
				k--
			}
			if k == 0 {
				return carried
			}
			if text[k-1] == '\n' {
				return true
			}
			j = k
		case isHorizontalBlank(r) || strings.ContainsRune("*_~«\"“[", r):
			j -= size
		default:
			return strings.ContainsRune(".!?…:(", r)
		}
	}
	return carried
}
