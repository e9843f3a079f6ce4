// Package region splits a Markdown document into correctable text and
// protected regions (code, math, front matter, links, ignore markers, markup).
//
// The scan is a single left-to-right pass over the raw text; it does not build
// a document tree. The produced spans partition the document: concatenating
// their Text reconstructs the input byte for byte.
package region

import (
	"fmt"

	"frtypo/internal/source"
)

type Kind uint8

const (
	Correctable Kind = iota
	Protected
)

func (k Kind) String() string {
	if k == Protected {
		return "protected"
	}
	return "correctable"
}

// Reason tells why a span is protected. It is informational only.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonFrontMatter
	ReasonCodeFence
	ReasonInlineCode
	ReasonMathBlock
	ReasonMathInline
	ReasonExplicitIgnore
	ReasonInlineIgnoreSpan
	ReasonLinkOrURL
	ReasonMarkup
)

var reasonNames = [...]string{
	ReasonNone:             "none",
	ReasonFrontMatter:      "front-matter",
	ReasonCodeFence:        "code-fence",
	ReasonInlineCode:       "inline-code",
	ReasonMathBlock:        "math-block",
	ReasonMathInline:       "math-inline",
	ReasonExplicitIgnore:   "explicit-ignore",
	ReasonInlineIgnoreSpan: "inline-ignore-span",
	ReasonLinkOrURL:        "link-or-url",
	ReasonMarkup:           "markup",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Block reports whether the reason covers whole blocks. Text following a
// block starts a new sentence.
func (r Reason) Block() bool {
	switch r {
	case ReasonFrontMatter, ReasonCodeFence, ReasonMathBlock, ReasonExplicitIgnore:
		return true
	}
	return false
}

// Span is a contiguous slice of the document, [Start, End) in bytes.
type Span struct {
	Kind   Kind
	Reason Reason
	Start  int
	End    int
	Text   string
}

func (s Span) Protected() bool {
	return s.Kind == Protected
}

// Source converts the span to source coordinates.
func (s Span) Source(file source.FileID) source.Span {
	return source.SpanOf(file, s.Start, s.End)
}

func (s Span) String() string {
	if s.Kind == Protected {
		return fmt.Sprintf("protected(%s)[%d:%d]", s.Reason, s.Start, s.End)
	}
	return fmt.Sprintf("correctable[%d:%d]", s.Start, s.End)
}
