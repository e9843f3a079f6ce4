// Package testkit holds invariant checks shared by package tests.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"frtypo/internal/source"
)

// CheckPartition verifies that spans cover text exactly once:
// 1) every span is non-empty and inside the text
// 2) spans are sorted and adjacent, starting at 0 and ending at len(text)
func CheckPartition(text string, spans []source.Span) error {
	lenText, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	if len(spans) == 0 {
		if lenText != 0 {
			return fmt.Errorf("no spans for %d bytes of text", lenText)
		}
		return nil
	}
	var pos uint32
	for i, sp := range spans {
		if sp.Empty() {
			return fmt.Errorf("span %d is empty: %v", i, sp)
		}
		if sp.Start != pos {
			return fmt.Errorf("span %d starts at %d, expected %d", i, sp.Start, pos)
		}
		if sp.End > lenText {
			return fmt.Errorf("span %d ends beyond text: %d > %d", i, sp.End, lenText)
		}
		pos = sp.End
	}
	if pos != lenText {
		return fmt.Errorf("spans stop at %d, text has %d bytes", pos, lenText)
	}
	return nil
}

// CheckProtected verifies that every protected fragment appears in out, in
// order and unmodified.
func CheckProtected(out string, protected []string) error {
	rest := out
	for i, p := range protected {
		k := strings.Index(rest, p)
		if k < 0 {
			return fmt.Errorf("protected fragment %d (%q) is missing or modified", i, p)
		}
		rest = rest[k+len(p):]
	}
	return nil
}
