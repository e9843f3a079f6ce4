package fix

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOutOfRange  = errors.New("edit span out of range")
	ErrOverlap     = errors.New("edits overlap")
	ErrMismatch    = errors.New("existing text does not match expected content")
	ErrLineBreaks  = errors.New("edit changes line breaks")
	ErrUnsorted    = errors.New("edits are not sorted")
	ErrEmptyChange = errors.New("edit does not change anything")
)

// Validate checks an edit set produced for text: sorted, non-overlapping,
// inside the text, guarded by the right Before, and line-break neutral.
func Validate(text string, edits []Edit) error {
	prevEnd := -1
	prevInsert := -1
	for i, e := range edits {
		if e.Start < 0 || e.End < e.Start || e.End > len(text) {
			return fmt.Errorf("edit %d [%d:%d]: %w", i, e.Start, e.End, ErrOutOfRange)
		}
		if e.Start < prevEnd {
			if i > 0 && e.Start < edits[i-1].Start {
				return fmt.Errorf("edit %d: %w", i, ErrUnsorted)
			}
			return fmt.Errorf("edit %d [%d:%d]: %w", i, e.Start, e.End, ErrOverlap)
		}
		// две вставки в одну точку дают неопределённый порядок
		if e.Start == e.End && e.Start == prevInsert {
			return fmt.Errorf("edit %d [%d:%d]: %w", i, e.Start, e.End, ErrOverlap)
		}
		if text[e.Start:e.End] != e.Before {
			return fmt.Errorf("edit %d: %w: have %q, want %q", i, ErrMismatch, text[e.Start:e.End], e.Before)
		}
		if e.Before == e.After {
			return fmt.Errorf("edit %d: %w", i, ErrEmptyChange)
		}
		if strings.Count(e.Before, "\n") != strings.Count(e.After, "\n") {
			return fmt.Errorf("edit %d: %w", i, ErrLineBreaks)
		}
		prevEnd = e.End
		if e.Start == e.End {
			prevInsert = e.Start
		} else {
			prevInsert = -1
		}
	}
	return nil
}

// Apply rewrites text with a validated edit set.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}
	var sb strings.Builder
	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}
	sb.Grow(len(text) + max(delta, 0))
	last := 0
	for _, e := range edits {
		sb.WriteString(text[last:e.Start])
		sb.WriteString(e.After)
		last = e.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Disjoint sorts edits by position and drops every edit that conflicts with
// an earlier kept one. Rules that run several independent matchers use it
// to merge their findings.
func Disjoint(edits []Edit) []Edit {
	if len(edits) < 2 {
		return edits
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start == edits[j].Start {
			return edits[i].End > edits[j].End
		}
		return edits[i].Start < edits[j].Start
	})
	out := edits[:0]
	for _, e := range edits {
		if len(out) > 0 && spansConflict(out[len(out)-1], e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// spansConflict reports whether two edits' spans overlap.
// Spans are half-open intervals [Start, End). Two insertions conflict only at
// the same offset. An insertion conflicts with a non-empty span if its
// position is strictly inside that span.
func spansConflict(a, b Edit) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return a.Start == b.Start
	case a.Start == a.End:
		return b.Start < a.Start && a.Start < b.End
	case b.Start == b.End:
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
