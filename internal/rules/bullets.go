package rules

import (
	"regexp"

	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

var bulletLine = regexp.MustCompile(`(?m)^[ \t]*([•◦‣▪●])[ \t]`)

type bullets struct {
	base
	marker string
}

// newBullets: with CSS bullet styling the item becomes a Markdown list item
// rendered with a dash; otherwise the dash is written as text.
func newBullets(cssBullets bool) *bullets {
	marker := "–"
	if cssBullets {
		marker = "-"
	}
	return &bullets{base: base{diag.RuleBullets}, marker: marker}
}

func (b *bullets) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, m := range bulletLine.FindAllStringSubmatchIndex(text, -1) {
		edits = append(edits, fix.Replace(text, m[2], m[3], b.marker, "list bullet"))
	}
	return edits
}
