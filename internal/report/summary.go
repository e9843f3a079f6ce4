// Package report aggregates the records of a run into per-file and
// per-category counts.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"frtypo/internal/diag"
	"frtypo/internal/engine"
)

// Counts splits records by severity.
type Counts struct {
	Fixed  int `json:"fixed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (c *Counts) add(sev diag.Severity) {
	switch sev {
	case diag.SevFix:
		c.Fixed++
	case diag.SevWarning:
		c.Warned++
	case diag.SevError:
		c.Failed++
	}
}

// Total returns the number of records counted.
func (c Counts) Total() int { return c.Fixed + c.Warned + c.Failed }

// FileSummary is the line of one document.
type FileSummary struct {
	Path string `json:"path"`
	Counts
}

// Summary accumulates results. Not safe for concurrent use: add results after
// the workers are done.
type Summary struct {
	files      []FileSummary
	categories map[string]*Counts
	total      Counts
	documents  int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{categories: make(map[string]*Counts)}
}

// Add counts the records of one document.
func (s *Summary) Add(res engine.Result) {
	s.documents++
	fs := FileSummary{Path: res.Path}
	for _, rec := range res.Records {
		fs.add(rec.Severity)
		s.total.add(rec.Severity)
		cat := rec.Code.ID()
		if s.categories[cat] == nil {
			s.categories[cat] = &Counts{}
		}
		s.categories[cat].add(rec.Severity)
	}
	if fs.Total() > 0 {
		s.files = append(s.files, fs)
	}
}

// Documents returns the number of documents added, with or without records.
func (s *Summary) Documents() int { return s.documents }

// Total returns the counts over every document.
func (s *Summary) Total() Counts { return s.total }

// HasWarnings reports findings left in the documents.
func (s *Summary) HasWarnings() bool { return s.total.Warned > 0 }

// HasFailures reports rule failures.
func (s *Summary) HasFailures() bool { return s.total.Failed > 0 }

// Files returns the documents with at least one record, sorted by path.
func (s *Summary) Files() []FileSummary {
	out := append([]FileSummary(nil), s.files...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Category returns the counts of one category ("structure" for structural records).
func (s *Summary) Category(id string) Counts {
	if c := s.categories[id]; c != nil {
		return *c
	}
	return Counts{}
}

// categoryOrder: rule order first, then structure.
func (s *Summary) categoryOrder() []string {
	var out []string
	for _, code := range diag.Categories() {
		if _, ok := s.categories[code.ID()]; ok {
			out = append(out, code.ID())
		}
	}
	if _, ok := s.categories[diag.StructUnterminated.ID()]; ok {
		out = append(out, diag.StructUnterminated.ID())
	}
	return out
}

// Options configures Write.
type Options struct {
	Color bool
}

// Write prints the per-file table, then the per-category table.
func (s *Summary) Write(w io.Writer, opts Options) error {
	head := color.New(color.Bold)
	fixed := color.New(color.FgGreen)
	warned := color.New(color.FgYellow)
	failed := color.New(color.FgRed)
	for _, c := range []*color.Color{head, fixed, warned, failed} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	if s.total.Total() == 0 {
		fmt.Fprintf(&sb, "%d documents, nothing to report\n", s.documents)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	files := s.Files()
	totalLabel := fmt.Sprintf("total (%d documents)", s.documents)
	width := max(runewidth.StringWidth("document"), runewidth.StringWidth(totalLabel))
	for _, f := range files {
		width = max(width, runewidth.StringWidth(f.Path))
	}
	for _, id := range s.categoryOrder() {
		width = max(width, runewidth.StringWidth(id))
	}

	row := func(label string, c Counts) {
		sb.WriteString(runewidth.FillRight(label, width))
		sb.WriteString("  ")
		sb.WriteString(cell(fixed, c.Fixed))
		sb.WriteString(cell(warned, c.Warned))
		sb.WriteString(cell(failed, c.Failed))
		sb.WriteString("\n")
	}
	header := func(label string) {
		sb.WriteString(head.Sprint(runewidth.FillRight(label, width)))
		sb.WriteString("  ")
		sb.WriteString(head.Sprintf("%8s%8s%8s", "fixed", "warned", "failed"))
		sb.WriteString("\n")
	}

	header("document")
	for _, f := range files {
		row(f.Path, f.Counts)
	}
	row(totalLabel, s.total)

	sb.WriteString("\n")
	header("category")
	for _, id := range s.categoryOrder() {
		row(id, *s.categories[id])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// cell right-aligns n in 8 columns and colors it when non-zero.
func cell(c *color.Color, n int) string {
	s := fmt.Sprintf("%8d", n)
	if n == 0 {
		return s
	}
	return c.Sprint(s)
}
