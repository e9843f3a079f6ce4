package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

// Pretty prints each record as
//
//	<path>:<line>:<col>: <sev> <category>: <message>
//
// followed by the source line with a caret under the column and the change as
// a -/+ pair. The line comes from the loaded file: rules never add or remove
// line breaks, so line numbers stay valid across rules.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) error {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevFix:     color.New(color.FgGreen, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevError:   color.New(color.FgRed, color.Bold),
	}
	minus := color.New(color.FgRed)
	plus := color.New(color.FgGreen)
	for _, c := range []*color.Color{sevColor[diag.SevFix], sevColor[diag.SevWarning], sevColor[diag.SevError], minus, plus} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	for _, rec := range bag.Items() {
		if !shown(rec, opts) {
			continue
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n",
			pathOf(fs, rec, opts.PathMode), rec.Pos.Line, rec.Pos.Col,
			sevColor[rec.Severity].Sprint(rec.Severity.String()), rec.Code.ID(), rec.Message)

		if line, ok := sourceLine(fs, rec); ok {
			if opts.Visible {
				line = VisibleSpaces(line)
			}
			fmt.Fprintf(&sb, "  | %s\n", line)
			fmt.Fprintf(&sb, "  | %s^\n", strings.Repeat(" ", caretOffset(line, int(rec.Pos.Col))))
		}
		if rec.Before != "" || rec.After != "" {
			before, after := rec.Before, rec.After
			if opts.Visible {
				before, after = VisibleSpaces(before), VisibleSpaces(after)
			}
			fmt.Fprintf(&sb, "  %s\n  %s\n", minus.Sprint("- "+before), plus.Sprint("+ "+after))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func sourceLine(fs *source.FileSet, rec diag.Record) (string, bool) {
	if fs == nil || rec.Pos.Line == 0 || int(rec.Primary.File) >= fs.Len() {
		return "", false
	}
	line := fs.Get(rec.Primary.File).GetLine(rec.Pos.Line)
	return strings.ReplaceAll(line, "\t", " "), line != ""
}

// caretOffset converts a 1-based rune column into display cells, so wide
// runes before the caret keep it aligned.
func caretOffset(line string, col int) int {
	cells, n := 0, 1
	for _, r := range line {
		if n >= col {
			break
		}
		cells += runewidth.RuneWidth(r)
		n++
	}
	return cells
}
