package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

// Short prints one line per record:
//
//	[fr-typo:<category>] <path>: "<before>" → "<after>"
//
// Records without a change (structural problems, rule failures) print their
// position and message instead.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) error {
	tag := color.New(color.FgCyan)
	arrow := color.New(color.FgGreen)
	failed := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{tag, arrow, failed} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, rec := range bag.Items() {
		if !shown(rec, opts) {
			continue
		}
		path := pathOf(fs, rec, opts.PathMode)
		head := tag.Sprintf("[fr-typo:%s]", rec.Code.ID())
		var err error
		switch {
		case rec.Severity == diag.SevError:
			_, err = fmt.Fprintf(w, "%s %s:%d:%d: %s\n", head, path, rec.Pos.Line, rec.Pos.Col, failed.Sprint(rec.Message))
		case rec.Before == "" && rec.After == "":
			_, err = fmt.Fprintf(w, "%s %s:%d:%d: %s\n", head, path, rec.Pos.Line, rec.Pos.Col, rec.Message)
		default:
			before, after := rec.Before, rec.After
			if opts.Visible {
				before, after = VisibleSpaces(before), VisibleSpaces(after)
			}
			_, err = fmt.Fprintf(w, "%s %s: \"%s\" %s \"%s\"\n", head, path, before, arrow.Sprint("→"), after)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
