package diagfmt

import (
	"strings"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

// pathOf formats the path of the file a record points to.
func pathOf(fs *source.FileSet, rec diag.Record, mode PathMode) string {
	if fs == nil || int(rec.Primary.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(rec.Primary.File)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

var visibleSpaces = strings.NewReplacer("\u00a0", "⍽", "\u202f", "·")

// VisibleSpaces replaces U+00A0 with ⍽ and U+202F with · so that the
// difference between before and after shows in a terminal.
func VisibleSpaces(s string) string {
	return visibleSpaces.Replace(s)
}

func shown(rec diag.Record, opts TextOpts) bool {
	return opts.Fixes || rec.Severity != diag.SevFix
}
