// Package diagfmt renders records: short lines, a pretty form with the
// source line, JSON and SARIF.
package diagfmt

import "fmt"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths, shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected: auto|absolute|relative|basename)", s)
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Format selects the renderer used by the CLI.
type Format uint8

const (
	FormatShort Format = iota
	FormatPretty
	FormatJSON
	FormatSarif
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "short":
		return FormatShort, nil
	case "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSarif, nil
	}
	return FormatShort, fmt.Errorf("invalid format %q (expected: short|pretty|json|sarif)", s)
}

// TextOpts configures the short and pretty renderers.
type TextOpts struct {
	Color    bool
	PathMode PathMode
	// Visible replaces no-break spaces with printable marks.
	Visible bool
	// Fixes includes records of applied corrections; otherwise only findings are printed.
	Fixes bool
}

// JSONOpts configures JSON output of records.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
