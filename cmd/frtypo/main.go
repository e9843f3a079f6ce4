package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"frtypo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "frtypo",
	Short: "French typography checker and fixer for Markdown",
	Long: `frtypo applies French typographic conventions to Markdown documents:
no-break spaces, angled quotes, dashes, ellipses, units, ordinals, casing and
diacritics on capitals. Code, math, HTML and front matter are left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFindings сигнализирует код выхода 1 без сообщения об ошибке.
var errFindings = errors.New("findings reported")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lexiconCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "configuration file (default: nearest frtypo.toml)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	os.Exit(exitCode(rootCmd.Execute()))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "frtypo: %v\n", err)
		return 2
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for f and configures fatih/color accordingly.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var on bool
	switch mode {
	case "on":
		on = true
	case "off":
		on = false
	case "auto", "":
		on = isTerminal(f)
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	color.NoColor = !on
	return on, nil
}
