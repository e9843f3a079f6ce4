package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"frtypo/internal/config"
	"frtypo/internal/diagfmt"
	"frtypo/internal/driver"
	"frtypo/internal/engine"
	"frtypo/internal/lexicon"
	"frtypo/internal/observ"
	"frtypo/internal/report"
	"frtypo/internal/trace"
	"frtypo/internal/version"
)

type runKind uint8

const (
	runCheck runKind = iota
	runFix
)

func (k runKind) String() string {
	if k == runFix {
		return "fix"
	}
	return "check"
}

// addRunFlags registers the flags shared by check and fix.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "short", "output format (short|pretty|json|sarif)")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	f.Bool("visible-spaces", false, "print no-break spaces as ⍽ and narrow ones as ·")
	f.Int("jobs", 0, "max parallel documents (0=auto)")
	f.Bool("cache", false, "skip documents already known to be clean")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.Bool("summary", false, "print per-file and per-category counts")
}

type runFlags struct {
	format   diagfmt.Format
	pathMode diagfmt.PathMode
	visible  bool
	jobs     int
	cache    bool
	ui       uiMode
	summary  bool
	quiet    bool
	timings  bool
}

func readRunFlags(cmd *cobra.Command) (runFlags, error) {
	var rf runFlags
	f := cmd.Flags()

	formatStr, err := f.GetString("format")
	if err != nil {
		return rf, fmt.Errorf("failed to get format flag: %w", err)
	}
	if rf.format, err = diagfmt.ParseFormat(formatStr); err != nil {
		return rf, err
	}
	pathStr, err := f.GetString("path-mode")
	if err != nil {
		return rf, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if rf.pathMode, err = diagfmt.ParsePathMode(pathStr); err != nil {
		return rf, err
	}
	if rf.visible, err = f.GetBool("visible-spaces"); err != nil {
		return rf, fmt.Errorf("failed to get visible-spaces flag: %w", err)
	}
	if rf.jobs, err = f.GetInt("jobs"); err != nil {
		return rf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if rf.cache, err = f.GetBool("cache"); err != nil {
		return rf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return rf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if rf.ui, err = readUIMode(uiStr); err != nil {
		return rf, err
	}
	if rf.summary, err = f.GetBool("summary"); err != nil {
		return rf, fmt.Errorf("failed to get summary flag: %w", err)
	}
	if rf.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return rf, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if rf.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return rf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return rf, nil
}

// loadConfig reads --config, or discovers frtypo.toml from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, path, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", err
	}
	return config.Discover(wd)
}

// runDocuments is the body of check and fix: it builds the engine, runs the
// driver, prints records and maps the outcome to an exit status.
func runDocuments(cmd *cobra.Command, args []string, kind runKind, adjust func(config.Config) config.Config) error {
	rf, err := readRunFlags(cmd)
	if err != nil {
		return err
	}
	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiles()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	colorOn, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if adjust != nil {
		cfg = adjust(cfg)
	}

	ctx := cmd.Context()
	runSpan := trace.Begin(trace.FromContext(ctx), trace.ScopeRun, kind.String(), 0)
	if cfgPath != "" {
		runSpan.WithExtra("config", cfgPath)
	}
	ctx = trace.WithSpan(ctx, runSpan)

	var timer *observ.Timer
	if rf.timings {
		timer = observ.NewTimer()
	}

	lexIdx := -1
	if timer != nil {
		lexIdx = timer.Begin("lexicon")
	}
	lex, err := lexicon.Open(cfg.LexiconPath())
	if err != nil {
		runSpan.End("lexicon error")
		return fmt.Errorf("lexicon: %w", err)
	}
	if timer != nil {
		timer.End(lexIdx, fmt.Sprintf("%d words", lex.Words()))
	}

	eng, err := engine.New(cfg, lex)
	if err != nil {
		runSpan.End("engine error")
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := driver.Expand(args)
	if err != nil {
		runSpan.End("discovery error")
		return err
	}
	if len(paths) == 0 {
		runSpan.End("no documents")
		if !rf.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no Markdown documents found")
		}
		return nil
	}

	opts := driver.Options{
		Jobs:          rf.jobs,
		Write:         kind == runFix,
		LexiconDigest: lex.Digest(),
		Timer:         timer,
	}
	if rf.cache {
		dir, err := driver.CacheDir("frtypo")
		if err == nil {
			opts.Cache, err = driver.OpenCache(dir)
		}
		if err != nil && !rf.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
		}
	}

	var outcome *driver.Outcome
	if !rf.quiet && shouldUseTUI(rf.ui, len(paths)) {
		outcome, err = runWithUI(ctx, "frtypo "+kind.String(), eng, paths, opts)
	} else {
		outcome, err = driver.Run(ctx, eng, paths, opts)
	}
	if err != nil {
		runSpan.End("cancelled")
		return err
	}
	runSpan.End(fmt.Sprintf("%d documents", len(paths)))

	for _, fr := range outcome.Errors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fr.Display, fr.Err)
	}

	summary := report.NewSummary()
	written := 0
	for _, fr := range outcome.Files {
		if fr.Err != nil {
			continue
		}
		summary.Add(fr.Result)
		if fr.Written {
			written++
		}
	}

	if err := printRecords(cmd.OutOrStdout(), outcome, rf, kind, colorOn); err != nil {
		return err
	}
	textual := rf.format == diagfmt.FormatShort || rf.format == diagfmt.FormatPretty
	if textual && !rf.quiet && (rf.summary || cfg.Summary()) {
		if err := summary.Write(cmd.OutOrStdout(), report.Options{Color: colorOn}); err != nil {
			return err
		}
	}
	if kind == runFix && !rf.quiet && written > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d of %d documents\n", written, len(paths))
	}
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if summary.HasFailures() {
		dumpTraceRing(cmd)
	}

	if n := len(outcome.Errors()); n > 0 {
		return fmt.Errorf("%d of %d documents could not be processed", n, len(paths))
	}
	switch kind {
	case runCheck:
		if t := summary.Total(); t.Warned+t.Failed > 0 {
			return errFindings
		}
	case runFix:
		if summary.HasWarnings() || summary.HasFailures() {
			return errFindings
		}
	}
	return nil
}

func printRecords(w io.Writer, outcome *driver.Outcome, rf runFlags, kind runKind, colorOn bool) error {
	bag := outcome.Bag()
	switch rf.format {
	case diagfmt.FormatPretty:
		return diagfmt.Pretty(w, bag, outcome.FileSet, diagfmt.TextOpts{
			Color:    colorOn,
			PathMode: rf.pathMode,
			Visible:  true,
			Fixes:    kind == runFix && !rf.quiet,
		})
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, bag, outcome.FileSet, diagfmt.JSONOpts{PathMode: rf.pathMode})
	case diagfmt.FormatSarif:
		return diagfmt.Sarif(w, bag, outcome.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "frtypo",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		return diagfmt.Short(w, bag, outcome.FileSet, diagfmt.TextOpts{
			Color:    colorOn,
			PathMode: rf.pathMode,
			Visible:  rf.visible,
			Fixes:    kind == runFix && !rf.quiet,
		})
	}
}
