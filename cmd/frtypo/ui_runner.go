package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"frtypo/internal/driver"
	"frtypo/internal/engine"
	"frtypo/internal/ui"
)

type runOutcome struct {
	outcome *driver.Outcome
	err     error
}

// runWithUI runs the driver in a goroutine and renders its progress events.
func runWithUI(ctx context.Context, title string, eng *engine.Engine, paths []string, opts driver.Options) (*driver.Outcome, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		out, err := driver.Run(ctx, eng, paths, runOpts)
		outcomeCh <- runOutcome{outcome: out, err: err}
		close(events)
	}()

	base := opts.BaseDir
	if base == "" {
		base = "."
	}
	model := ui.NewProgressModel(title, driver.DisplayPaths(paths, base), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcome, uiErr
	}
	return outcome.outcome, outcome.err
}
