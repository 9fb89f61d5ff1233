package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flux/internal/driver"
	"flux/internal/ui"
)

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFormatWithUI drives a formatting run while rendering live per-file
// progress. The file list is collected up front so the view can show every
// file from the start.
func runFormatWithUI(ctx context.Context, title string, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.ListSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = events
		res, runErr := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- fmtOutcome{results: res, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
