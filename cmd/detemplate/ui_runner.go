package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"detemplate/internal/buildpipeline"
	"detemplate/internal/driver"
	"detemplate/internal/templatesimplifier"
	"detemplate/internal/ui"
)

type simplifyOutcome struct {
	result driver.SimplifyResult
	err    error
}

// runSimplifyWithUI drives driver.Simplify on a goroutine while a
// bubbletea progress model renders the five pipeline stages as they
// complete.
func runSimplifyWithUI(ctx context.Context, filePath string, maxDiagnostics int, settings templatesimplifier.Settings) (driver.SimplifyResult, error) {
	events := make(chan buildpipeline.Event, 32)
	outcomeCh := make(chan simplifyOutcome, 1)

	go func() {
		res, err := driver.Simplify(filePath, maxDiagnostics, settings, buildpipeline.ChannelSink{Ch: events})
		outcomeCh <- simplifyOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("simplifying "+filePath, []string{filePath}, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
