package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bignum/internal/primesearch"
	"bignum/internal/ui"
)

type searchOutcome struct {
	results []primesearch.Result
	err     error
}

// shouldUseTUI reports whether the progress view should render on out.
func shouldUseTUI(mode uiMode, out *os.File) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

// runSearchWithUI runs the search in the background while the progress
// view follows its events. Quitting the view cancels the search.
func runSearchWithUI(ctx context.Context, title string, req primesearch.Request) ([]primesearch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan primesearch.Event, 256)
	outcomeCh := make(chan searchOutcome, 1)
	go func() {
		req.Sink = primesearch.ChannelSink{Ch: events}
		res, err := primesearch.Run(ctx, req)
		outcomeCh <- searchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewSearchModel(title, req.Count, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// A view closed early (ctrl+c) stops the search; after a normal finish
	// this is a no-op.
	cancel()
	// Drain so a blocked sink cannot keep the search from finishing.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err == nil && uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
