package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/tui/listen"
)

// runListenTUIFunc runs the listening view, allowing it to be mocked in tests.
var runListenTUIFunc = runListenTUI

// runListenTUI shows the listening view until the session ends. The view
// displays the outcome itself, so a failed session is returned as
// ReportedError.
func runListenTUI(ctx context.Context, lang domain.Language, run listen.RunFunc) error {
	model := listen.New(ctx, lang, run)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run listen view: %w", err)
	}

	if _, err := model.Result(); err != nil {
		return &ReportedError{Err: err}
	}
	return nil
}
