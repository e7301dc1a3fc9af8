package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tdx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive search-and-pick flow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.applyConfig(cmd.String("config"))

	svc, err := r.authenticatedService(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, svc)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
