package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/everyride/marchmagic/internal/engine"
	"github.com/everyride/marchmagic/internal/store"
	"github.com/everyride/marchmagic/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, db *store.DB, catalog *engine.Catalog, cfg util.Config, log *zap.Logger) error {
	m := initialModel(ctx, db, catalog, cfg, log)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
