package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mev/internal/logger"
	"github.com/nikbrunner/mev/internal/query"
	"github.com/nikbrunner/mev/internal/tui"
)

// runTUI opens the interactive search. The terminal belongs to the TUI, so
// logs go to the configured file.
func (c *cli) runTUI(keyword string) error {
	logFile, err := logger.OpenFile(c.cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	lg := logger.New(logger.Config{
		Level:  logger.Level(c.cfg.Log.Level),
		Output: logFile,
		JSON:   c.cfg.Log.JSON,
		Prefix: "tui",
	})

	client, err := c.client(lg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.AppParams{
		Fetcher: client,
		Auth:    client,
		Query:   query.ForKeyword(keyword),
		Logger:  lg,
	})

	lg.Info("starting", "api", c.cfg.API.BaseURL, "keyword", keyword)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
