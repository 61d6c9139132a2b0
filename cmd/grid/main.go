// Command grid edits the demo grids in the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/celleditors/internal/config"
	"github.com/JonMunkholm/celleditors/internal/core"
	"github.com/JonMunkholm/celleditors/internal/logging"
	"github.com/JonMunkholm/celleditors/internal/store"
	"github.com/JonMunkholm/celleditors/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// logFile receives the logs; the terminal belongs to the UI.
const logFile = "grid.log"

func main() {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}
	defer f.Close()
	logging.SetupTo(f, cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer st.Close()

	svc, err := core.NewService(ctx, st, cfg.Editor)
	if err != nil {
		fmt.Fprintln(os.Stderr, "start service:", err)
		os.Exit(1)
	}
	go svc.StartSessionSweeper(ctx)

	dir, err := os.Getwd()
	if err != nil {
		dir = os.TempDir()
	}

	slog.Info("grid client starting", "backend", store.Backend(st))
	if _, err := tea.NewProgram(tui.New(ctx, svc, dir), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
