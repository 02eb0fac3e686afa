package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/app"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/update"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "focusboard",
		Short:        "Pomodoro focus dashboard with hour planner, habits and webhook export",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading FOCUSBOARD_* variables")

	cmd.AddCommand(
		newShareCmd(opts),
		newHistoryCmd(opts),
		newClearHistoryCmd(opts),
		newTimerCmd(opts),
		newDaemonCmd(opts),
		newStateCmd(opts),
	)
	return cmd
}

func loadConfig(opts *rootOptions) (config.RuntimeConfig, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return config.RuntimeConfig{}, err
	}
	return config.Load()
}

// openCLI builds the app for a non-interactive command, logging to stderr.
func openCLI(ctx context.Context, opts *rootOptions) (*app.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return app.New(ctx, cfg, app.Options{Logger: logger})
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logFile, err := app.OpenLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := app.NewLogger(cfg, logFile)
	slog.SetDefault(logger)

	a, err := app.New(ctx, cfg, app.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Error("close failed", "error", closeErr)
		}
	}()

	a.StartTimer()
	a.Exporter.Start()
	logger.Info("focusboard started", "db", cfg.DBPath, "settings", cfg.SettingsPath, "next_export", a.Exporter.NextRun())

	program := tea.NewProgram(update.NewModel(a.ModelDeps()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
