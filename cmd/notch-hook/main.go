package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/btouchard/notch-hook/internal/config"
	"github.com/btouchard/notch-hook/internal/store"
)

var version = "dev"

// app carries state shared by all subcommands once the configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logFile    io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notch-hook: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "notch-hook",
		Short: "Forward Claude Code hook events to the NotchNoti display",
		Long: "notch-hook reads one Claude Code hook event from stdin, turns it into a\n" +
			"notification and sends it to the NotchNoti display over its Unix socket.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHook(cmd.Context(), cmd.InOrStdin())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")

	root.AddCommand(
		newHookCmd(a),
		newDiffCmd(a),
		newHistoryCmd(a),
		newMCPCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		// Skips configuration loading.
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notch-hook %s\n", version)
		},
	}
}

func (a *app) setup() error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}
	a.cfg = cfg
	a.logFile = setupLogging(cfg.Log)
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogging logs JSON to stderr and, when configured, to a rotated file.
// stdout is left to command output.
func setupLogging(cfg config.LogConfig) io.Closer {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{
		slog.NewJSONHandler(os.Stderr, opts),
	}

	var closer io.Closer
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(rotated, opts))
		closer = rotated
	}

	slog.SetDefault(slog.New(slog.NewMultiHandler(handlers...)))
	return closer
}

// openHistory opens the history database. It returns nil when history is
// disabled or unavailable; callers carry on without it.
func (a *app) openHistory() *store.SQLiteStore {
	if !a.cfg.History.Enabled {
		return nil
	}
	db, err := store.NewSQLiteStore(a.cfg.History.Path)
	if err != nil {
		slog.Warn("notification history unavailable", "path", a.cfg.History.Path, "error", err)
		return nil
	}
	return db
}
