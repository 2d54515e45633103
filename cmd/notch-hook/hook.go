package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/btouchard/notch-hook/internal/config"
	"github.com/btouchard/notch-hook/internal/dispatch"
	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
	"github.com/btouchard/notch-hook/internal/preview"
)

func newHookCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Process one hook event read from stdin (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHook(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func (a *app) runHook(ctx context.Context, in io.Reader) error {
	ev, err := hook.Decode(in)
	if err != nil {
		slog.Error("failed to decode hook event", "error", err)
		return err
	}

	rt, err := config.NewRuntime(a.cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(rt.PreviewDir, 0755); err != nil {
		return fmt.Errorf("creating preview dir: %w", err)
	}

	deps := &dispatch.Deps{
		Project:  rt.Project,
		Composer: notify.NewComposer(a.cfg.Source, rt.Project.Name, rt.Project.Root, rt.StartedAt),
		Previews: preview.NewGenerator(rt.PreviewDir),
		Hub:      notify.NewHub(notify.NewSocketNotifier(rt.SocketPath)),
	}

	if db := a.openHistory(); db != nil {
		defer func() { _ = db.Close() }()
		deps.History = db

		if ev.Kind == hook.KindSessionStart {
			retention := time.Duration(a.cfg.History.RetentionDays) * 24 * time.Hour
			if n, err := db.Cleanup(retention); err != nil {
				slog.Warn("history cleanup failed", "error", err)
			} else if n > 0 {
				slog.Info("history cleaned up", "removed", n)
			}
		}
	}

	dispatch.NewDispatcher(deps).Handle(ctx, ev)
	return nil
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		action   string
		filePath string
		oldText  string
		newText  string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Generate a preview diff and print the artifact path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if action != "preview" {
				slog.Warn("unknown diff action", "action", action)
				return nil
			}

			rt, err := config.NewRuntime(a.cfg)
			if err != nil {
				return err
			}

			var oldPtr, newPtr *string
			if cmd.Flags().Changed("old-text") {
				oldPtr = &oldText
			}
			if cmd.Flags().Changed("new-text") {
				newPtr = &newText
			}

			// Absolute paths are used as given, even when the file does not exist yet.
			path := filePath
			if !filepath.IsAbs(path) {
				path = rt.Project.Resolve(path)
			}
			res, err := preview.NewGenerator(rt.PreviewDir).Generate(path, oldPtr, newPtr)
			if err != nil {
				return fmt.Errorf("generating preview: %w", err)
			}

			slog.Info("generated preview diff",
				"path", path,
				"added", res.Stats.Added,
				"removed", res.Stats.Removed)
			fmt.Fprintln(cmd.OutOrStdout(), res.DiffPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&action, "action", "", "diff action (preview)")
	flags.StringVar(&filePath, "file-path", "", "file to preview")
	flags.StringVar(&oldText, "old-text", "", "text to replace (first occurrence)")
	flags.StringVar(&newText, "new-text", "", "replacement text, or the whole new content without --old-text")
	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("file-path")

	return cmd
}
