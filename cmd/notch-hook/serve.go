package main

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/btouchard/notch-hook/internal/config"
	"github.com/btouchard/notch-hook/internal/format"
	"github.com/btouchard/notch-hook/internal/inspect"
	notchmcp "github.com/btouchard/notch-hook/internal/mcp"
	"github.com/btouchard/notch-hook/internal/preview"
	"github.com/btouchard/notch-hook/internal/store"
)

var errHistoryDisabled = errors.New("notification history is disabled")

func newHistoryCmd(a *app) *cobra.Command {
	var (
		project    string
		event      string
		dangerous  bool
		limit      int
		formatFlag string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently sent notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db := a.openHistory()
			if db == nil {
				return errHistoryDisabled
			}
			defer func() { _ = db.Close() }()

			records, err := db.ListNotifications(store.NotificationFilter{
				Project:       project,
				EventKind:     event,
				DangerousOnly: dangerous,
				Limit:         limit,
			})
			if err != nil {
				return err
			}

			return format.WriteHistory(cmd.OutOrStdout(), records, !noHeader, strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&project, "project", "", "only show notifications of this project")
	flags.StringVar(&event, "event", "", "only show this hook event (e.g. pre_tool_use)")
	flags.BoolVar(&dangerous, "dangerous", false, "only show operations flagged as dangerous")
	flags.IntVar(&limit, "limit", 20, "maximum number of notifications (0 means no limit)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row")

	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve history and previews over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := config.NewRuntime(a.cfg)
			if err != nil {
				return err
			}

			deps := &notchmcp.Deps{
				Project:  rt.Project,
				Previews: preview.NewGenerator(rt.PreviewDir),
				Version:  version,
			}
			if db := a.openHistory(); db != nil {
				defer func() { _ = db.Close() }()
				deps.History = db
			}

			return server.ServeStdio(notchmcp.NewServer(deps))
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve history and previews over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := config.NewRuntime(a.cfg)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = net.JoinHostPort(a.cfg.Inspect.Host, strconv.Itoa(a.cfg.Inspect.Port))
			}

			var history inspect.History
			if db := a.openHistory(); db != nil {
				defer func() { _ = db.Close() }()
				history = db
			}

			srv := inspect.NewServer(history, preview.NewGenerator(rt.PreviewDir), version)
			srv.Token = a.cfg.Inspect.Token
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:9877)")

	return cmd
}
