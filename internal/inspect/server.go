// Package inspect serves a read-only local HTTP API over the notification
// history and the preview cache.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/btouchard/notch-hook/internal/format"
	"github.com/btouchard/notch-hook/internal/preview"
	"github.com/btouchard/notch-hook/internal/store"
)

const defaultLimit = 50

// History is the part of the store the API reads.
type History interface {
	GetNotification(id int64) (*store.NotificationRecord, error)
	ListNotifications(f store.NotificationFilter) ([]store.NotificationRecord, error)
}

// Server exposes History and the preview cache over HTTP.
type Server struct {
	// Token, when set, is required as a Bearer token on every route but /health.
	Token string

	history  History
	previews *preview.Generator
	version  string
}

// NewServer creates a Server. history may be nil when history is disabled.
func NewServer(history History, previews *preview.Generator, version string) *Server {
	return &Server{history: history, previews: previews, version: version}
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(securityHeaders)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.Token != "" {
			r.Use(bearerAuth(s.Token))
		}

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleListNotifications)
			r.Get("/{id}", s.handleGetNotification)
		})

		r.Route("/previews/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPreview)
			r.Get("/diff", s.handleGetPreviewDiff)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("inspect API is ready", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down inspect API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"history": s.history != nil,
	})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "notification history is disabled")
		return
	}

	q := r.URL.Query()
	filter := store.NotificationFilter{
		Project:       q.Get("project"),
		EventKind:     q.Get("event"),
		DangerousOnly: q.Get("dangerous") == "true",
		Limit:         parseIntDefault(q.Get("limit"), defaultLimit),
	}
	if since := q.Get("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondError(w, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		filter.Since = ts
	}

	records, err := s.history.ListNotifications(filter)
	if err != nil {
		slog.Error("listing notifications", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	items := make([]format.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, format.NewItem(rec))
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "notification history is disabled")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	rec, err := s.history.GetNotification(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "notification not found")
		return
	}
	respondJSON(w, http.StatusOK, format.NewItem(*rec))
}

func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	a, ok := s.loadPreview(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleGetPreviewDiff(w http.ResponseWriter, r *http.Request) {
	a, ok := s.loadPreview(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/x-diff; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(a.Diff))
}

func (s *Server) loadPreview(w http.ResponseWriter, r *http.Request) (*preview.Artifact, bool) {
	a, err := s.previews.LoadID(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, preview.ErrNoPreview):
		respondError(w, http.StatusNotFound, "no preview for this id")
		return nil, false
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return a, true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"status":  status,
		"message": msg,
	})
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return def
}
