// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"viewmd/internal/render"
	"viewmd/internal/sse"
	"viewmd/internal/storage"
	"viewmd/internal/watch"
	"viewmd/internal/web"
)

// Version is the viewmd release version.
const Version = "0.2.0"

// Run starts the application with the given options and blocks until the
// context is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{stdout: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured logs on stderr; stdout carries the banner.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.Level(),
	}))
	slog.SetDefault(logger)

	store, err := storage.NewRoot(cfg.Root.Path)
	if err != nil {
		return fmt.Errorf("open serving root: %w", err)
	}

	pages, err := render.New(render.Config{
		LiveReload: cfg.Reload.Enabled,
		EventsPath: web.EventsPath,
	})
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("root", store.Dir()),
		slog.Bool("reload", cfg.Reload.Enabled),
		slog.String("log_level", cfg.App.LogLevel))

	// SSE broker, only when live reload is on.
	var broker *sse.Broker
	var events http.Handler
	if cfg.Reload.Enabled {
		broker = sse.NewBroker(cfg.Reload.Debounce())
		defer broker.Close()
		events = broker
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", web.NewRouter(web.NewHandler(store, pages), events))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	// Bind before the banner so a port already in use fails plainly.
	ln, err := net.Listen("tcp", cfg.App.HTTP.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.App.HTTP.Address(), err)
	}

	printBanner(app.stdout, cfg, store.Dir())

	// Shutdown signals cancel the group context, which unwinds the watcher
	// and triggers the server shutdown below.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	if broker != nil {
		g.Go(func() error {
			err := watch.Watch(gCtx, store.Dir(), logger, func(kind, path string) {
				broker.PublishFileEvent(kind, path)
			})
			if err != nil {
				// Browsing works without reload; don't take the server down.
				logger.Warn("live reload unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// printBanner writes the startup summary in the style viewmd has always
// used.
func printBanner(w io.Writer, cfg *Config, root string) {
	rule := strings.Repeat("=", 60)
	reload := "off"
	if cfg.Reload.Enabled {
		reload = "on"
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "viewmd v%s\n", Version)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Serving: %s\n", root)
	fmt.Fprintf(w, "Server:  %s\n", bannerURL(cfg))
	fmt.Fprintln(w, "Features:")
	fmt.Fprintln(w, "  - Markdown rendering (.md, .markdown)")
	fmt.Fprintln(w, "  - Text file viewer")
	fmt.Fprintln(w, "  - Directory browsing")
	fmt.Fprintf(w, "  - Live reload (%s)\n", reload)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
}

// bannerURL is the address a browser should open. Loopback and wildcard
// hosts display as localhost.
func bannerURL(cfg *Config) string {
	host := cfg.App.HTTP.Host
	switch host {
	case "127.0.0.1", "0.0.0.0", "::", "::1":
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.App.HTTP.Port)
}
