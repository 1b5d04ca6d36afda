package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/qfill/internal/monitor"
	"github.com/desertthunder/qfill/internal/mpd"
)

// App assembles the router, the API, the websocket hub, and the monitor into
// one runnable web remote.
type App struct {
	addr    string
	router  *BasicRouter
	hub     *Hub
	monitor *monitor.Monitor
	logger  *log.Logger
}

// NewApp wires the full handler tree. refills may be nil when persistence is
// disabled.
func NewApp(addr string, client mpd.Controller, m *monitor.Monitor, refills RefillHistory, logger *log.Logger) *App {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger))

	hub := NewHub(logger)
	api := NewAPI(client, m, refills, logger)
	api.Register(router)
	router.Handler(hub)

	return &App{
		addr:    addr,
		router:  router,
		hub:     hub,
		monitor: m,
		logger:  logger,
	}
}

// Handler returns the assembled HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP and drives the monitor loop and the notification fan-out
// until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.monitor.Run(ctx)
	go a.hub.Run(ctx, a.monitor.Notifications())

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("web remote listening", "addr", a.addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
