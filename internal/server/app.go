// Package server wires configuration, logging and HTTP servers for the
// storefront processes: the page composition server and the in-memory
// backend used for development.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/fakeapi"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// WebHandler builds the page server.
func (app *App) WebHandler() http.Handler {
	client := api.New(app.config.APIURL, nil,
		api.WithPrefix(app.config.APIPrefix),
		api.WithTimeout(app.config.RequestTimeout),
		api.WithLogger(app.logger),
	)
	return web.New(client,
		web.WithCookie(app.config.CookieName, app.config.CookieSecure),
		web.WithLogger(app.logger),
	).Handler()
}

// FakeAPIHandler builds a freshly seeded in-memory backend.
func (app *App) FakeAPIHandler() (http.Handler, error) {
	s, err := fakeapi.New(
		fakeapi.WithSecret(app.config.SecretKey),
		fakeapi.WithTokenTTL(app.config.AccessTokenValidityDuration),
		fakeapi.WithLogger(app.logger),
	)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// RunWeb serves pages until ctx is done or a termination signal arrives.
func (app *App) RunWeb(ctx context.Context) error {
	return app.run(ctx, "web", app.config.ListenAddr, app.WebHandler())
}

// RunFakeAPI serves the in-memory backend until ctx is done or a
// termination signal arrives.
func (app *App) RunFakeAPI(ctx context.Context) error {
	h, err := app.FakeAPIHandler()
	if err != nil {
		return fmt.Errorf("fake backend init error: %w", err)
	}
	return app.run(ctx, "fakeapi", app.config.FakeAPIAddr, h)
}

func (app *App) run(ctx context.Context, name, addr string, h http.Handler) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer func() { _ = logging.Sync(app.logger) }()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{Addr: addr, Handler: h}
	errc := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "server", name, "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...", "server", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
