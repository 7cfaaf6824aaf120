package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/auth"
	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Catalog is the read-only part of the backend the shell browses.
type Catalog interface {
	GetProducts(ctx context.Context, page models.PageRequest, f models.ProductFilter) api.Result[models.ProductList]
	GetProduct(ctx context.Context, id string) api.Result[models.Product]
	GetCategories(ctx context.Context) api.Result[[]models.Category]
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	catalog Catalog
	store   *cart.Store
	auth    services.AuthService
	carts   services.CartService
	orders  services.OrderService
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := storage.Open(ctx, c.StatePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	return newApp(c, db, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(in),
		out:    out,
	}

	session := auth.NewSession(db,
		auth.WithLogger(logger),
		auth.WithOnClear(a.onSignedOut),
	)
	client := api.New(c.APIURL, session,
		api.WithPrefix(c.APIPrefix),
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger),
	)

	a.catalog = client
	a.store = cart.New(client, cart.WithLogger(logger), cart.WithNotifier(a.toast))
	a.carts = services.NewCartService(client, session, a.store, guestcart.NewSQLiteRepository(db), logger)
	a.auth = services.NewAuthService(client, session, a.carts, a.store, logger)
	a.orders = services.NewOrderService(client, a.store, logger)
	return a
}

// onSignedOut drops signed-in state once the session is cleared.
func (a *App) onSignedOut(ctx context.Context) {
	if a.store != nil {
		a.store.Reset()
	}
}

// toast prints the confirmation of an optimistic cart operation. Failures
// come back to the REPL as errors and are printed there.
func (a *App) toast(ok bool, msg string) {
	if ok {
		fmt.Fprintln(a.out, msg)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.auth.CurrentUser(ctx)
	return ok
}

func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if u, ok := a.auth.CurrentUser(ctx); ok {
		s = u.Email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the connectivity watcher and the REPL and returns when the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.db.Close()
	defer func() { _ = logging.Sync(a.logger) }()

	fmt.Fprintln(a.out, "Welcome to the storefront shell (type 'help' for commands)")

	a.probe(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if a.isLoggedIn(ctx) {
		if err := a.carts.Refresh(ctx); err != nil {
			a.logger.Warn(ctx, "cart load failed", "error", err.Error())
		}
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
