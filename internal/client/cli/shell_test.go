package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/fakeapi"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type shell struct {
	*App
	srv *httptest.Server
	buf *bytes.Buffer
}

// newShell wires an App to a fresh in-memory backend and state database.
// input holds the answers to interactive prompts, one per line.
func newShell(t *testing.T, input string) *shell {
	t.Helper()

	backend, err := fakeapi.New(fakeapi.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.APIURL = srv.URL
	cfg.RequestTimeout = 5 * time.Second
	cfg.OnlineCheckInterval = time.Hour

	buf := &bytes.Buffer{}
	a := newApp(&cfg, db, logging.Nop(), strings.NewReader(input), buf)
	return &shell{App: a, srv: srv, buf: buf}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// run executes a command and returns what it printed.
func (s *shell) run(t *testing.T, line string) (string, error) {
	t.Helper()
	s.buf.Reset()
	parts := strings.Fields(line)
	err := s.Exec(context.Background(), parts[0], parts[1:])
	return s.buf.String(), err
}

func (s *shell) mustRun(t *testing.T, line string) string {
	t.Helper()
	out, err := s.run(t, line)
	require.NoError(t, err, line)
	return out
}

func TestShell_BrowseCatalogue(t *testing.T) {
	s := newShell(t, "")

	out := s.mustRun(t, "products")
	assert.Contains(t, out, "Classic Tee")
	assert.Contains(t, out, "Canvas Tote")

	out = s.mustRun(t, "products 1 shoes")
	assert.Contains(t, out, "Trail Runner")
	assert.NotContains(t, out, "Classic Tee")

	out = s.mustRun(t, "search tote")
	assert.Contains(t, out, "Canvas Tote")
	assert.NotContains(t, out, "Day Backpack")

	out = s.mustRun(t, "product prod-runner")
	assert.Contains(t, out, "Trail Runner (prod-runner)")
	assert.Contains(t, out, "Price: 89.99")
	assert.Contains(t, out, "Sizes: 42, 43, 44")
	assert.Contains(t, out, "Category: Shoes")

	out = s.mustRun(t, "product prod-tote")
	assert.Contains(t, out, "Out of stock")

	out = s.mustRun(t, "categories")
	assert.Contains(t, out, "Shirts")
	assert.Contains(t, out, "Bags")

	_, err := s.run(t, "product nope")
	assert.Error(t, err)

	_, err = s.run(t, "products zero")
	assert.Error(t, err)

	_, err = s.run(t, "product")
	assert.ErrorIs(t, err, errUsage)
	assert.EqualError(t, err, "usage: product <id>")
}

func TestShell_SessionCommandsNeedLogin(t *testing.T) {
	s := newShell(t, "")

	for _, cmd := range []string{"checkout", "orders", "order o-1", "cancel o-1", "logout", "refresh", "profile"} {
		_, err := s.run(t, cmd)
		assert.ErrorIs(t, err, errLoginRequired, cmd)
	}

	_, err := s.run(t, "teleport")
	assert.ErrorIs(t, err, errUnknownCommand)

	out := s.mustRun(t, "whoami")
	assert.Equal(t, "Not signed in\n", out)
}

func TestShell_GuestCartMergedOnLogin(t *testing.T) {
	s := newShell(t, fakeapi.UserEmail+"\n")
	stubPassword(t, fakeapi.UserPassword)
	ctx := context.Background()

	assert.Contains(t, s.mustRun(t, "add prod-runner 2 42"), "Added to your guest cart")
	s.mustRun(t, "add prod-tote")

	out := s.mustRun(t, "cart")
	assert.Contains(t, out, "Trail Runner")
	assert.Contains(t, out, "subtotal 193.98")
	assert.Contains(t, out, "Log in to check out")

	out = s.mustRun(t, "login")
	assert.Contains(t, out, "Welcome back, Sample Shopper!")
	assert.Equal(t, ModeOnline, s.Mode())

	out = s.mustRun(t, "cart")
	assert.Contains(t, out, "Trail Runner")
	assert.Contains(t, out, "179.98")
	assert.NotContains(t, out, "Canvas Tote")
	assert.NotContains(t, out, "Log in to check out")

	// the out-of-stock line stays behind in the guest cart
	left, err := guestcart.NewSQLiteRepository(s.db).List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "prod-tote", left[0].ProductID)

	out = s.mustRun(t, "product prod-runner")
	assert.Contains(t, out, "In your cart")
}

func TestShell_SignedInCartOperations(t *testing.T) {
	s := newShell(t, fakeapi.UserEmail+"\n")
	stubPassword(t, fakeapi.UserPassword)

	s.mustRun(t, "login")
	s.mustRun(t, "add prod-classic-tee 1 M white")
	s.mustRun(t, "add prod-backpack")

	out := s.mustRun(t, "cart")
	assert.Contains(t, out, "M/white")
	assert.Contains(t, out, "2 item(s), subtotal 79.40")

	s.mustRun(t, "qty prod-backpack 3")
	assert.Contains(t, s.mustRun(t, "refresh"), "4 item(s), subtotal 198.40")

	_, err := s.run(t, "qty prod-boot-x 0")
	assert.Error(t, err)

	_, err = s.run(t, "add prod-boot 9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not enough stock available")
	assert.NotContains(t, s.mustRun(t, "cart"), "Leather Boot")

	s.mustRun(t, "remove prod-classic-tee")
	out = s.mustRun(t, "cart")
	assert.NotContains(t, out, "Classic Tee")
	assert.Contains(t, out, "Day Backpack")

	s.mustRun(t, "clear")
	assert.Equal(t, "Your cart is empty\n", s.mustRun(t, "cart"))
}

func TestShell_CheckoutPayAndCancel(t *testing.T) {
	address := []string{"", "1 Main St", "Riga", "LV-1010", "Latvia", ""}
	input := strings.Join([]string{fakeapi.UserEmail},
		"\n") + "\n" +
		strings.Join(append(append([]string{}, address...), ""), "\n") + "\n" + // card
		strings.Join(append(append([]string{}, address...), "cod"), "\n") + "\n"
	s := newShell(t, input)
	stubPassword(t, fakeapi.UserPassword)
	ctx := context.Background()

	s.mustRun(t, "login")

	_, err := s.run(t, "checkout")
	assert.Error(t, err, "empty cart")

	s.mustRun(t, "add prod-runner")
	out := s.mustRun(t, "checkout")
	assert.Contains(t, out, "Checking out 1 item(s), subtotal 89.99")
	assert.Contains(t, out, "Full name (Sample Shopper)")
	assert.Contains(t, out, "placed, total 89.99")
	assert.Contains(t, out, "Payment confirmed")
	assert.Equal(t, "Your cart is empty\n", s.mustRun(t, "cart"))

	s.mustRun(t, "add prod-backpack 2")
	out = s.mustRun(t, "checkout")
	assert.Contains(t, out, "placed, total 119.00")
	assert.NotContains(t, out, "Payment confirmed")

	list, err := s.orders.MyOrders(ctx, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)

	var paid, cod models.Order
	for _, o := range list.Orders {
		if o.IsPaid {
			paid = o
		} else {
			cod = o
		}
	}
	require.NotEmpty(t, paid.ID)
	require.NotEmpty(t, cod.ID)

	out = s.mustRun(t, "orders")
	assert.Contains(t, out, paid.ID)
	assert.Contains(t, out, cod.ID)

	out = s.mustRun(t, "order "+paid.ID)
	assert.Contains(t, out, "processing, card, paid")
	assert.Contains(t, out, "Ship to: Sample Shopper, 1 Main St, Riga LV-1010 Latvia")

	_, err = s.run(t, "cancel "+paid.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only pending orders can be cancelled")

	out = s.mustRun(t, "cancel "+cod.ID)
	assert.Contains(t, out, "is now cancelled")
}

func TestShell_CheckoutRequiresAddress(t *testing.T) {
	s := newShell(t, fakeapi.UserEmail+"\n"+"\n\n")
	stubPassword(t, fakeapi.UserPassword)

	s.mustRun(t, "login")
	s.mustRun(t, "add prod-runner")

	_, err := s.run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Street is required")
}

func TestShell_ProfileAndLogout(t *testing.T) {
	s := newShell(t, fakeapi.UserEmail+"\n")
	stubPassword(t, fakeapi.UserPassword)

	s.mustRun(t, "login")
	out := s.mustRun(t, "whoami")
	assert.Contains(t, out, "Sample Shopper <"+fakeapi.UserEmail+">")
	assert.Contains(t, out, "role:  user")

	out = s.mustRun(t, "profile phone 555-0100")
	assert.Contains(t, out, "phone: 555-0100")

	out = s.mustRun(t, "profile name Sam Shopper")
	assert.Contains(t, out, "Sam Shopper <")
	assert.Contains(t, s.getStatus(context.Background()), fakeapi.UserEmail)

	pic := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(pic, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	assert.Contains(t, s.mustRun(t, "avatar "+pic), "Avatar updated: ")

	_, err := s.run(t, "avatar "+filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	assert.Equal(t, "Signed out\n", s.mustRun(t, "logout"))
	assert.Equal(t, "Not signed in\n", s.mustRun(t, "whoami"))
}

func TestShell_RegisterAndBadLogin(t *testing.T) {
	s := newShell(t, "Nora New\nnora@example.com\n\n"+fakeapi.UserEmail+"\n")
	stubPassword(t, "secret99")

	out := s.mustRun(t, "register")
	assert.Contains(t, out, "Welcome, Nora New!")
	s.mustRun(t, "logout")

	_, err := s.run(t, "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
}

func TestShell_ProbeSwitchesMode(t *testing.T) {
	s := newShell(t, "")
	ctx := context.Background()

	s.probe(ctx)
	assert.Equal(t, ModeOnline, s.Mode())

	s.srv.Close()
	s.buf.Reset()
	s.probe(ctx)
	assert.Equal(t, ModeOffline, s.Mode())
	assert.Equal(t, "Switched to offline mode\n", s.buf.String())

	s.buf.Reset()
	s.probe(ctx)
	assert.Empty(t, s.buf.String())
	assert.Equal(t, "(offline)", s.getStatus(ctx))
}

func TestShell_RunLoop(t *testing.T) {
	lines := capturePrints(t)
	s := newShell(t, "help\ncategories\nexit\n")

	s.Run(context.Background())

	assert.Contains(t, s.buf.String(), "Welcome to the storefront shell")
	assert.Contains(t, s.buf.String(), "Shoes")
	joined := strings.Join(*lines, "\n")
	assert.Contains(t, joined, "shop (online)> ")
	assert.Contains(t, joined, "Available commands:")
	assert.Contains(t, joined, "Bye!")
}
