// Package cart holds the optimistic cart cache of a signed-in user.
//
// Membership is tracked per product as a Visibility. Adds are shown as
// Pending before the backend answers and rolled back if it refuses;
// removes, quantity changes and clears are applied locally first and
// restored on failure.
//
// Refreshes coalesce: a RefreshCart issued while another is in flight only
// marks the store dirty, and the running refresher fetches again. A fetch
// that started before a local mutation is discarded and repeated instead of
// overwriting newer state.
//
// Reset starts a new session. Replies to calls issued before it are
// dropped without touching the cache.
package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/shopspring/decimal"
)

// Backend is the subset of *api.Client the store calls.
type Backend interface {
	GetCart(ctx context.Context) api.Result[models.Cart]
	AddToCart(ctx context.Context, in models.AddToCartInput) api.Result[models.Cart]
	UpdateCartItem(ctx context.Context, productID string, quantity int) api.Result[models.Cart]
	RemoveFromCart(ctx context.Context, productID string) api.Result[models.Cart]
	ClearCart(ctx context.Context) api.Result[models.Cart]
}

// Notifier receives the toasts of the *WithUI operations.
type Notifier func(ok bool, msg string)

const defaultMaxPasses = 3

type Store struct {
	backend   Backend
	logger    logging.Logger
	notify    Notifier
	maxPasses int

	mu       sync.Mutex
	items    []models.CartItem
	vis      map[string]Visibility
	inflight map[string]int // adds awaiting the backend, per product
	loading  bool
	dirty    bool
	version  uint64 // bumped by every local mutation
	session  uint64 // bumped by Reset
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// WithMaxPasses bounds the fetches one RefreshCart call performs.
func WithMaxPasses(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend:   b,
		logger:    logging.Nop(),
		notify:    func(bool, string) {},
		maxPasses: defaultMaxPasses,
		vis:       make(map[string]Visibility),
		inflight:  make(map[string]int),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "cart")
	return s
}

// AddItemLocally marks id Pending unless it is already in the cart.
func (s *Store) AddItemLocally(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vis[id]; !ok {
		s.vis[id] = Pending
		s.version++
	}
}

// IsProductInCart is true for Pending and Confirmed products.
func (s *Store) IsProductInCart(id string) bool {
	return s.State(id) != Absent
}

func (s *Store) State(id string) Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vis[id]
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot is a copy of the cached cart.
type Snapshot struct {
	Items    []models.CartItem
	Pending  []string
	Count    int
	Subtotal decimal.Decimal
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Cart{Items: slices.Clone(s.items)}
	snap := Snapshot{Items: c.Items, Count: c.Count(), Subtotal: c.Subtotal()}
	for id, v := range s.vis {
		if v == Pending {
			snap.Pending = append(snap.Pending, id)
		}
	}
	slices.Sort(snap.Pending)
	return snap
}

// Reset forgets everything and starts a new session. Called on login and
// logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.vis = make(map[string]Visibility)
	s.inflight = make(map[string]int)
	s.loading = false
	s.dirty = false
	s.version++
	s.session++
}

// RefreshCart fetches the cart and makes it the confirmed state. It returns
// nil immediately when another refresh is running; that refresh fetches
// once more before it finishes. When the cart keeps changing locally until
// the passes run out, it returns an error wrapping common.ErrorConflict.
func (s *Store) RefreshCart(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.dirty = true
		s.mu.Unlock()
		s.logger.Debug(ctx, "refresh coalesced")
		return nil
	}
	s.loading = true
	sess := s.session
	s.mu.Unlock()

	var err error
	for pass := 1; ; pass++ {
		s.mu.Lock()
		if s.session != sess {
			s.mu.Unlock()
			return nil
		}
		s.dirty = false
		ver := s.version
		s.mu.Unlock()

		res := s.backend.GetCart(ctx)

		s.mu.Lock()
		if s.session != sess {
			s.mu.Unlock()
			s.logger.Debug(ctx, "dropping cart of a previous session")
			return nil
		}
		stale := s.version != ver
		switch {
		case !res.Success:
			err = res.Err()
		case stale:
			s.logger.Debug(ctx, "discarding stale cart", "pass", pass)
			err = fmt.Errorf("cart changed during refresh: %w", common.ErrorConflict)
		default:
			err = nil
			s.applyLocked(res.Data.Items)
		}

		again := (s.dirty || stale) && pass < s.maxPasses && ctx.Err() == nil
		if !again {
			s.loading = false
			s.mu.Unlock()
			break
		}
		s.mu.Unlock()
	}

	if err != nil {
		s.logger.Warn(ctx, "cannot refresh cart", "error", err.Error())
	}
	return err
}

// AddToCartWithUI shows the product as Pending, asks the backend to add it
// and reconciles with the answer.
func (s *Store) AddToCartWithUI(ctx context.Context, in models.AddToCartInput) api.Result[models.Cart] {
	id := in.ProductID

	s.mu.Lock()
	_, had := s.vis[id]
	if !had {
		s.vis[id] = Pending
	}
	s.inflight[id]++
	s.version++
	sess := s.session
	s.mu.Unlock()

	res := s.backend.AddToCart(ctx, in)

	s.mu.Lock()
	if s.session != sess {
		s.mu.Unlock()
		return s.dropped(ctx, res)
	}
	s.inflight[id]--
	if s.inflight[id] <= 0 {
		delete(s.inflight, id)
	}
	if !res.Success {
		if !had && s.vis[id] == Pending && s.inflight[id] == 0 {
			delete(s.vis, id)
			s.version++
		}
		s.mu.Unlock()
		s.notify(false, res.Error)
		return res
	}
	s.mu.Unlock()

	if !s.reconcile(ctx, sess, res.Data) {
		return s.dropped(ctx, res)
	}
	s.notify(true, messageOr(res.Message, "Added to cart"))
	return res
}

// RemoveFromCartWithUI hides the product, asks the backend to remove it and
// restores the previous state if that fails.
func (s *Store) RemoveFromCartWithUI(ctx context.Context, id string) api.Result[models.Cart] {
	s.mu.Lock()
	prevVis, had := s.vis[id]
	delete(s.vis, id)
	idx := slices.IndexFunc(s.items, func(it models.CartItem) bool { return it.Product.ID == id })
	var prevItem models.CartItem
	if idx >= 0 {
		prevItem = s.items[idx]
		s.items = slices.Delete(slices.Clone(s.items), idx, idx+1)
	}
	s.version++
	sess := s.session
	s.mu.Unlock()

	res := s.backend.RemoveFromCart(ctx, id)

	if !res.Success {
		s.mu.Lock()
		if s.session != sess {
			s.mu.Unlock()
			return s.dropped(ctx, res)
		}
		if _, readded := s.vis[id]; !readded && had {
			s.vis[id] = prevVis
		}
		if idx >= 0 && !slices.ContainsFunc(s.items, func(it models.CartItem) bool { return it.Product.ID == id }) {
			at := min(idx, len(s.items))
			s.items = slices.Insert(slices.Clone(s.items), at, prevItem)
		}
		s.version++
		s.mu.Unlock()
		s.notify(false, res.Error)
		return res
	}

	if !s.reconcile(ctx, sess, res.Data) {
		return s.dropped(ctx, res)
	}
	s.notify(true, messageOr(res.Message, "Removed from cart"))
	return res
}

// UpdateQuantityWithUI changes a line's quantity locally first. A quantity
// below 1 removes the line.
func (s *Store) UpdateQuantityWithUI(ctx context.Context, id string, quantity int) api.Result[models.Cart] {
	if quantity < 1 {
		return s.RemoveFromCartWithUI(ctx, id)
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.items, func(it models.CartItem) bool { return it.Product.ID == id })
	prevQty := 0
	if idx >= 0 {
		prevQty = s.items[idx].Quantity
		s.items = slices.Clone(s.items)
		s.items[idx].Quantity = quantity
	}
	s.version++
	sess := s.session
	s.mu.Unlock()

	res := s.backend.UpdateCartItem(ctx, id, quantity)

	if !res.Success {
		s.mu.Lock()
		if s.session != sess {
			s.mu.Unlock()
			return s.dropped(ctx, res)
		}
		if i := slices.IndexFunc(s.items, func(it models.CartItem) bool { return it.Product.ID == id }); i >= 0 && prevQty > 0 && s.items[i].Quantity == quantity {
			s.items = slices.Clone(s.items)
			s.items[i].Quantity = prevQty
		}
		s.version++
		s.mu.Unlock()
		s.notify(false, res.Error)
		return res
	}

	if !s.reconcile(ctx, sess, res.Data) {
		return s.dropped(ctx, res)
	}
	s.notify(true, messageOr(res.Message, "Cart updated"))
	return res
}

// ClearCart empties the cart locally and on the backend, restoring the
// previous contents if the backend refuses.
func (s *Store) ClearCart(ctx context.Context) api.Result[models.Cart] {
	s.mu.Lock()
	prevItems, prevVis := s.items, s.vis
	s.items = nil
	s.vis = make(map[string]Visibility)
	for id, n := range s.inflight {
		if n > 0 {
			s.vis[id] = Pending
		}
	}
	s.version++
	sess := s.session
	s.mu.Unlock()

	res := s.backend.ClearCart(ctx)

	if !res.Success {
		s.mu.Lock()
		if s.session != sess {
			s.mu.Unlock()
			return s.dropped(ctx, res)
		}
		if len(s.items) == 0 {
			s.items = prevItems
			for id, v := range prevVis {
				if _, ok := s.vis[id]; !ok {
					s.vis[id] = v
				}
			}
		}
		s.version++
		s.mu.Unlock()
		s.notify(false, res.Error)
		return res
	}

	if res.Data.Items == nil {
		res.Data.Items = []models.CartItem{}
	}
	if !s.reconcile(ctx, sess, res.Data) {
		return s.dropped(ctx, res)
	}
	s.notify(true, messageOr(res.Message, "Cart cleared"))
	return res
}

// reconcile applies the cart a mutation returned, or refetches when the
// backend sent none. It reports false once the session has changed.
func (s *Store) reconcile(ctx context.Context, sess uint64, c models.Cart) bool {
	s.mu.Lock()
	if s.session != sess {
		s.mu.Unlock()
		return false
	}
	if c.Items == nil {
		s.mu.Unlock()
		_ = s.RefreshCart(ctx)
		return true
	}
	s.applyLocked(c.Items)
	s.version++
	s.mu.Unlock()
	return true
}

// dropped returns the reply of a call that outlived its session.
func (s *Store) dropped(ctx context.Context, res api.Result[models.Cart]) api.Result[models.Cart] {
	s.logger.Debug(ctx, "dropping reply of a previous session", "success", res.Success)
	return res
}

// applyLocked makes items the confirmed cart. Pending products survive only
// while their add is still in flight.
func (s *Store) applyLocked(items []models.CartItem) {
	next := make(map[string]Visibility, len(items))
	for _, it := range items {
		next[it.Product.ID] = Confirmed
	}
	for id, v := range s.vis {
		if _, ok := next[id]; !ok && v == Pending && s.inflight[id] > 0 {
			next[id] = Pending
		}
	}
	s.items = slices.Clone(items)
	s.vis = next
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
