package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/shopspring/decimal"
)

// CartLine is one row of the cart as the shell shows it.
type CartLine struct {
	ProductID string
	Name      string
	Quantity  int
	Size      string
	Color     string
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Pending   bool
}

type CartView struct {
	Guest    bool
	Lines    []CartLine
	Count    int
	Subtotal decimal.Decimal
}

type MergeResult struct {
	Merged int
	Failed int
}

// CartService routes cart operations to the server cart (through the
// optimistic store) when signed in and to the local guest cart otherwise.
type CartService interface {
	Add(ctx context.Context, in models.AddToCartInput) error
	Remove(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context) error
	Refresh(ctx context.Context) error
	View(ctx context.Context) (CartView, error)
	InCart(ctx context.Context, productID string) (bool, error)
	// MergeGuestCart moves guest lines into the server cart. Lines the
	// backend refuses stay in the guest cart.
	MergeGuestCart(ctx context.Context) (MergeResult, error)
}

type cartService struct {
	backend Backend
	session Session
	store   *cart.Store
	guest   guestcart.Repository
	logger  logging.Logger
}

func NewCartService(b Backend, s Session, store *cart.Store, guest guestcart.Repository, l logging.Logger) CartService {
	return &cartService{backend: b, session: s, store: store, guest: guest, logger: l.With("service", "cart")}
}

func (c *cartService) signedIn(ctx context.Context) bool {
	return c.session.IsAuthenticated(ctx)
}

func (c *cartService) Add(ctx context.Context, in models.AddToCartInput) error {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	if c.signedIn(ctx) {
		return c.store.AddToCartWithUI(ctx, in).Err()
	}

	res := c.backend.GetProduct(ctx, in.ProductID)
	if !res.Success {
		return res.Err()
	}
	p := res.Data
	if p.Stock > 0 && in.Quantity > p.Stock {
		return fmt.Errorf("%w: only %d in stock", common.ErrorValidation, p.Stock)
	}
	return c.guest.Add(ctx, guestcart.Item{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      in.Quantity,
		SelectedSize:  in.SelectedSize,
		SelectedColor: in.SelectedColor,
	})
}

func (c *cartService) Remove(ctx context.Context, productID string) error {
	if c.signedIn(ctx) {
		return c.store.RemoveFromCartWithUI(ctx, productID).Err()
	}
	return c.guest.Remove(ctx, productID)
}

func (c *cartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if c.signedIn(ctx) {
		return c.store.UpdateQuantityWithUI(ctx, productID, quantity).Err()
	}
	if quantity < 1 {
		return c.guest.Remove(ctx, productID)
	}
	return c.guest.SetQuantity(ctx, productID, quantity)
}

func (c *cartService) Clear(ctx context.Context) error {
	if c.signedIn(ctx) {
		return c.store.ClearCart(ctx).Err()
	}
	return c.guest.Clear(ctx)
}

func (c *cartService) Refresh(ctx context.Context) error {
	if !c.signedIn(ctx) {
		return nil
	}
	return c.store.RefreshCart(ctx)
}

func (c *cartService) View(ctx context.Context) (CartView, error) {
	if !c.signedIn(ctx) {
		return c.guestView(ctx)
	}

	snap := c.store.Snapshot()
	v := CartView{Count: snap.Count, Subtotal: snap.Subtotal}
	for _, it := range snap.Items {
		unit := it.Price
		if unit.IsZero() {
			unit = it.Product.Price
		}
		v.Lines = append(v.Lines, CartLine{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Size:      it.SelectedSize,
			Color:     it.SelectedColor,
			UnitPrice: unit,
			Total:     it.LineTotal(),
		})
	}
	for _, id := range snap.Pending {
		v.Lines = append(v.Lines, CartLine{ProductID: id, Pending: true})
	}
	return v, nil
}

func (c *cartService) guestView(ctx context.Context) (CartView, error) {
	items, err := c.guest.List(ctx)
	if err != nil {
		return CartView{}, err
	}
	v := CartView{Guest: true, Subtotal: decimal.Zero}
	for _, it := range items {
		line := CartLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Size:      it.SelectedSize,
			Color:     it.SelectedColor,
			UnitPrice: it.Price,
			Total:     it.LineTotal(),
		}
		v.Lines = append(v.Lines, line)
		v.Count += it.Quantity
		v.Subtotal = v.Subtotal.Add(line.Total)
	}
	return v, nil
}

func (c *cartService) InCart(ctx context.Context, productID string) (bool, error) {
	if c.signedIn(ctx) {
		return c.store.IsProductInCart(productID), nil
	}
	items, err := c.guest.List(ctx)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (c *cartService) MergeGuestCart(ctx context.Context) (MergeResult, error) {
	var m MergeResult
	if !c.signedIn(ctx) {
		return m, common.ErrorUnauthorized
	}
	items, err := c.guest.List(ctx)
	if err != nil {
		return m, err
	}

	for _, it := range items {
		res := c.backend.AddToCart(ctx, models.AddToCartInput{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
		if !res.Success {
			c.logger.Warn(ctx, "cannot merge guest line", "product", it.ProductID, "error", res.Error)
			m.Failed++
			continue
		}
		if err := c.guest.RemoveLine(ctx, it.ID); err != nil {
			return m, err
		}
		m.Merged++
	}
	return m, nil
}
