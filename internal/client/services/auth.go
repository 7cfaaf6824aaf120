package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// AuthService signs users in and out of the shell.
//
// Contract:
//   - Login/Register: authenticate, persist the session, merge the guest
//     cart into the server cart and load the cart cache.
//   - Logout: forget the session and reset the cart cache.
//   - Ping: check that the backend is reachable.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, name, email string, password []byte, phone string) (*models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*models.User, bool)
	RefreshProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.UserInput) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	backend Backend
	session Session
	carts   CartService
	store   *cart.Store
	logger  logging.Logger
}

func NewAuthService(b Backend, s Session, carts CartService, store *cart.Store, l logging.Logger) AuthService {
	return &authService{backend: b, session: s, carts: carts, store: store, logger: l.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res := a.backend.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if !res.Success {
		return nil, res.Err()
	}
	return a.start(ctx, res.Data)
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte, phone string) (*models.User, error) {
	res := a.backend.Register(ctx, models.Registration{Name: name, Email: email, Password: string(password), Phone: phone})
	if !res.Success {
		return nil, res.Err()
	}
	return a.start(ctx, res.Data)
}

// start persists a fresh session and brings the cart up to date.
func (a *authService) start(ctx context.Context, ad models.AuthData) (*models.User, error) {
	if err := a.session.Save(ctx, ad.Token, ad.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.store.Reset()

	m, err := a.carts.MergeGuestCart(ctx)
	if err != nil {
		a.logger.Warn(ctx, "guest cart merge failed", "error", err.Error())
	} else if m.Merged+m.Failed > 0 {
		a.logger.Info(ctx, "guest cart merged", "merged", m.Merged, "failed", m.Failed)
	}

	if err := a.store.RefreshCart(ctx); err != nil {
		a.logger.Warn(ctx, "initial cart load failed", "error", err.Error())
	}

	u := ad.User
	return &u, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.ClearAuthData(ctx)
	a.store.Reset()
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, bool) {
	if !a.session.IsAuthenticated(ctx) {
		return nil, false
	}
	return a.session.User(ctx)
}

func (a *authService) RefreshProfile(ctx context.Context) (*models.User, error) {
	res := a.backend.GetProfile(ctx)
	if !res.Success {
		return nil, res.Err()
	}
	if err := a.session.UpdateUser(ctx, res.Data); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (a *authService) UpdateProfile(ctx context.Context, in models.UserInput) (*models.User, error) {
	if !a.session.IsAuthenticated(ctx) {
		return nil, common.ErrorUnauthorized
	}
	res := a.backend.UpdateProfile(ctx, in)
	if !res.Success {
		return nil, res.Err()
	}
	if err := a.session.UpdateUser(ctx, res.Data); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.backend.Ping(ctx)
}
