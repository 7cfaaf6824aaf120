package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Session is the token accessor of the interactive shell. The token and the
// user profile returned at login live in the metadata table.
type Session struct {
	db      *sql.DB
	repo    metadata.Repository
	logger  logging.Logger
	now     func() time.Time
	onClear func(ctx context.Context)
}

type SessionOption func(*Session)

func WithLogger(l logging.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now in expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithOnClear registers the hook ClearAuthData runs after the session data
// is gone. The shell uses it to return to the home screen.
func WithOnClear(fn func(ctx context.Context)) SessionOption {
	return func(s *Session) { s.onClear = fn }
}

func NewSession(db *sql.DB, opts ...SessionOption) *Session {
	s := &Session{
		db:     db,
		repo:   metadata.NewSQLiteRepository(db),
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "session")
	return s
}

// Token returns the persisted token, or "" when there is none, it cannot be
// read, or it has expired.
func (s *Session) Token(ctx context.Context) string {
	tok, ok, err := s.repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.logger.Warn(ctx, "cannot read token", "error", err.Error())
		return ""
	}
	if !ok || tok == "" {
		return ""
	}
	if Expired(tok, s.now()) {
		s.logger.Info(ctx, "stored token has expired")
		return ""
	}
	return tok
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// User returns the profile saved at login.
func (s *Session) User(ctx context.Context) (*models.User, bool) {
	raw, ok, err := s.repo.Get(ctx, metadata.KeyUser)
	if err != nil {
		s.logger.Warn(ctx, "cannot read user profile", "error", err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn(ctx, "stored user profile is corrupt", "error", err.Error())
		return nil, false
	}
	return &u, true
}

// Role is the role of the saved profile, or "".
func (s *Session) Role(ctx context.Context) string {
	if u, ok := s.User(ctx); ok {
		return u.Role
	}
	return ""
}

// Save persists token and user in one transaction.
func (s *Session) Save(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrInvalidToken)
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyUser, string(b))
	})
}

// UpdateUser replaces the saved profile and keeps the token.
func (s *Session) UpdateUser(ctx context.Context, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Set(ctx, metadata.KeyUser, string(b))
}

// ClearAuthData forgets the token and profile, then runs the OnClear hook.
// The hook runs even when deleting fails.
func (s *Session) ClearAuthData(ctx context.Context) {
	if err := s.repo.Delete(ctx, metadata.KeyToken, metadata.KeyUser); err != nil {
		s.logger.Error(ctx, "cannot clear session", "error", err.Error())
	}
	if s.onClear != nil {
		s.onClear(ctx)
	}
}
