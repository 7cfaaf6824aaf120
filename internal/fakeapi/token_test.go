package fakeapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, err := generateToken("user-123", roleAdmin, []byte("super-secret"), now, time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(tok, []byte("super-secret"), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, roleAdmin, claims.Role)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, err := generateToken("u1", roleUser, []byte("secret"), now, time.Minute)
	require.NoError(t, err)

	_, err = parseToken(tok, []byte("secret"), now.Add(time.Hour))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := generateToken("u2", roleUser, []byte("right-secret"), now, time.Hour)
	require.NoError(t, err)

	_, err = parseToken(tok, []byte("wrong-secret"), now)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseToken("not.a.jwt", []byte("k"), time.Now())
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
