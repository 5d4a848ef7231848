package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenService_UserIDFromSubject(t *testing.T) {
	repo := newFakeRepo()
	s := NewTokenService(repo)
	ctx := context.Background()

	_, err := s.UserID(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	require.NoError(t, s.SetTokens(ctx, makeJWT(t, jwt.MapClaims{"sub": "user-42"}), "refresh"))
	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestTokenService_ResumesFromStore(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, NewTokenService(repo).SetTokens(ctx, makeJWT(t, jwt.MapClaims{"sub": "u"}), "r"))

	s := NewTokenService(repo)
	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u", id)

	rt, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r", rt)
}

func TestTokenService_InvalidTokens(t *testing.T) {
	ctx := context.Background()

	s := NewTokenService(newFakeRepo())
	require.NoError(t, s.SetTokens(ctx, "not-a-jwt", ""))
	_, err := s.UserID(ctx)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	require.NoError(t, s.SetTokens(ctx, makeJWT(t, jwt.MapClaims{"name": "x"}), ""))
	_, err = s.UserID(ctx)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_ClearTokens(t *testing.T) {
	repo := newFakeRepo()
	s := NewTokenService(repo)
	ctx := context.Background()

	require.NoError(t, s.SetTokens(ctx, makeJWT(t, jwt.MapClaims{"sub": "u"}), "r"))
	require.NoError(t, s.ClearTokens(ctx))

	_, err := s.UserID(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, repo.data)
}

func TestTokenService_PersistenceErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.SetErr = errors.New("ro")
	s := NewTokenService(repo)
	require.ErrorIs(t, s.SetTokens(context.Background(), "a", "b"), common.ErrPersistence)

	repo2 := newFakeRepo()
	repo2.GetErr = errors.New("locked")
	_, err := NewTokenService(repo2).AccessToken(context.Background())
	require.ErrorIs(t, err, common.ErrPersistence)
}
