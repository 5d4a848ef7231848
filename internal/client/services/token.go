package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vaultcore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// UserIDProvider resolves the user of the active session.
type UserIDProvider interface {
	UserID(ctx context.Context) (string, error)
}

// TokenService keeps the session tokens in memory and in the vault metadata
// so a restarted client resumes the session.
type TokenService struct {
	repo metadata.Repository

	mu      sync.RWMutex
	loaded  bool
	access  string
	refresh string
}

func NewTokenService(repo metadata.Repository) *TokenService {
	return &TokenService{repo: repo}
}

// SetTokens persists and caches a new token pair.
func (s *TokenService) SetTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, accessTokenKey, []byte(access)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	if err := s.repo.Set(ctx, refreshTokenKey, []byte(refresh)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	s.access, s.refresh, s.loaded = access, refresh, true
	return nil
}

// AccessToken returns the current access token; "" when logged out.
func (s *TokenService) AccessToken(ctx context.Context) (string, error) {
	if err := s.load(ctx); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, nil
}

// RefreshToken returns the current refresh token; "" when logged out.
func (s *TokenService) RefreshToken(ctx context.Context) (string, error) {
	if err := s.load(ctx); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, nil
}

func (s *TokenService) load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	access, err := s.repo.Get(ctx, accessTokenKey)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	refresh, err := s.repo.Get(ctx, refreshTokenKey)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	s.access, s.refresh, s.loaded = string(access), string(refresh), true
	return nil
}

// UserID decodes the "sub" claim of the access token. The token signature
// is the identity service's concern; the client only reads its claims.
func (s *TokenService) UserID(ctx context.Context) (string, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrorUnauthorized
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}
	return sub, nil
}

// ClearTokens forgets the session.
func (s *TokenService) ClearTokens(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range []string{accessTokenKey, refreshTokenKey} {
		if err := s.repo.Delete(ctx, k); err != nil {
			return fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
	}
	s.access, s.refresh, s.loaded = "", "", true
	return nil
}
