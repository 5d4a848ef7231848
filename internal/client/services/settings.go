package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vaultcore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/dmitrijs2005/vaultcore/internal/logging"
)

const equivalentDomainsKey = "equivalentDomains"

// SettingsService caches per-user settings in front of the metadata store.
//
// Reads populate the cache on a miss. Writes go to the store first and
// reach the cache only after the store accepted them, so a failed write
// leaves the cache as it was. The persist and cache update of one user run
// under that user's lock.
type SettingsService struct {
	repo  metadata.Repository
	users UserIDProvider
	log   logging.Logger

	mu    sync.RWMutex
	cache map[string]map[string]json.RawMessage

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewSettingsService(repo metadata.Repository, users UserIDProvider, log logging.Logger) *SettingsService {
	return &SettingsService{
		repo:  repo,
		users: users,
		log:   log,
		cache: make(map[string]map[string]json.RawMessage),
		locks: make(map[string]*sync.Mutex),
	}
}

func settingsKey(userID string) string {
	return common.SettingsKeyPrefix + userID
}

func (s *SettingsService) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *SettingsService) cached(userID string) (map[string]json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.cache[userID]
	return m, ok
}

// settings returns the user's settings, reading the store on a cache miss.
// The caller must hold the user's lock.
func (s *SettingsService) settings(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	if m, ok := s.cached(userID); ok {
		return m, nil
	}

	raw, err := s.repo.Get(ctx, settingsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: read settings: %w", common.ErrPersistence, err)
	}

	m := map[string]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: decode settings: %w", common.ErrPersistence, err)
		}
	}

	s.mu.Lock()
	s.cache[userID] = m
	s.mu.Unlock()
	return m, nil
}

// GetEquivalentDomains returns the active user's equivalent-domain groups,
// or nil when none are stored.
func (s *SettingsService) GetEquivalentDomains(ctx context.Context) ([][]string, error) {
	userID, err := s.users.UserID(ctx)
	if err != nil {
		return nil, err
	}

	m, ok := s.cached(userID)
	if !ok {
		l := s.userLock(userID)
		l.Lock()
		m, err = s.settings(ctx, userID)
		l.Unlock()
		if err != nil {
			return nil, err
		}
	}

	raw, ok := m[equivalentDomainsKey]
	if !ok {
		return nil, nil
	}
	var domains [][]string
	if err := json.Unmarshal(raw, &domains); err != nil {
		return nil, fmt.Errorf("decode %s: %w", equivalentDomainsKey, err)
	}
	return domains, nil
}

// SetEquivalentDomains stores the groups for the active user, then updates
// the cache.
func (s *SettingsService) SetEquivalentDomains(ctx context.Context, domains [][]string) error {
	userID, err := s.users.UserID(ctx)
	if err != nil {
		return err
	}

	value, err := json.Marshal(domains)
	if err != nil {
		return fmt.Errorf("encode %s: %w", equivalentDomainsKey, err)
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	current, err := s.settings(ctx, userID)
	if err != nil {
		return err
	}

	next := make(map[string]json.RawMessage, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[equivalentDomainsKey] = value

	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.repo.Set(ctx, settingsKey(userID), blob); err != nil {
		s.log.Warn(ctx, "settings write failed", "user", userID, "error", err)
		return fmt.Errorf("%w: write settings: %w", common.ErrPersistence, err)
	}

	s.mu.Lock()
	s.cache[userID] = next
	s.mu.Unlock()
	s.log.Debug(ctx, "equivalent domains updated", "user", userID, "groups", len(domains))
	return nil
}

// ClearCache drops every cached entry. Stored settings are untouched.
func (s *SettingsService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]map[string]json.RawMessage)
}

// Clear deletes the stored settings of userID and drops its cache entry.
// The cache entry is dropped even when the delete fails, so the next read
// goes to the store.
func (s *SettingsService) Clear(ctx context.Context, userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.cache, userID)
		s.mu.Unlock()
	}()

	if err := s.repo.Delete(ctx, settingsKey(userID)); err != nil {
		return fmt.Errorf("%w: delete settings: %w", common.ErrPersistence, err)
	}
	return nil
}
