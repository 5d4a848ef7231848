package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vaultcore/internal/client/identity"
	"github.com/dmitrijs2005/vaultcore/internal/client/storage"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeRepo is an in-memory metadata.Repository with failure injection.
type fakeRepo struct {
	mu   sync.Mutex
	data map[string][]byte

	GetErr    error
	SetErr    error
	DeleteErr error

	GetCalls    int
	SetCalls    int
	DeleteCalls int
	LastSetKey  string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{data: map[string][]byte{}}
}

func (f *fakeRepo) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeRepo) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	f.LastSetKey = key
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.data, key)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) (map[string][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]byte, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = map[string][]byte{}
	return nil
}

// fakeUsers returns a fixed user id.
type fakeUsers struct {
	ID  string
	Err error
}

func (f *fakeUsers) UserID(ctx context.Context) (string, error) {
	return f.ID, f.Err
}

// fakeIdentity implements identity.Client.
type fakeIdentity struct {
	Salt        []byte
	PreloginErr error

	TokenResps []*identity.TokenResponse
	TokenErr   error

	CloseErr error

	LastPreloginEmail string
	TokenReqs         []identity.TokenRequest
}

func (f *fakeIdentity) Prelogin(ctx context.Context, email string) ([]byte, error) {
	f.LastPreloginEmail = email
	return append([]byte(nil), f.Salt...), f.PreloginErr
}

func (f *fakeIdentity) Token(ctx context.Context, req identity.TokenRequest) (*identity.TokenResponse, error) {
	f.TokenReqs = append(f.TokenReqs, req)
	if f.TokenErr != nil {
		return nil, f.TokenErr
	}
	resp := f.TokenResps[0]
	f.TokenResps = f.TokenResps[1:]
	return resp, nil
}

func (f *fakeIdentity) Close() error { return f.CloseErr }
