// Package metadata is the key/value store of the vault: session tokens,
// the master key salt and verifier, and per-user settings blobs live here.
//
// One implementation serves both supported databases. NewSQLiteRepository
// binds it to the local vault file; NewPostgresRepository to an optional
// shared settings database.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) for a
// missing key and Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
