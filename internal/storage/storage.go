package storage

import "context"

// Store is the string-keyed key-value port every persisted ledger value goes
// through. Implementations must treat a missing key as (value="", ok=false)
// rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
