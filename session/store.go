package session

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is the not-found signal returned by Store implementations
// when no value exists for a key. The manager maps it to CodeSessionNotFound.
var ErrKeyNotFound = errors.New("session: key not found")

// Store defines the key/value persistence capability consumed by the Manager,
// to be implemented by a concrete backend. RemoveData is idempotent; removing
// an absent key is not an error. Concurrency beyond per-call safety is the
// implementation's concern.
type Store interface {
	SetData(ctx context.Context, key string, value []byte) error
	GetData(ctx context.Context, key string) ([]byte, error)
	RemoveData(ctx context.Context, key string) error
}
