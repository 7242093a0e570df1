package core

import "context"

// KVStore is the durable key-value facility behind session persistence.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
