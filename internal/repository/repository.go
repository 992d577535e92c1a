package repository

import (
	"context"
)

// Store is a per-client key-value store, the server-side equivalent of the
// browser's local storage. Values are opaque strings; callers own encoding.
type Store interface {
	// Load returns the stored value or ErrNotFound if the key is absent.
	Load(ctx context.Context, key string) (string, error)
	// Save creates or overwrites the value for key.
	Save(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

type namespacedStore struct {
	inner  Store
	prefix string
}

// Namespaced returns a view of inner in which every key is prefixed with
// namespace, so several clients can share one backing table.
func Namespaced(inner Store, namespace string) Store {
	return &namespacedStore{inner: inner, prefix: namespace + ":"}
}

func (s *namespacedStore) Load(ctx context.Context, key string) (string, error) {
	return s.inner.Load(ctx, s.prefix+key)
}

func (s *namespacedStore) Save(ctx context.Context, key, value string) error {
	return s.inner.Save(ctx, s.prefix+key, value)
}

func (s *namespacedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
