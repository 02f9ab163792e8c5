package cart

import (
	"context"
	"errors"
)

var ErrNoProvider = errors.New("cart store used outside of a cart provider")

type providerKey struct{}

// WithStore returns a context in which FromContext resolves to s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, providerKey{}, s)
}

func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(providerKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}

// MustFromContext panics with ErrNoProvider when ctx carries no store.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
