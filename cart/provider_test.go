package cart

import (
	"context"
	"go-marketplace/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("no provider", func(t *testing.T) {
		s, err := FromContext(context.Background())
		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrNoProvider)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := FromContext(WithStore(context.Background(), nil))
		assert.ErrorIs(t, err, ErrNoProvider)
	})

	t.Run("provided", func(t *testing.T) {
		want := New(storage.NewMemoryStorage())
		got, err := FromContext(WithStore(context.Background(), want))
		require.NoError(t, err)
		assert.Same(t, want, got)
	})
}

func TestMustFromContext_Panics(t *testing.T) {
	t.Parallel()
	assert.PanicsWithError(t, ErrNoProvider.Error(), func() {
		MustFromContext(context.Background())
	})
}
