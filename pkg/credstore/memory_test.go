package credstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/credstore"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round-trips a credential pair", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()

		creds := credstore.Credentials{Token: "t1", User: testUser}
		require.NoError(t, store.Save(ctx, creds))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, creds, got)
	})

	t.Run("empty store reads as not found", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("partial pair reads as not found", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()
		store.SetRaw("token", "t1")

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("corrupt user record reads as not found", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()
		store.SetRaw("token", "t1")
		store.SetRaw("user", "{not json")

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("clear removes both keys and is idempotent", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Save(ctx, credstore.Credentials{Token: "t1", User: testUser}))

		require.NoError(t, store.Clear(ctx))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)

		assert.NoError(t, store.Clear(ctx))
	})

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()
		store := credstore.NewMemoryStore()
		assert.ErrorIs(t, store.Save(ctx, credstore.Credentials{User: testUser}), credstore.ErrEmptyToken)
	})
}
