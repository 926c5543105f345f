package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pocketledger/pocketledger/internal/storage"
	"github.com/pocketledger/pocketledger/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should report a missing key as absent", func(t *testing.T) {
		store := test_utils.NewTestStore(t)

		_, ok, err := store.Get(ctx, "missing")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should read back what was written", func(t *testing.T) {
		store := test_utils.NewTestStore(t)

		require.NoError(t, store.Set(ctx, "sf_transactions", "[]"))
		value, ok, err := store.Get(ctx, "sf_transactions")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "[]", value)
	})

	t.Run("should overwrite on repeated writes to the same key", func(t *testing.T) {
		store := test_utils.NewTestStore(t)

		require.NoError(t, store.Set(ctx, "sf_currency", "USD"))
		require.NoError(t, store.Set(ctx, "sf_currency", "EUR"))
		value, _, err := store.Get(ctx, "sf_currency")

		require.NoError(t, err)
		assert.Equal(t, "EUR", value)
	})

	t.Run("should delete a key", func(t *testing.T) {
		store := test_utils.NewTestStore(t)
		require.NoError(t, store.Set(ctx, "sf_theme", "dark"))

		require.NoError(t, store.Delete(ctx, "sf_theme"))
		_, ok, err := store.Get(ctx, "sf_theme")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should keep data across reopen", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "reopen_test.db")
		store, err := storage.NewSQLiteStore(dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "sf_theme", "dark"))
		require.NoError(t, store.Close())

		reopened, err := storage.NewSQLiteStore(dbPath)
		require.NoError(t, err)
		defer reopened.Close()

		value, ok, err := reopened.Get(ctx, "sf_theme")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "dark", value)
	})
}
