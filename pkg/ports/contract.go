package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lineator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := domain.Fingerprint([]byte("contract-test-" + time.Now().Format("20060102150405.000000000")))

	record := func(k string) *domain.Record {
		return &domain.Record{
			Key:         k,
			Machine:     "Inc",
			Tapes:       1,
			States:      3,
			Transitions: 2,
			Output:      "Name: Inc-flat\nStartState: q0\nAcceptStates:\n",
			CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Put and Get", func(t *testing.T) {
		rec := record(key)
		require.NoError(t, store.Put(ctx, key, rec), "Put should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, rec.Machine, loaded.Machine)
		assert.Equal(t, rec.Output, loaded.Output)
		assert.Equal(t, rec.Tapes, loaded.Tapes)
		assert.Equal(t, rec.States, loaded.States)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Returned Records Are Isolated", func(t *testing.T) {
		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		loaded.Output = "mutated"

		again, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Output)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, record(key)))
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "Get after Delete should return ErrRecordNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		_ = store.Put(ctx, k1, record(k1))
		_ = store.Put(ctx, k2, record(k2))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
