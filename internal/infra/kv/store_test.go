package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zozikafe/config"
	"zozikafe/database"
	"zozikafe/internal/infra/kv"
)

func backends(t *testing.T) map[string]kv.Store {
	t.Helper()

	mem, err := kv.NewMemoryStore()
	require.NoError(t, err)

	disk, err := kv.NewBadgerStore(t.TempDir())
	require.NoError(t, err)

	db, err := database.Open(config.DriverSQLite, filepath.Join(t.TempDir(), "kv.db"), false)
	require.NoError(t, err)

	stores := map[string]kv.Store{
		"badger-memory": mem,
		"badger-disk":   disk,
		"sqlite":        kv.NewSQLStore(db),
	}
	t.Cleanup(func() {
		for name, s := range stores {
			if err := s.Close(); err != nil {
				t.Logf("close %s: %v", name, err)
			}
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			require.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, s.Set(ctx, "a", []byte("1")))
			got, err := s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("1"), got)

			require.NoError(t, s.SetAll(ctx, []kv.Entry{
				{Key: "a", Value: []byte("2")},
				{Key: "b", Value: []byte("2")},
			}))
			a, err := s.Get(ctx, "a")
			require.NoError(t, err)
			b, err := s.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestSetIf(t *testing.T) {
	ctx := context.Background()
	absent := func(current []byte) bool { return current == nil }
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			wrote, err := s.SetIf(ctx, "seed", []byte("first"), absent)
			require.NoError(t, err)
			assert.True(t, wrote)

			wrote, err = s.SetIf(ctx, "seed", []byte("second"), absent)
			require.NoError(t, err)
			assert.False(t, wrote)
			got, err := s.Get(ctx, "seed")
			require.NoError(t, err)
			assert.Equal(t, []byte("first"), got)

			wrote, err = s.SetIf(ctx, "seed", []byte("third"), func(current []byte) bool {
				return string(current) == "first"
			})
			require.NoError(t, err)
			assert.True(t, wrote)
			got, err = s.Get(ctx, "seed")
			require.NoError(t, err)
			assert.Equal(t, []byte("third"), got)
		})
	}
}
