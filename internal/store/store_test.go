package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
	"zozikafe/internal/infra/kv"
)

func newTestStore(t *testing.T) (*RecordStore, kv.Store) {
	t.Helper()
	mem, err := kv.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })
	return New(mem), mem
}

func TestLoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	got := s.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadMalformedIsEmpty(t *testing.T) {
	s, raw := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, raw.Set(ctx, KeyMachines, []byte("{not json")))
	assert.Empty(t, s.Load(ctx))

	require.NoError(t, raw.Set(ctx, KeyMachines, []byte("null")))
	assert.NotNil(t, s.Load(ctx))
}

func TestPersistKeepsKeysInLockstep(t *testing.T) {
	s, raw := newTestStore(t)
	ctx := context.Background()
	list := machines.AdminSamples(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	require.NoError(t, s.Persist(ctx, list))

	primary, err := raw.Get(ctx, KeyMachines)
	require.NoError(t, err)
	derived, err := raw.Get(ctx, KeyDisplay)
	require.NoError(t, err)
	assert.Equal(t, primary, derived)
	assert.Equal(t, list, s.Load(ctx))
	assert.Equal(t, s.Load(ctx), s.LoadDisplay(ctx))
}

func TestLoadLegacyExport(t *testing.T) {
	s, raw := newTestStore(t)
	ctx := context.Background()
	legacy := `[{"id":1700000000000,"name":"Test Machine","type":"Тип А|Type A","description":"",` +
		`"features":["X|Y"],"status":"available","image":"","dateAdded":"2024-11-14T22:13:20.000Z"}]`
	require.NoError(t, raw.Set(ctx, KeyMachines, []byte(legacy)))

	list := s.Load(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1700000000000), list[0].ID)
	assert.Equal(t, "Type A", list[0].Type.Pick(lang.Secondary))
	assert.Equal(t, "X", list[0].Features[0].Pick(lang.Primary))
}

func TestSeedDisplayLeavesPrimary(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	wrote, err := s.SeedDisplay(ctx, machines.PublicSamples(time.Now()))
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Len(t, s.LoadDisplay(ctx), 3)
	assert.Empty(t, s.Load(ctx))
}

func TestSeedDisplayNeverOverwritesRecords(t *testing.T) {
	s, raw := newTestStore(t)
	ctx := context.Background()
	saved := []machines.Machine{{ID: 7, Name: "Lelit Bianca", Status: machines.StatusAvailable}}
	require.NoError(t, s.Persist(ctx, saved))

	wrote, err := s.SeedDisplay(ctx, machines.PublicSamples(time.Now()))
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, s.Load(ctx), s.LoadDisplay(ctx))

	require.NoError(t, raw.Set(ctx, KeyDisplay, []byte("not json")))
	wrote, err = s.SeedDisplay(ctx, machines.PublicSamples(time.Now()))
	require.NoError(t, err)
	assert.True(t, wrote, "an unreadable display copy counts as empty")
}

func TestLanguagePreference(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, ok := s.LanguagePreference(ctx)
	assert.False(t, ok)

	require.NoError(t, s.SetLanguagePreference(ctx, lang.Secondary))
	code, ok := s.LanguagePreference(ctx)
	assert.True(t, ok)
	assert.Equal(t, lang.Secondary, code)
}
