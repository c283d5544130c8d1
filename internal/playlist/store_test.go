package playlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	p := &Stored{ID: "abc", Seed: 7, Request: NamedRequest{Duration: 60, Alignment: "any"}}
	require.NoError(t, store.Put(ctx, p))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePurgesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, &Stored{ID: "old"}))
	now = now.Add(5 * time.Minute)
	require.NoError(t, store.Put(ctx, &Stored{ID: "new"}))

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "new")
}
