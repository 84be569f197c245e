package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet/internal/shared/logger"
)

func TestMarkerStore_LastViewed(t *testing.T) {
	store, err := Open(":memory:", logger.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, ok := store.LastViewed(ctx, "cab", "general")
	assert.False(t, ok, "absent marker")

	first := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.FixedZone("CEST", 2*3600))
	require.NoError(t, store.SetLastViewed(ctx, "cab", "general", first))

	got, ok := store.LastViewed(ctx, "cab", "general")
	require.True(t, ok)
	assert.True(t, first.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	second := first.Add(time.Hour)
	require.NoError(t, store.SetLastViewed(ctx, "cab", "general", second))
	got, ok = store.LastViewed(ctx, "cab", "general")
	require.True(t, ok)
	assert.True(t, second.Equal(got))

	_, ok = store.LastViewed(ctx, "other-cab", "general")
	assert.False(t, ok, "markers are scoped by cabinet")
}

func TestMarkerStore_UnreadableValueIsAbsent(t *testing.T) {
	store, err := Open(":memory:", logger.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.set(ctx, LastViewedKey("cab", "direct-bob"), "yesterday"))

	_, ok := store.LastViewed(ctx, "cab", "direct-bob")
	assert.False(t, ok)
}

func TestMarkerStore_SelectedConversation(t *testing.T) {
	store, err := Open(":memory:", logger.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, ok := store.SelectedConversation(ctx, "cab")
	assert.False(t, ok)

	require.NoError(t, store.SetSelectedConversation(ctx, "cab", "direct-bob"))
	got, ok := store.SelectedConversation(ctx, "cab")
	require.True(t, ok)
	assert.Equal(t, "direct-bob", got)
}

func TestMarkerStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inbox.db")
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	store, err := Open(path, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, store.SetLastViewed(ctx, "cab", "g-1", at))
	require.NoError(t, store.Close())

	reopened, err := Open(path, logger.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.LastViewed(ctx, "cab", "g-1")
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "chat-last-viewed-cab-direct-bob", LastViewedKey("cab", "direct-bob"))
	assert.Equal(t, "chat-selected-conversation-cab", SelectedConversationKey("cab"))
}
