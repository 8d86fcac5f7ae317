package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rustbot/internal/domain"
)

func newTestStore(t *testing.T) *ShowcaseStore {
	t.Helper()
	store, err := NewShowcaseStore(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestShowcaseLinkRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Link(ctx, "src1", domain.MessageRef{ChannelID: "c1", MessageID: "d1"}))

	ref, ok, err := store.FindDerived(ctx, "src1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.MessageRef{ChannelID: "c1", MessageID: "d1"}, ref)
}

func TestShowcaseFindUnknownSource(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.FindDerived(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShowcaseLinkIsReplacedOnConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Link(ctx, "src1", domain.MessageRef{ChannelID: "c1", MessageID: "d1"}))
	require.NoError(t, store.Link(ctx, "src1", domain.MessageRef{ChannelID: "c1", MessageID: "d2"}))

	ref, ok, err := store.FindDerived(ctx, "src1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "d2", ref.MessageID)
}

func TestShowcaseUnlinkDerived(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Link(ctx, "src1", domain.MessageRef{ChannelID: "c1", MessageID: "d1"}))
	require.NoError(t, store.UnlinkDerived(ctx, "d1"))

	_, ok, err := store.FindDerived(ctx, "src1")
	require.NoError(t, err)
	assert.False(t, ok)
}
