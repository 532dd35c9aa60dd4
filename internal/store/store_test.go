package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes/dicesheet-backend/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "sheets.db"))
	require.NoError(t, err)
	return st
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	blob := []byte(`{"playerName":"Maya"}`)
	require.NoError(t, st.Save(ctx, "ABC123", blob))

	got, found, err := st.Load(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, blob, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "ABC123", []byte(`{"activeRound":1}`)))
	require.NoError(t, st.Save(ctx, "ABC123", []byte(`{"activeRound":2}`)))

	got, found, err := st.Load(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"activeRound":2}`), got)
}

func TestStore_LoadMissing(t *testing.T) {
	st := openTestStore(t)

	got, found, err := st.Load(context.Background(), "NOPE00")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestStore_OpenRequiresPath(t *testing.T) {
	_, err := store.Open("")
	assert.Error(t, err)
}
