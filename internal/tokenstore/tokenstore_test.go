package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()

	require.NoError(t, store.Save("sessions", "alice", "token-1"))

	got, err := store.Load("sessions", "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-1", got)

	// Same account under a different service is a separate entry.
	_, err = store.Load("cookies", "alice")
	require.ErrorIs(t, err, ErrNotFound)

	// Saving again overwrites.
	require.NoError(t, store.Save("sessions", "alice", "token-2"))
	got, err = store.Load("sessions", "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-2", got)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()

	require.NoError(t, store.Save("sessions", "alice", "token-1"))
	require.NoError(t, store.Delete("sessions", "alice"))

	_, err := store.Load("sessions", "alice")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent entry is fine.
	require.NoError(t, store.Delete("sessions", "alice"))
}
