package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		panic("unreachable")
	}
}

func TestSessionStoreStartsSignedOut(t *testing.T) {
	s, err := NewSessionStore(newTestDB(t))
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.False(t, snap.SignedIn())
	assert.Empty(t, snap.Phone)
	assert.Zero(t, snap.UserID)
}

func TestSessionStoreWritesAreIndependent(t *testing.T) {
	s, err := NewSessionStore(newTestDB(t))
	require.NoError(t, err)

	require.NoError(t, s.SetPhone("01234567890"))
	require.NoError(t, s.SetDarkMode(true))
	require.NoError(t, s.SetUserID(7))

	snap := s.Snapshot()
	assert.True(t, snap.SignedIn())
	assert.Equal(t, "01234567890", snap.Phone)
	assert.Equal(t, uint(7), snap.UserID)
	assert.True(t, snap.DarkMode)

	// Rewriting one key leaves the others alone.
	require.NoError(t, s.SetDarkMode(false))
	snap = s.Snapshot()
	assert.Equal(t, "01234567890", snap.Phone)
	assert.Equal(t, uint(7), snap.UserID)
	assert.False(t, snap.DarkMode)
}

func TestSessionStoreClear(t *testing.T) {
	s, err := NewSessionStore(newTestDB(t))
	require.NoError(t, err)

	require.NoError(t, s.SetPhone("01234567890"))
	require.NoError(t, s.SetUserID(3))
	require.NoError(t, s.SetDarkMode(true))

	require.NoError(t, s.Clear())

	snap := s.Snapshot()
	assert.False(t, snap.SignedIn())
	assert.Empty(t, snap.Phone)
	assert.Zero(t, snap.UserID)
	assert.False(t, snap.DarkMode)
}

func TestSessionStoreSurvivesReopen(t *testing.T) {
	db := newTestDB(t)

	s, err := NewSessionStore(db)
	require.NoError(t, err)
	require.NoError(t, s.SetPhone("01234567890"))
	require.NoError(t, s.SetUserID(42))

	// A fresh store over the same database loads the persisted session.
	reopened, err := NewSessionStore(db)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	assert.Equal(t, "01234567890", snap.Phone)
	assert.Equal(t, uint(42), snap.UserID)
}

func TestSessionStoreWatch(t *testing.T) {
	s, err := NewSessionStore(newTestDB(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	require.False(t, recvSnapshot(t, ch).SignedIn())

	require.NoError(t, s.SetPhone("01234567890"))
	assert.True(t, recvSnapshot(t, ch).SignedIn())

	require.NoError(t, s.Clear())
	assert.False(t, recvSnapshot(t, ch).SignedIn())
}
