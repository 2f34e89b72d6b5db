package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *BadgerCache {
	t.Helper()

	c, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		err := c.Close()
		require.NoError(t, err)
	})

	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	err := c.Set("auth_abc", "user-1", time.Hour)
	require.NoError(t, err)

	value, err := c.Get("auth_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", value)
}

func TestCache_GetMissing(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get("auth_never-set")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)

	err := c.Set("auth_abc", "user-1", time.Hour)
	require.NoError(t, err)

	err = c.Delete("auth_abc")
	require.NoError(t, err)

	_, err = c.Get("auth_abc")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_TTLExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TTL expiry test in short mode")
	}

	c := newTestCache(t)

	err := c.Set("auth_short", "user-1", 100*time.Millisecond)
	require.NoError(t, err)

	// Badger tracks expiry with second granularity, so wait past the
	// next second boundary before asserting the entry is gone.
	time.Sleep(1500 * time.Millisecond)

	_, err = c.Get("auth_short")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_Alive(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.True(t, c.Alive())

	err = c.Close()
	require.NoError(t, err)

	assert.False(t, c.Alive())
}
