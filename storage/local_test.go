package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	key, err := store.Save("profiles/u1/photo.jpg", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "profiles/u1/photo.jpg", key)

	exists, err := store.Exists(key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(key))
	exists, err = store.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	assert.NoError(t, store.Delete("never/stored.jpg"))
}

func TestLocalStoreConfinesKeys(t *testing.T) {
	base := t.TempDir()
	store := NewLocalStore(base)

	outside := filepath.Join(base, "..", "escape.txt")
	_, err := store.Save("../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)

	// The traversal component is stripped; nothing lands outside the base.
	_, statErr := os.Stat(outside)
	assert.True(t, os.IsNotExist(statErr))

	exists, err := store.Exists("../escape.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}
