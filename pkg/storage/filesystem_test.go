package storage

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func backdate(t *testing.T, store *LocalStorage, filename string, age time.Duration) {
	t.Helper()
	old := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(store.Path(filename), old, old))
}

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Save("deck.pptx", []byte("payload"))
	require.NoError(t, err)
	assert.True(t, store.Exists("deck.pptx"))

	file, err := store.Open("deck.pptx")
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	file.Close()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete("deck.pptx"))
	assert.False(t, store.Exists("deck.pptx"))
}

func TestLocalStorageSaveStream(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.SaveStream("upload.bin", strings.NewReader("streamed"))
	require.NoError(t, err)
	assert.True(t, store.Exists("upload.bin"))
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	store := newTestStorage(t)

	for _, name := range []string{"badge-b1-1.pptx", "badge-b1-1.pdf", "badge-b2-9.pptx"} {
		_, err := store.Save(name, []byte("x"))
		require.NoError(t, err)
	}
	backdate(t, store, "badge-b1-1.pptx", 48*time.Hour)
	backdate(t, store, "badge-b1-1.pdf", 48*time.Hour)

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"badge-b1-1.pptx", "badge-b1-1.pdf"}, deleted)
	assert.False(t, store.Exists("badge-b1-1.pptx"))
	assert.False(t, store.Exists("badge-b1-1.pdf"))
	assert.True(t, store.Exists("badge-b2-9.pptx"))
}

func TestLocalStorageLatestWithPrefix(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Save("badge-b1-100.pptx", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("badge-b1-200.pptx", []byte("new"))
	require.NoError(t, err)
	_, err = store.Save("badge-b2-300.pptx", []byte("other"))
	require.NoError(t, err)
	backdate(t, store, "badge-b1-100.pptx", time.Hour)

	latest, err := store.LatestWithPrefix("badge-b1-", ".pptx")
	require.NoError(t, err)
	assert.Equal(t, "badge-b1-200.pptx", latest)

	none, err := store.LatestWithPrefix("badge-b9-", ".pptx")
	require.NoError(t, err)
	assert.Empty(t, none)
}
