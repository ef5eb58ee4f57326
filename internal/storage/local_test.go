package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Save(7, "report.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_report.pdf"))

	rc, err := store.Open(7, stored)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestSaveSanitizesPathTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Save(1, "../../etc/passwd", strings.NewReader("nope"))
	require.NoError(t, err)
	assert.NotContains(t, stored, "/")
	assert.NotContains(t, stored, "..")
}

func TestStoredNamesNeverCollide(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(1, "same.txt", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(1, "same.txt", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(1, "never-stored.txt"))
}

func TestOpenMissingFileFails(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(1, "never-stored.txt")
	assert.Error(t, err)
}
