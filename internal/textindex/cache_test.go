package textindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ix := NewIndex()
	ix.Build(testChunks())
	require.NoError(t, ix.SaveCache(dir))

	restored := NewIndex()
	ok, err := restored.LoadCache(dir)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, ix.Size(), restored.Size())

	// The restored index answers queries identically.
	query := "puantaj formu ne zaman teslim edilir"
	assert.Equal(t, ix.Retrieve(query, 3), restored.Retrieve(query, 3))
}

func TestCacheMissOnAbsentArtifact(t *testing.T) {
	ix := NewIndex()
	ok, err := ix.LoadCache(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, ix.Ready())
}

func TestCacheCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(CachePath(dir), []byte("not a gob stream"), 0o644))

	ix := NewIndex()
	ok, err := ix.LoadCache(dir)
	assert.False(t, ok)
	require.Error(t, err)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeCacheCorrupt, derr.Code)
	assert.False(t, ix.Ready())
}

func TestSaveCacheNotReadyIsNoop(t *testing.T) {
	dir := t.TempDir()

	ix := NewIndex()
	require.NoError(t, ix.SaveCache(dir))

	_, err := os.Stat(CachePath(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()

	ix := NewIndex()
	ix.Build(testChunks())
	require.NoError(t, ix.SaveCache(dir))

	require.NoError(t, ClearCache(dir))
	_, err := os.Stat(CachePath(dir))
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clean dir is fine.
	require.NoError(t, ClearCache(dir))
}

func TestCachePathJoins(t *testing.T) {
	assert.Equal(t, filepath.Join("some", "dir", "knowledge-index.gob"), CachePath(filepath.Join("some", "dir")))
}
