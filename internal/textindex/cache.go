package textindex

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

// cacheFileName is the index cache artifact inside the cache directory.
// The vectorizer, weight matrix, and chunk list are one gob stream so a
// partial or mismatched set can never be loaded.
const cacheFileName = "knowledge-index.gob"

// CachePath returns the cache artifact path for a cache directory.
func CachePath(dir string) string {
	return filepath.Join(dir, cacheFileName)
}

// SaveCache persists the current index state. Saving a not-ready index is
// a no-op.
func (ix *Index) SaveCache(dir string) error {
	state := ix.snapshot()
	if state == nil {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot leave a truncated
	// artifact behind.
	tmp, err := os.CreateTemp(dir, cacheFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(state); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	return os.Rename(tmp.Name(), CachePath(dir))
}

// LoadCache restores the index from the cache artifact. An absent artifact
// returns (false, nil); an unreadable or corrupt one returns
// (false, ErrCacheCorrupt-wrapped error) and must be treated as a cache
// miss by the caller.
func (ix *Index) LoadCache(dir string) (bool, error) {
	f, err := os.Open(CachePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, domain.NewDomainErrorWithCause(domain.ErrCodeCacheCorrupt, "open index cache", err)
	}
	defer f.Close()

	var state indexState
	if err := gob.NewDecoder(f).Decode(&state); err != nil {
		return false, domain.NewDomainErrorWithCause(domain.ErrCodeCacheCorrupt, "decode index cache", err)
	}
	if state.Vectorizer == nil || len(state.Matrix) != len(state.Chunks) || len(state.Chunks) == 0 {
		return false, domain.NewDomainErrorWithCause(domain.ErrCodeCacheCorrupt, "decode index cache", fmt.Errorf("inconsistent artifact"))
	}

	ix.swap(&state)
	return true, nil
}

// ClearCache removes the cache artifact if present.
func ClearCache(dir string) error {
	err := os.Remove(CachePath(dir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
