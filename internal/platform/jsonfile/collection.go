package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mstern/tasktriage/internal/store"
)

// collection is a mutex-guarded JSON document file holding every record of
// one kind. All access goes through loadAll/saveAll/update so the full
// load-modify-save span of a mutation runs inside a single critical
// section and concurrent writers cannot lose each other's updates.
type collection[R any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[R any](path string) *collection[R] {
	return &collection[R]{path: path}
}

// loadLocked reads and decodes the whole collection file. The caller must
// hold c.mu. An absent file is first-run state and yields an empty
// collection; any other read or decode failure is a corrupt-store error.
func (c *collection[R]) loadLocked() ([]R, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []R{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", store.ErrCorruptStore, c.path, err)
	}

	var records []R
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", store.ErrCorruptStore, c.path, err)
	}
	if records == nil {
		records = []R{}
	}
	return records, nil
}

// saveLocked atomically replaces the collection file with the given
// records: the new content is written to a temp file in the same
// directory, synced, then renamed over the old file. A crash mid-write
// never leaves a half-written collection behind. The caller must hold c.mu.
func (c *collection[R]) saveLocked(records []R) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", store.ErrWriteFailed, c.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", store.ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	committed = true
	return nil
}

// loadAll returns every stored record under the collection's mutex.
func (c *collection[R]) loadAll() ([]R, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

// update runs a load-modify-save cycle as one critical section: fn
// receives the current records and returns the replacement collection.
// If fn or the save fails, the durable collection is left untouched.
func (c *collection[R]) update(fn func(records []R) ([]R, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.loadLocked()
	if err != nil {
		return err
	}

	next, err := fn(records)
	if err != nil {
		return err
	}

	return c.saveLocked(next)
}
