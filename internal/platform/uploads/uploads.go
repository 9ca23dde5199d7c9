// Package uploads stores attachment blobs on local disk. Task records only
// ever carry the filenames returned from Save; the contents are never
// inspected by the rest of the system.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store writes uploaded files into a single directory, prefixing each
// filename with a millisecond timestamp to keep names unique.
type Store struct {
	dir string
}

// NewStore creates a disk-backed upload store rooted at dir, creating the
// directory if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the contents of r to disk under a timestamp-prefixed version
// of name and returns the stored filename. Path separators in name are
// stripped so uploads can never escape the store directory.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	filename := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + base

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return filename, nil
}
