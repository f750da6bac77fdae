// store.go - Shared-folder storage: root resolution, the path-safety
// guard, listing with display sizes, and the write/delete primitives.
//
// The directory itself is the single source of truth. Nothing is
// cached; every listing is a live re-scan.
package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileEntry describes one shared file as shown in listings.
type FileEntry struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	DisplaySize string `json:"display_size"`
}

// Store manages a single flat directory of shared files. All entries
// are direct children of the root; there are no subdirectories.
type Store struct {
	root string
}

// NewStore resolves dir to a canonical absolute path, creating the
// directory if it does not exist yet.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store: directory is empty")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %q: %w", abs, err)
	}

	// Canonicalize once so the safety guard compares like with like
	// even when the storage path itself sits behind a symlink.
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("store: canonicalize %q: %w", abs, err)
	}

	return &Store{root: root}, nil
}

// Root returns the canonical absolute path of the storage directory.
func (s *Store) Root() string {
	return s.root
}

// IsSafeName reports whether name resolves to a direct child of the
// storage root. The candidate is joined onto the root, canonicalized
// (symlinks followed, ".." segments normalized), and accepted only if
// the canonical path's immediate parent equals the canonical root.
// Every failure mode collapses to false; this function never panics.
func (s *Store) IsSafeName(name string) bool {
	if name == "" {
		return false
	}

	joined := filepath.Join(s.root, name)

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if !os.IsNotExist(err) {
			return false
		}
		// Entry does not exist yet (upload target, already-deleted
		// file). Fall back to the lexically cleaned path; Join above
		// already collapsed any ".." segments.
		resolved = filepath.Clean(joined)
	}

	return filepath.Dir(resolved) == s.root
}

// List enumerates the regular, non-hidden files directly under the
// root in ascending lexical order. A stat failure for one entry
// degrades its display size to "" instead of failing the listing.
func (s *Store) List() ([]FileEntry, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", s.root, err)
	}

	// os.ReadDir returns entries sorted by filename.
	entries := make([]FileEntry, 0, len(dirents))
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}

		entry := FileEntry{Name: d.Name()}
		if info, err := d.Info(); err == nil {
			entry.Size = info.Size()
			entry.DisplaySize = sizeString(info.Size())
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Save writes the contents of r to name inside the root, overwriting
// any existing file of that name. The caller is responsible for
// sanitizing name first. Returns the number of bytes written.
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return 0, fmt.Errorf("store: create %q: %w", name, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("store: write %q: %w", name, err)
	}

	return n, nil
}

// Delete removes the named file from the root.
func (s *Store) Delete(name string) error {
	return os.Remove(s.Path(name))
}

// Path returns the (unvalidated) path of name under the root.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// sizeString renders a byte count for the listing: kibibytes rounded
// to one decimal below 1 MiB, mebibytes rounded to two decimals
// otherwise. 500 bytes -> "0.5 KB", 2 MiB -> "2.0 MB".
func sizeString(size int64) string {
	if size < 1<<20 {
		return roundedString(float64(size)/1024, 1) + " KB"
	}
	return roundedString(float64(size)/1024/1024, 2) + " MB"
}

// roundedString rounds v to the given number of decimals and prints
// the shortest representation keeping at least one decimal place, so
// 2.0 stays "2.0" rather than collapsing to "2".
func roundedString(v float64, decimals int) string {
	pow := math.Pow(10, float64(decimals))
	v = math.Round(v*pow) / pow

	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
