// Package storage provides read-only access to the directory tree being
// served.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"viewmd/internal/apperr"
)

// Root is a handle to the serving directory. Methods take relative,
// slash-separated request paths and verify the resolved target stays under
// the root before touching the filesystem.
type Root struct {
	dir string // absolute path to the serving directory
}

// NewRoot opens the directory at dir as a serving root.
// The directory must already exist.
func NewRoot(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &Root{dir: abs}, nil
}

// Dir returns the absolute path of the serving root.
func (r *Root) Dir() string {
	return r.dir
}

// Resolve maps a relative request path to an absolute path under the root.
// Parent segments, NUL bytes, and absolute inputs fail with
// apperr.ErrForbidden before any filesystem access.
func (r *Root) Resolve(rel string) (string, error) {
	if rel == "" {
		return r.dir, nil
	}
	if strings.ContainsRune(rel, 0) {
		return "", fmt.Errorf("storage: invalid path %q: %w", rel, apperr.ErrForbidden)
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("storage: path escapes root: %s: %w", rel, apperr.ErrForbidden)
		}
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s: %w", rel, apperr.ErrForbidden)
	}
	joined := filepath.Join(r.dir, cleaned)
	// Ensure the resolved path is still under root.
	if joined != r.dir && !strings.HasPrefix(joined, r.dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes root: %s: %w", rel, apperr.ErrForbidden)
	}
	return joined, nil
}

// Stat returns file info for the target. A missing target maps to
// apperr.ErrNotFound; symlinks are followed.
func (r *Root) Stat(rel string) (fs.FileInfo, error) {
	abs, err := r.Resolve(rel)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: stat %s: %w", rel, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: stat %s: %w", rel, err)
	}
	return info, nil
}

// ReadFile returns the raw bytes of a file under the root.
func (r *Root) ReadFile(rel string) ([]byte, error) {
	abs, err := r.Resolve(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}

// Entry describes one child in a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// ReadDir lists the children of a directory under the root, directories
// first, then case-insensitive by name. Symlinked children are classified
// by their target where readable.
func (r *Root) ReadDir(rel string) ([]Entry, error) {
	abs, err := r.Resolve(rel)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", rel, err)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(abs, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		out = append(out, Entry{Name: e.Name(), IsDir: isDir})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
