package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// PagesDirEnv is the env var override for the pages directory.
	PagesDirEnv = "PAGECELLS_PAGES_DIR"
	// DefaultPagesBase is the pages directory relative to the home dir.
	DefaultPagesBase = ".pagecells/pages"
)

// Store locates named pages in a directory.
// Layout: ~/.pagecells/pages/<name>.yaml
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at the user's home + DefaultPagesBase,
// or at the path in PAGECELLS_PAGES_DIR if set.
func NewStore() (*Store, error) {
	base := os.Getenv(PagesDirEnv)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, DefaultPagesBase)
	}
	return &Store{baseDir: base}, nil
}

// Dir returns the pages directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Resolve maps a page reference to a file. References containing a path
// separator or a page extension are used as given; bare names are
// normalized (lowercase, spaces to hyphens) and looked up in the pages
// directory as .yaml.
func (s *Store) Resolve(ref string) string {
	if strings.ContainsRune(ref, filepath.Separator) {
		return ref
	}
	if _, err := FormatOf(ref); err == nil {
		if _, statErr := os.Stat(ref); statErr == nil {
			return ref
		}
		return filepath.Join(s.baseDir, ref)
	}
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(ref), " ", "-"))
	return filepath.Join(s.baseDir, normalized+".yaml")
}

// Create writes data as a new page and returns its path. An existing page
// is never overwritten.
func (s *Store) Create(ref string, data []byte) (string, error) {
	path := s.Resolve(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create page %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create page %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("create page %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("create page %s: %w", path, err)
	}
	return path, nil
}

// List returns the names of the pages in the directory, sorted. A missing
// directory yields no pages.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatOf(e.Name()); err != nil {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	slices.Sort(names)
	return names, nil
}
