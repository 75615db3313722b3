// Package file provides filesystem adapters: a NetLoader over a directory of
// net documents and a ReportStore that keeps run reports as JSON files.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/strumyk/pkg/domain"
)

// Extensions lists the document extensions the loader recognises, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.NetLoader over a directory. A net's name is its file
// name without extension; subdirectories are not scanned.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Get reads the document named name, trying each known extension.
func (l *Loader) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: invalid name %q", domain.ErrNetNotFound, name)
	}
	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(l.dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read net %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNetNotFound, name)
}

// List returns the names of all documents in the directory, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list nets: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDocument(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
