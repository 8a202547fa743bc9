package lesson

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader provides lessons by name. Applications implement this to serve
// embedded or otherwise bundled lesson content.
type Loader interface {
	LoadByName(name string) (*Lesson, error)
	ListAvailable() []string
}

var (
	loaderMu      sync.RWMutex
	defaultLoader Loader
)

// SetLoader sets the loader used by Load for bare lesson names.
func SetLoader(loader Loader) {
	loaderMu.Lock()
	defer loaderMu.Unlock()

	defaultLoader = loader
}

func getLoader() Loader {
	loaderMu.RLock()
	defer loaderMu.RUnlock()

	return defaultLoader
}

// Load loads a lesson by path or by name.
//   - Path mode: anything containing '/', '\', or ending in ".yaml"/".yml" is
//     read from the filesystem, e.g. Load("lessons/cash-flow.yaml").
//   - Name mode: a bare name is resolved through the registered Loader,
//     e.g. Load("cash-flow-management").
func Load(pathOrName string) (*Lesson, error) {
	if IsPath(pathOrName) {
		return LoadFromFile(pathOrName)
	}

	loader := getLoader()
	if loader == nil {
		return nil, ErrNoLoader
	}

	l, err := loader.LoadByName(pathOrName)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %q (available: %v): %w",
			pathOrName, loader.ListAvailable(), err)
	}

	return l, nil
}

// IsPath reports whether Load treats s as a file path rather than a lesson ID.
func IsPath(s string) bool {
	lower := strings.ToLower(s)

	return strings.Contains(s, "/") ||
		strings.Contains(s, `\`) ||
		strings.HasSuffix(lower, ".yaml") ||
		strings.HasSuffix(lower, ".yml")
}

// LoadFromFile reads and validates a YAML lesson file.
func LoadFromFile(path string) (*Lesson, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson file %q: %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromFS reads and validates a YAML lesson from a filesystem such as embed.FS.
func LoadFromFS(fsys fs.FS, path string) (*Lesson, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson from FS: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a YAML lesson.
func LoadFromBytes(data []byte) (*Lesson, error) {
	var l Lesson

	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &l, nil
}
