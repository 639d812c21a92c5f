package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/prepsmart/internal/logging"
)

//go:embed data/*.yaml
var builtin embed.FS

// ErrModuleNotFound is returned when a module id is not in the catalog.
var ErrModuleNotFound = errors.New("module not found")

// Catalog is a read-only lookup of modules by id.
type Catalog interface {
	Lookup(id string) (*Module, error)
	All() []*Module
}

// Store is the in-memory Catalog built from YAML documents.
type Store struct {
	mu      sync.RWMutex
	modules map[string]*Module
	log     *logging.Logger
}

var _ Catalog = (*Store)(nil)

// New creates an empty catalog. A nil logger discards load warnings.
func New(log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		modules: make(map[string]*Module),
		log:     log,
	}
}

// LoadEmbedded returns a catalog holding the built-in modules.
func LoadEmbedded(log *logging.Logger) (*Store, error) {
	s := New(log)
	if err := s.loadFS(builtin, "data"); err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	return s, nil
}

// LoadDir adds every module document under dir. Modules with an id that is
// already present replace the earlier definition.
func (s *Store) LoadDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("catalog dir: %w", err)
	}
	return s.loadFS(os.DirFS(dir), ".")
}

// Add parses a single YAML document and adds it. Invalid documents are
// rejected with an error.
func (s *Store) Add(data []byte) (*Module, error) {
	m, err := parseModule(data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.modules[m.ID] = m
	s.mu.Unlock()
	return m, nil
}

// Lookup returns the module with the given id.
func (s *Store) Lookup(id string) (*Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.modules[id]
	if !ok {
		return nil, fmt.Errorf("module %q: %w", id, ErrModuleNotFound)
	}
	return m, nil
}

// All returns every module ordered by id.
func (s *Store) All() []*Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Module, 0, len(s.modules))
	for _, m := range s.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of loaded modules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

func (s *Store) loadFS(fsys fs.FS, root string) error {
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		m, err := s.Add(data)
		if err != nil {
			// Skip the document; the rest of the catalog still loads.
			s.log.Warn("skipping invalid module document", "path", path, "error", err)
			return nil
		}
		s.log.Debug("module loaded", "id", m.ID, "steps", len(m.Steps))
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("catalog loaded", "modules", s.Len())
	return nil
}
