package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/io"
)

// FileStore saves designs as JSON files in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store rooted at dir.
// If dir is empty, defaults to ~/.config/cabinetry/designs/.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "cabinetry", "designs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create design dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the design files.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Save(ctx context.Context, name string, c *cabinet.Cabinet) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".design-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := io.WriteJSON(c, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(n)); err != nil {
		return fmt.Errorf("save design %s: %w", n, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*cabinet.Cabinet, error) {
	n, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := io.ImportJSON(s.path(n))
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "design %q not found", n)
	}
	return c, err
}

func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read design dir: %w", err)
	}
	var out []Info
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: strings.TrimSuffix(e.Name(), ".json"), UpdatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(n)); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "design %q not found", n)
		}
		return fmt.Errorf("remove design %s: %w", n, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
