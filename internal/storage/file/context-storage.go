package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
)

const contextExt = ".json"

// ContextStorage keeps every conversation in its own JSON file under dir.
type ContextStorage struct {
	dir string
}

func NewContextStorage(dir string) (*ContextStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create context dir %s: %w", dir, err)
	}
	return &ContextStorage{dir: dir}, nil
}

func (s *ContextStorage) Load(_ context.Context, name string) (*model.Context, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLoadFailure, err)
	}
	conv := model.NewContext()
	if err = json.Unmarshal(data, conv); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", model.ErrLoadFailure, path, err)
	}
	return conv, nil
}

// Save overwrites any existing file with the same name.
func (s *ContextStorage) Save(_ context.Context, name string, conv *model.Context) error {
	path := s.path(name)
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode context: %w", model.ErrSaveFailure, err)
	}
	if err = writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSaveFailure, err)
	}
	return nil
}

// List returns the names of the saved contexts in dir, sorted.
func (s *ContextStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read context dir %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != contextExt {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// path resolves bare names inside dir. Names that already carry a directory
// are used as given.
func (s *ContextStorage) path(name string) string {
	if filepath.Ext(name) == "" {
		name += contextExt
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return name
	}
	return filepath.Join(s.dir, name)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ctx-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
