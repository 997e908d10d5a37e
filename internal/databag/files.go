package databag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"
)

// FileStore serves bags loaded from a directory. Each file is one bag
// named after the file without its extension. Supported formats are
// .ini (Lektor style), .json, .yaml and .yml.
//
// Reload swaps the whole set atomically; readers never see a partial load.
type FileStore struct {
	dir string

	mu   sync.RWMutex
	bags map[string]map[string]string
}

// NewFileStore loads every bag in dir. A missing directory is an empty store.
func NewFileStore(dir string) (*FileStore, error) {
	s := &FileStore{dir: dir, bags: map[string]map[string]string{}}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory the store reads from.
func (s *FileStore) Dir() string {
	return s.dir
}

// IsBagFile reports whether path has a databag extension.
func IsBagFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Reload re-reads every bag file. On error the previous bags are kept.
func (s *FileStore) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.swap(map[string]map[string]string{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("databag dir %s: %w", s.dir, err)
	}

	bags := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !IsBagFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		bag, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("databag %s: %w", path, err)
		}
		if _, dup := bags[name]; dup {
			slog.Warn("databag defined twice, keeping first", "bag", name, "file", path)
			continue
		}
		bags[name] = bag
	}

	s.swap(bags)
	slog.Debug("databags loaded", "dir", s.dir, "count", len(bags))
	return nil
}

func (s *FileStore) swap(bags map[string]map[string]string) {
	s.mu.Lock()
	s.bags = bags
	s.mu.Unlock()
}

// Bag implements Store. The returned map must not be modified.
func (s *FileStore) Bag(_ context.Context, name string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bag, ok := s.bags[name]
	if !ok {
		return nil, ErrBagNotFound
	}
	return bag, nil
}

// Names returns the loaded bag names, sorted.
func (s *FileStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.bags))
	for name := range s.bags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadFile(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return loadINI(path)
	case ".json":
		return loadDecoded(path, json.Unmarshal)
	default:
		return loadDecoded(path, yaml.Unmarshal)
	}
}

// loadINI reads a Lektor databag. Only '=' separates keys from values
// so keys may contain colons.
func loadINI(path string) (map[string]string, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, err
	}

	bag := make(map[string]string)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name() + "."
		}
		for _, key := range section.Keys() {
			bag[prefix+key.Name()] = key.String()
		}
	}
	return bag, nil
}

func loadDecoded(path string, unmarshal func([]byte, any) error) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}

	bag := make(map[string]string)
	flatten(bag, "", doc)
	return bag, nil
}

// flatten writes nested maps as dotted keys. Lists and scalars are
// formatted with fmt.
func flatten(dst map[string]string, prefix string, v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			flatten(dst, joinKey(prefix, k), child)
		}
	case nil:
		dst[prefix] = ""
	default:
		dst[prefix] = fmt.Sprint(val)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
