package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileStore persists each namespace as one yaml file in a state directory.
// Writes go through a temp file plus rename, so a power cut mid-write never
// leaves a namespace half-written: the old file survives until the new one
// is complete.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Open loads the namespace file. A missing file is an empty namespace, not
// an error — defaults cover first boot.
func (s *FileStore) Open(namespace string) (Bucket, error) {
	path := filepath.Join(s.dir, namespace+".yaml")

	values := make(map[string]string)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse namespace %s: %w", namespace, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open namespace %s: %w", namespace, err)
	}

	return &fileBucket{path: path, values: values}, nil
}

type fileBucket struct {
	path   string
	values map[string]string
	dirty  bool
}

func (b *fileBucket) GetInt(key string, def int) int {
	raw, ok := b.values[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func (b *fileBucket) PutInt(key string, v int) error {
	return b.PutString(key, strconv.Itoa(v))
}

func (b *fileBucket) GetString(key, def string) string {
	if v, ok := b.values[key]; ok {
		return v
	}
	return def
}

func (b *fileBucket) PutString(key, v string) error {
	b.values[key] = v
	b.dirty = true
	return nil
}

// Close writes the namespace back if anything changed.
func (b *fileBucket) Close() error {
	if !b.dirty {
		return nil
	}

	data, err := yaml.Marshal(b.values)
	if err != nil {
		return fmt.Errorf("marshal namespace: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write namespace: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit namespace: %w", err)
	}

	b.dirty = false
	return nil
}
