package store

import "strconv"

// FakeStore is an in-memory test double. Writes land in Data immediately so
// tests can assert on persisted state without reopening buckets.
type FakeStore struct {
	// Data maps namespace -> key -> value.
	Data map[string]map[string]string

	// OpenError, if set, will be returned by Open.
	OpenError error

	// PutError, if set, will be returned by Put methods.
	PutError error

	// Opened records every namespace that was opened, in order.
	Opened []string
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{Data: make(map[string]map[string]string)}
}

// Seed sets a value directly, creating the namespace if needed.
func (s *FakeStore) Seed(namespace, key, value string) {
	if s.Data[namespace] == nil {
		s.Data[namespace] = make(map[string]string)
	}
	s.Data[namespace][key] = value
}

// Open returns a bucket backed by the shared Data map.
func (s *FakeStore) Open(namespace string) (Bucket, error) {
	if s.OpenError != nil {
		return nil, s.OpenError
	}
	s.Opened = append(s.Opened, namespace)
	if s.Data[namespace] == nil {
		s.Data[namespace] = make(map[string]string)
	}
	return &fakeBucket{store: s, values: s.Data[namespace]}, nil
}

type fakeBucket struct {
	store  *FakeStore
	values map[string]string
	Closed bool
}

func (b *fakeBucket) GetInt(key string, def int) int {
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

func (b *fakeBucket) PutInt(key string, v int) error {
	return b.PutString(key, strconv.Itoa(v))
}

func (b *fakeBucket) GetString(key, def string) string {
	if v, ok := b.values[key]; ok {
		return v
	}
	return def
}

func (b *fakeBucket) PutString(key, v string) error {
	if b.store.PutError != nil {
		return b.store.PutError
	}
	b.values[key] = v
	return nil
}

func (b *fakeBucket) Close() error {
	b.Closed = true
	return nil
}
