package shellcache

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrBucketDeleted is returned by writes to a bucket that was deleted after
// it was opened.
var ErrBucketDeleted = errors.New("shellcache: bucket deleted")

// Bucket is one named cache. Each entry is replaced atomically.
type Bucket interface {
	// Match returns the stored response for key, or nil when absent.
	Match(ctx context.Context, key string) (*Response, error)
	Put(ctx context.Context, key string, resp *Response) error
	// PutAll stores every entry or none of them.
	PutAll(ctx context.Context, entries map[string]*Response) error
}

// Storage holds the named buckets.
type Storage interface {
	// Open returns the bucket, creating it when missing.
	Open(ctx context.Context, name string) (Bucket, error)
	// Lookup returns the bucket, or nil when it does not exist. It never creates.
	Lookup(ctx context.Context, name string) (Bucket, error)
	Keys(ctx context.Context) ([]string, error)
	// Delete removes the bucket and reports whether it existed.
	Delete(ctx context.Context, name string) (bool, error)
}

// MemoryStorage keeps buckets in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	buckets map[string]*memoryBucket
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{buckets: make(map[string]*memoryBucket)}
}

func (s *MemoryStorage) Open(_ context.Context, name string) (Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[name]
	if !ok {
		b = &memoryBucket{entries: make(map[string]*Response)}
		s.buckets[name] = b
	}
	return b, nil
}

func (s *MemoryStorage) Lookup(_ context.Context, name string) (Bucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[name]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (s *MemoryStorage) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStorage) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[name]
	if ok {
		b.drop()
	}
	delete(s.buckets, name)
	return ok, nil
}

type memoryBucket struct {
	mu      sync.RWMutex
	entries map[string]*Response
	deleted bool
}

func (b *memoryBucket) drop() {
	b.mu.Lock()
	b.deleted = true
	b.entries = nil
	b.mu.Unlock()
}

func (b *memoryBucket) Match(_ context.Context, key string) (*Response, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entries[key].Clone(), nil
}

func (b *memoryBucket) Put(_ context.Context, key string, resp *Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleted {
		return ErrBucketDeleted
	}
	b.entries[key] = resp.Clone()
	return nil
}

func (b *memoryBucket) PutAll(_ context.Context, entries map[string]*Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleted {
		return ErrBucketDeleted
	}
	for k, v := range entries {
		b.entries[k] = v.Clone()
	}
	return nil
}
