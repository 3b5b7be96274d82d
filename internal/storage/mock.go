package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockStorage is an in-memory BlobStorage used in tests and local runs.
type MockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	host    string
	counter int

	// Error injection
	PutError    error
	DeleteError error
	ListError   error
}

// NewMockStorage creates an empty in-memory store. URLs are built against
// the given host (e.g. "bucket.s3.us-east-1.amazonaws.com").
func NewMockStorage(host string) *MockStorage {
	return &MockStorage{
		objects: make(map[string][]byte),
		host:    host,
	}
}

// Put stores data under a deterministic sequential name.
func (s *MockStorage) Put(ctx context.Context, data []byte, extension, folder string) (string, error) {
	if s.PutError != nil {
		return "", s.PutError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	key := fmt.Sprintf("%s/object-%d%s", strings.Trim(folder, "/"), s.counter, extension)
	s.objects[key] = data
	return fmt.Sprintf("https://%s/%s", s.host, key), nil
}

// DeleteMany removes keys that exist and returns the count removed.
func (s *MockStorage) DeleteMany(ctx context.Context, keys []string) (int, error) {
	if s.DeleteError != nil {
		return 0, s.DeleteError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for _, key := range keys {
		if _, ok := s.objects[key]; ok {
			delete(s.objects, key)
			deleted++
		}
	}
	return deleted, nil
}

// List returns objects stored under folder.
func (s *MockStorage) List(ctx context.Context, folder string) ([]Object, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.Trim(folder, "/") + "/"
	var objects []Object
	for key, data := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, Object{
				Key:          key,
				URL:          fmt.Sprintf("https://%s/%s", s.host, key),
				Size:         int64(len(data)),
				LastModified: time.Now(),
			})
		}
	}
	return objects, nil
}

// Len returns the number of stored objects. Test helper.
func (s *MockStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Has reports whether a key exists. Test helper.
func (s *MockStorage) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}
