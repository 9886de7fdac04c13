package mediasvc

import (
	"bytes"
	"context"
	"io"
	"path"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
)

// Object is a file held by the memory store.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore keeps uploads in memory. Meant for tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]Object
	err     error
}

var _ core.MediaStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

// FailWith makes every following upload fail with err (nil resets it).
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *MemoryStore) Upload(_ context.Context, folder, key, contentType string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", errors.Wrap(err, "reading object")
	}
	name := path.Join(folder, key)
	s.objects[name] = Object{ContentType: contentType, Data: buf.Bytes()}
	return "memory://" + name, nil
}

// Get returns the object stored under folder/key.
func (s *MemoryStore) Get(folder, key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[path.Join(folder, key)]
	return obj, ok
}
