package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.Storage = (*Storage)(nil)

type object struct {
	data        []byte
	contentType string
}

// Storage keeps uploaded objects in memory. It stands in for the bucket when
// object storage is disabled.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewStorage() *Storage {
	return &Storage{
		objects: make(map[string]object),
	}
}

func (s *Storage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read object: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: data, contentType: contentType}
	return nil
}

func (s *Storage) Download(_ context.Context, key string) (model.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return model.Object{}, model.ErrNotFound
	}
	return model.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}
