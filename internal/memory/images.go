package memory

import (
	"context"
	"fmt"
	"slices"
)

type imageStore struct {
	s *Store
}

func (i *imageStore) Put(_ context.Context, path, contentType string, data []byte) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}

	i.s.mu.Lock()
	defer i.s.mu.Unlock()

	i.s.objects[path] = object{contentType: contentType, data: slices.Clone(data)}

	return "memory://" + path, nil
}

func (i *imageStore) Delete(_ context.Context, path string) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()

	delete(i.s.objects, path)

	return nil
}

// Object reports whether path was stored, for tests.
func (s *Store) Object(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[path]
	return o.data, ok
}
