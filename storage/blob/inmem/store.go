// Package inmemblob is the in-memory blob backend for DEV|TEST mode.
package inmemblob

import (
	"context"
	"io"
	"io/ioutil"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/storage/blob"
)

type store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte // path -> content
}

var _ blob.Store = (*store)(nil)

func Open(baseURL string) blob.Store {
	return &store{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

func (s *store) Upload(_ context.Context, path string, r io.Reader) (string, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "reading blob content")
	}
	s.mu.Lock()
	s.objects[path] = content
	s.mu.Unlock()
	return s.baseURL + "/" + path, nil
}

func (s *store) Delete(_ context.Context, url string) error {
	path := strings.TrimPrefix(url, s.baseURL+"/")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, path)
	return nil
}

// Object returns the stored content; test helper.
func Object(s blob.Store, path string) ([]byte, bool) {
	st := s.(*store)
	st.mu.RLock()
	defer st.mu.RUnlock()
	content, ok := st.objects[path]
	return content, ok
}
