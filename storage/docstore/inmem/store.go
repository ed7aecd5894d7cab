// Package inmemdb provides the in-memory docstore backend used in DEV|TEST
// mode and by the handler tests.
package inmemdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
)

type store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte // collection -> id -> JSON doc
}

var _ docstore.Store = (*store)(nil)

func Open() docstore.Store {
	return &store{collections: make(map[string]map[string][]byte)}
}

// table returns the collection map, creating it if absent. Callers must hold
// the write lock; read paths index s.collections directly so a missing
// collection stays a nil map.
func (s *store) table(collection string) map[string][]byte {
	tbl, ok := s.collections[collection]
	if !ok {
		tbl = make(map[string][]byte)
		s.collections[collection] = tbl
	}
	return tbl
}

func (s *store) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	return id, s.Set(ctx, collection, id, doc)
}

func (s *store) Set(_ context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table(collection)[id] = data
	return nil
}

func (s *store) Get(_ context.Context, collection, id string) (docstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return docstore.Record{}, docstore.ErrNotFound
	}
	return docstore.Record{ID: id, Data: data}, nil
}

func (s *store) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl := s.table(collection)
	data, ok := tbl[id]
	if !ok {
		return docstore.ErrNotFound
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "unmarshalling document")
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	tbl[id] = merged
	return nil
}

func (s *store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func (s *store) Query(_ context.Context, collection string, filters ...docstore.Filter) ([]docstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []docstore.Record
	for id, data := range s.collections[collection] {
		ok, err := matches(data, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			recs = append(recs, docstore.Record{ID: id, Data: data})
		}
	}
	return recs, nil
}

func (s *store) Close() error { return nil }

func matches(data []byte, filters []docstore.Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, errors.Wrap(err, "unmarshalling document")
	}
	for _, f := range filters {
		val, ok := doc[f.Field]
		if !ok || fmt.Sprint(val) != fmt.Sprint(f.Value) {
			return false, nil
		}
	}
	return true, nil
}
