// Package pgdb provides the Postgres docstore backend. Documents live in a
// single JSONB table; equality filters compile to `data->>field` comparisons
// so no per-collection schema or composite index is ever needed.
package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
)

type store struct {
	db *sqlx.DB
}

var _ docstore.Store = (*store)(nil)

func Open(url string) (docstore.Store, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return &store{db: db}, nil
}

// DB exposes the underlying handle for migrations; nil for other backends.
func DB(s docstore.Store) *sql.DB {
	if pgs, ok := s.(*store); ok {
		return pgs.db.DB
	}
	return nil
}

func (s *store) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	return id, s.Set(ctx, collection, id, doc)
}

func (s *store) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, data,
	)
	return errors.Wrap(err, "upserting document")
}

func (s *store) Get(ctx context.Context, collection, id string) (docstore.Record, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err == sql.ErrNoRows {
		return docstore.Record{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Record{}, errors.Wrap(err, "getting document")
	}
	return docstore.Record{ID: id, Data: data}, nil
}

func (s *store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "marshalling fields")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, patch,
	)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	return errors.Wrap(err, "deleting document")
}

func (s *store) Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Record, error) {
	query := new(strings.Builder)
	query.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)
	args := []interface{}{collection}
	for _, f := range filters {
		args = append(args, f.Field, fmt.Sprint(f.Value))
		fmt.Fprintf(query, ` AND data->>$%d = $%d`, len(args)-1, len(args))
	}

	rows, err := s.db.QueryxContext(ctx, query.String(), args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	defer rows.Close()

	var recs []docstore.Record
	for rows.Next() {
		var rec docstore.Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, errors.Wrap(err, "scanning document")
		}
		recs = append(recs, rec)
	}
	return recs, errors.Wrap(rows.Err(), "iterating documents")
}

func (s *store) Close() error { return s.db.Close() }
