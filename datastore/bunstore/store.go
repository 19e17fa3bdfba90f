/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bunstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/uptrace/bun"

	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

// Store implements datastore.DataStore[T] on a bun model. T must be a bun
// model struct with a single primary key column holding the resource ID.
type Store[T any] struct {
	db   bun.IDB
	pk   string
	name string
}

var _ datastore.DataStore[struct{}] = (*Store[struct{}])(nil)

// New creates a Store for T. db is usually a *bun.DB; a bun.Tx works too.
func New[T any](db *bun.DB) (*Store[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bunstore: %s is not a struct", typ)
	}

	table := db.Table(typ)
	if len(table.PKs) != 1 {
		return nil, fmt.Errorf("bunstore: %s must have exactly one primary key, has %d", typ, len(table.PKs))
	}

	return &Store[T]{
		db:   db,
		pk:   table.PKs[0].Name,
		name: datastore.EntityName[T](),
	}, nil
}

// WithTx returns a copy of the store running on tx.
func (s *Store[T]) WithTx(tx bun.Tx) *Store[T] {
	cp := *s
	cp.db = tx
	return &cp
}

func (s *Store[T]) byID(q *bun.SelectQuery, id string) *bun.SelectQuery {
	return q.Where("?TableAlias.? = ?", bun.Ident(s.pk), id)
}

// Create inserts entity, assigning an ID when it has none.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "is required")
	}
	id, err := datastore.EnsureID(entity)
	if err != nil {
		return err
	}

	exists, err := s.byID(s.db.NewSelect().Model((*T)(nil)), id).Exists(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: check %s %s: %w", s.name, id, err)
	}
	if exists {
		return errors.NewAlreadyExistsError(s.name, id)
	}

	if _, err := s.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: insert %s %s: %w", s.name, id, err)
	}
	return nil
}

// Save updates the row with the entity ID, inserting it when absent.
func (s *Store[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "is required")
	}
	id, err := datastore.IDOf(entity)
	if err != nil {
		return err
	}

	res, err := s.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: update %s %s: %w", s.name, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	if _, err := s.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: insert %s %s: %w", s.name, id, err)
	}
	return nil
}

// FindByID loads one entity.
func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	entity := new(T)
	err := s.byID(s.db.NewSelect().Model(entity), id).Limit(1).Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(s.name, id)
		}
		return nil, fmt.Errorf("bunstore: select %s %s: %w", s.name, id, err)
	}
	return entity, nil
}

// FindAll loads one page ordered by primary key.
func (s *Store[T]) FindAll(ctx context.Context, page storagemodels.PageRequest) (*storagemodels.Page[T], error) {
	page = page.Normalized()

	var items []T
	total, err := s.db.NewSelect().
		Model(&items).
		OrderExpr("?TableAlias.? ASC", bun.Ident(s.pk)).
		Offset(page.Offset).
		Limit(page.Limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("bunstore: list %s: %w", s.name, err)
	}
	if items == nil {
		items = []T{}
	}

	return &storagemodels.Page[T]{Items: items, Total: total, Offset: page.Offset, Limit: page.Limit}, nil
}

// Count returns the number of rows.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*T)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("bunstore: count %s: %w", s.name, err)
	}
	return n, nil
}

// Delete removes the row with the given ID.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident(s.pk), id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: delete %s %s: %w", s.name, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(s.name, id)
	}
	return nil
}

// Stream pages through every row in primary key order.
func (s *Store[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	fetch := func(ctx context.Context, cursor any, limit int32) ([]T, any, error) {
		offset, _ := cursor.(int)

		var items []T
		err := s.db.NewSelect().
			Model(&items).
			OrderExpr("?TableAlias.? ASC", bun.Ident(s.pk)).
			Offset(offset).
			Limit(int(limit)).
			Scan(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("bunstore: stream %s: %w", s.name, err)
		}
		if len(items) == 0 || len(items) < int(limit) {
			return items, nil, nil
		}
		return items, offset + len(items), nil
	}
	return datastore.StreamPages(ctx, fetch, nil, opts...)
}
