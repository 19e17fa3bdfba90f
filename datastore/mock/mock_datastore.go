/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory DataStore for tests.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

// DataStore is an in-memory implementation of datastore.DataStore[T].
// Entities are listed in ID order.
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	getKeyFunc  func(entity *T) string
	streamFunc  func(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	createError error
	saveError   error
	findError   error
	deleteError error
}

var _ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities that
// do not implement datastore.Identifiable.
func (m *DataStore[T]) WithGetKeyFunc(f func(*T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithStreamFunc replaces Stream for testing
func (m *DataStore[T]) WithStreamFunc(f func(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]) *DataStore[T] {
	m.streamFunc = f
	return m
}

// WithCreateError makes Create return err
func (m *DataStore[T]) WithCreateError(err error) *DataStore[T] {
	m.createError = err
	return m
}

// WithSaveError makes Save return err
func (m *DataStore[T]) WithSaveError(err error) *DataStore[T] {
	m.saveError = err
	return m
}

// WithFindError makes FindByID, FindAll and Count return err
func (m *DataStore[T]) WithFindError(err error) *DataStore[T] {
	m.findError = err
	return m
}

// WithDeleteError makes Delete return err
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// Create stores a new entity, assigning an ID when needed.
func (m *DataStore[T]) Create(ctx context.Context, entity *T) error {
	if m.createError != nil {
		return m.createError
	}

	key, err := m.key(entity, true)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; exists {
		return errors.NewAlreadyExistsError(datastore.EntityName[T](), key)
	}
	m.data[key] = *entity
	return nil
}

// Save inserts or replaces an entity
func (m *DataStore[T]) Save(ctx context.Context, entity *T) error {
	if m.saveError != nil {
		return m.saveError
	}

	key, err := m.key(entity, false)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = *entity
	return nil
}

// FindByID retrieves an entity by ID
func (m *DataStore[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if m.findError != nil {
		return nil, m.findError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[id]; exists {
		return &entity, nil
	}
	return nil, errors.NewNotFoundError(datastore.EntityName[T](), id)
}

// FindAll returns one page of entities
func (m *DataStore[T]) FindAll(ctx context.Context, page storagemodels.PageRequest) (*storagemodels.Page[T], error) {
	if m.findError != nil {
		return nil, m.findError
	}
	page = page.Normalized()

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := m.sortedKeys()
	result := &storagemodels.Page[T]{Items: []T{}, Total: len(keys), Offset: page.Offset, Limit: page.Limit}
	for i := page.Offset; i < len(keys) && i < page.Offset+page.Limit; i++ {
		result.Items = append(result.Items, m.data[keys[i]])
	}
	return result, nil
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count(ctx context.Context) (int, error) {
	if m.findError != nil {
		return 0, m.findError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data), nil
}

// Delete removes an entity by ID
func (m *DataStore[T]) Delete(ctx context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return errors.NewNotFoundError(datastore.EntityName[T](), id)
	}
	delete(m.data, id)
	return nil
}

// Stream pages through the stored entities in ID order
func (m *DataStore[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, opts...)
	}

	fetch := func(ctx context.Context, cursor any, limit int32) ([]T, any, error) {
		offset, _ := cursor.(int)
		page, err := m.FindAll(ctx, storagemodels.PageRequest{Offset: offset, Limit: int(limit)})
		if err != nil {
			return nil, nil, err
		}
		if !page.HasNext() {
			return page.Items, nil, nil
		}
		return page.Items, offset + len(page.Items), nil
	}
	return datastore.StreamPages(ctx, fetch, nil, opts...)
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]T)
}

func (m *DataStore[T]) key(entity *T, assign bool) (string, error) {
	if entity == nil {
		return "", errors.NewValidationError("entity", "is required")
	}
	if m.getKeyFunc != nil {
		if key := m.getKeyFunc(entity); key != "" {
			return key, nil
		}
		return "", errors.NewValidationError("key", "unable to extract key from entity")
	}
	if assign {
		return datastore.EnsureID(entity)
	}
	return datastore.IDOf(entity)
}

func (m *DataStore[T]) sortedKeys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
