/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resthub

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/registry"
)

type daoKey struct {
	unit string
	typ  reflect.Type
}

// DAORegistry holds one DataStore per persistence unit and entity type.
// A DAO can only be registered for a type whose class belongs to the unit.
type DAORegistry struct {
	mu       sync.RWMutex
	registry *registry.Registry
	daos     map[daoKey]any
}

// NewDAORegistry creates a DAORegistry checking membership against reg.
func NewDAORegistry(reg *registry.Registry) *DAORegistry {
	return &DAORegistry{
		registry: reg,
		daos:     make(map[daoKey]any),
	}
}

func keyOf[T any](unit string) daoKey {
	return daoKey{unit: unit, typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// RegisterDAO adds the DataStore for T in unit.
func RegisterDAO[T any](d *DAORegistry, unit string, ds datastore.DataStore[T]) error {
	if ds == nil {
		return errors.NewValidationError("datastore", "is required")
	}
	name := catalog.NameOf[T]()
	if !d.registry.Contains(unit, name) {
		return fmt.Errorf("persistence unit %q: %w", unit, errors.NewUnknownClassError(name))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := keyOf[T](unit)
	if _, exists := d.daos[key]; exists {
		return errors.NewAlreadyExistsError("dao", unit+"/"+name)
	}
	d.daos[key] = ds
	return nil
}

// DAO retrieves the DataStore for T in unit.
func DAO[T any](d *DAORegistry, unit string) (datastore.DataStore[T], error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ds, exists := d.daos[keyOf[T](unit)]
	if !exists {
		return nil, errors.NewNotFoundError("dao", unit+"/"+catalog.NameOf[T]())
	}
	return ds.(datastore.DataStore[T]), nil
}

// RemoveDAO deletes the DataStore for T in unit.
func RemoveDAO[T any](d *DAORegistry, unit string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := keyOf[T](unit)
	if _, exists := d.daos[key]; !exists {
		return errors.NewNotFoundError("dao", unit+"/"+catalog.NameOf[T]())
	}
	delete(d.daos, key)
	return nil
}

// List returns the sorted class names that have a DAO in unit.
func (d *DAORegistry) List(unit string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var names []string
	for key := range d.daos {
		if key.unit == unit {
			names = append(names, catalog.TypeName(key.typ))
		}
	}
	sort.Strings(names)
	return names
}

// ClearPersistenceUnit drops every DAO of unit.
func (d *DAORegistry) ClearPersistenceUnit(unit string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key := range d.daos {
		if key.unit == unit {
			delete(d.daos, key)
		}
	}
}
