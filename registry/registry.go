/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"

	"github.com/suparena/resthub/catalog"
)

// DefaultUnit is the persistence unit used when a declaration names none.
const DefaultUnit = "resthub"

// Registry maps persistence unit names to the entity classes discovered for
// them. Registration is a set union, so the final state of a unit does not
// depend on the order in which scans are registered.
type Registry struct {
	mu    sync.RWMutex
	units map[string]catalog.Names
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, creating it on first use.
// Prefer passing a *Registry explicitly; Default exists for generated
// bootstrap code and single-context applications.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		units: make(map[string]catalog.Names),
	}
}

// Register merges classes into unit, creating the unit if absent.
// Registering a class already present is a no-op.
func (r *Registry) Register(unit string, classes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.units[unit]
	if !ok {
		set = catalog.NewNames()
		r.units[unit] = set
	}
	set.Add(classes...)
}

// RegisterSet merges a scan result into unit.
func (r *Registry) RegisterSet(unit string, classes catalog.Names) {
	r.Register(unit, classes.Sorted()...)
}

// Get returns a sorted snapshot of the classes registered for unit.
// An unknown unit yields an empty slice.
func (r *Registry) Get(unit string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.units[unit]
	if !ok {
		return []string{}
	}
	return set.Sorted()
}

// Contains reports whether class is registered for unit.
func (r *Registry) Contains(unit, class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.units[unit]
	return ok && set.Has(class)
}

// Units returns the names of every known unit, sorted.
func (r *Registry) Units() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make([]string, 0, len(r.units))
	for unit := range r.units {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}

// ClearPersistenceUnit removes unit entirely. Other units are untouched and
// clearing an unknown unit is a no-op.
func (r *Registry) ClearPersistenceUnit(unit string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.units, unit)
}

// Reset removes every unit.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units = make(map[string]catalog.Names)
}
