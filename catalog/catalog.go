/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/resthub/errors"
)

// MarkerInfo describes a declared marker.
type MarkerInfo struct {
	Name string
	// Inherited markers are visible on every class that embeds a class declaring them.
	Inherited bool
}

// Resolver gives read access to class and marker metadata.
type Resolver interface {
	Lookup(name string) (*Class, bool)
	Marker(name string) (MarkerInfo, bool)
}

type markerEntry struct {
	MarkerInfo
	explicit bool
}

// Catalog is a static class registry populated through explicit registration,
// usually from generated init() functions.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
	markers map[string]markerEntry
}

var defaultCatalog = New()

// Default returns the process-wide catalog used by generated registration code.
func Default() *Catalog {
	return defaultCatalog
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{
		classes: make(map[string]*Class),
		markers: make(map[string]markerEntry),
	}
}

// Register adds a class. Registering an identical class again is a no-op;
// registering a different shape under the same name fails.
func (c *Catalog) Register(class Class) error {
	if err := class.normalize(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.classes[class.Name]; ok {
		if !existing.sameShape(&class) {
			return errors.NewAlreadyExistsError("class", class.Name)
		}
		if existing.New == nil && class.New != nil {
			existing.New = class.New
			existing.Type = class.Type
		}
		return nil
	}

	for _, m := range class.Markers {
		if _, ok := c.markers[m]; !ok {
			c.markers[m] = markerEntry{MarkerInfo: MarkerInfo{Name: m}}
		}
	}
	c.classes[class.Name] = class.clone()
	return nil
}

// MustRegister is Register that panics, for use in init functions.
func (c *Catalog) MustRegister(classes ...Class) {
	for _, class := range classes {
		if err := c.Register(class); err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
	}
}

// DeclareMarker declares a marker and whether it is inherited through Extends.
// A marker first seen on a registered class is implicitly non-inherited and
// may be redeclared once explicitly.
func (c *Catalog) DeclareMarker(name string, inherited bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("marker", "name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.markers[name]; ok && existing.explicit && existing.Inherited != inherited {
		return fmt.Errorf("catalog: marker %q already declared with inherited=%t", name, existing.Inherited)
	}
	c.markers[name] = markerEntry{MarkerInfo: MarkerInfo{Name: name, Inherited: inherited}, explicit: true}
	return nil
}

// Lookup returns a copy of the class registered under name.
func (c *Catalog) Lookup(name string) (*Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	class, ok := c.classes[name]
	if !ok {
		return nil, false
	}
	return class.clone(), true
}

// Marker returns the marker declaration for name.
func (c *Catalog) Marker(name string) (MarkerInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.markers[name]
	return m.MarkerInfo, ok
}

// Enumerate returns every class whose package is root or nested below it,
// sorted by name. An empty root enumerates the whole catalog.
func (c *Catalog) Enumerate(_ context.Context, root string) ([]*Class, error) {
	root = strings.TrimSuffix(root, "/")

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Class
	for _, class := range c.classes {
		if UnderPackage(class.Package, root) {
			out = append(out, class.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Classes returns every registered class sorted by name.
func (c *Catalog) Classes() []*Class {
	out, _ := c.Enumerate(context.Background(), "")
	return out
}

// Len returns the number of registered classes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// Reset removes every class and marker.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes = make(map[string]*Class)
	c.markers = make(map[string]markerEntry)
}

// UnderPackage reports whether pkg equals root or is nested below it.
func UnderPackage(pkg, root string) bool {
	return root == "" || pkg == root || strings.HasPrefix(pkg, root+"/")
}
