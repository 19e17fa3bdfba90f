/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Class describes one type the scanner can discover. Name is the fully
// qualified identifier ("import/path.TypeName") used as the set element
// everywhere else in the module.
type Class struct {
	Name    string
	Package string

	// Abstract classes can anchor filters but are never discovered as entities
	// unless a scan explicitly asks for them.
	Abstract  bool
	Interface bool

	// Markers are the tags declared directly on the type.
	Markers []string
	// Extends lists embedded types. Inheritable markers propagate along it.
	Extends []string
	// Implements lists capability interfaces. Markers never propagate along it.
	Implements []string

	// Type and New are set for classes described by reflection.
	Type reflect.Type
	New  func() any
}

// SimpleName returns the type name without its package path.
func (c *Class) SimpleName() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// Instantiable reports whether the class can be a discovered entity.
func (c *Class) Instantiable() bool {
	return !c.Abstract && !c.Interface
}

// Declares reports whether marker is declared directly on the class.
func (c *Class) Declares(marker string) bool {
	return slices.Contains(c.Markers, marker)
}

// SplitName splits "import/path.TypeName" into its package and type name.
func SplitName(name string) (pkg, typeName string, ok bool) {
	slash := strings.LastIndex(name, "/")
	dot := strings.LastIndex(name, ".")
	if dot <= slash || dot == len(name)-1 || dot == 0 {
		return "", "", false
	}
	return name[:dot], name[dot+1:], true
}

func (c *Class) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	pkg, _, ok := SplitName(c.Name)
	if !ok {
		return fmt.Errorf("catalog: class name %q must be of the form import/path.TypeName", c.Name)
	}
	if c.Package == "" {
		c.Package = pkg
	}
	if c.Package != pkg {
		return fmt.Errorf("catalog: class %q declares package %q", c.Name, c.Package)
	}
	if c.Interface {
		c.Abstract = true
	}
	c.Markers = compact(c.Markers)
	c.Extends = compact(c.Extends)
	c.Implements = compact(c.Implements)
	return nil
}

func (c *Class) clone() *Class {
	cp := *c
	cp.Markers = slices.Clone(c.Markers)
	cp.Extends = slices.Clone(c.Extends)
	cp.Implements = slices.Clone(c.Implements)
	return &cp
}

// sameShape compares metadata, ignoring Type and New.
func (c *Class) sameShape(o *Class) bool {
	return c.Name == o.Name &&
		c.Package == o.Package &&
		c.Abstract == o.Abstract &&
		c.Interface == o.Interface &&
		slices.Equal(c.Markers, o.Markers) &&
		slices.Equal(c.Extends, o.Extends) &&
		slices.Equal(c.Implements, o.Implements)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
