/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import "reflect"

// HasMarker reports whether class carries marker. A marker declared on an
// embedded class counts only when the marker is declared inherited; markers
// on implemented interfaces never count.
func HasMarker(r Resolver, class *Class, marker string) bool {
	if class.Declares(marker) {
		return true
	}
	info, ok := r.Marker(marker)
	if !ok || !info.Inherited {
		return false
	}

	found := false
	walkExtends(r, class, func(parent *Class) bool {
		found = parent.Declares(marker)
		return found
	})
	return found
}

// IsAssignable reports whether class is base or derives from it, transitively,
// through embedding or implemented interfaces. When base is an interface and
// both sides carry reflect types, structural implementation also counts.
func IsAssignable(r Resolver, class *Class, base string) bool {
	if class.Name == base {
		return true
	}

	for _, name := range Supertypes(r, class) {
		if name == base {
			return true
		}
	}

	baseClass, ok := r.Lookup(base)
	if !ok || !baseClass.Interface || baseClass.Type == nil || class.Type == nil {
		return false
	}
	if baseClass.Type.Kind() != reflect.Interface {
		return false
	}
	return class.Type.Implements(baseClass.Type) || reflect.PointerTo(class.Type).Implements(baseClass.Type)
}

// Supertypes returns every name reachable from class through Extends and
// Implements, sorted. Names the resolver cannot find are included but not
// expanded further.
func Supertypes(r Resolver, class *Class) []string {
	seen := NewNames()
	queue := directSupertypes(class, true)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen.Has(name) || name == class.Name {
			continue
		}
		seen.Add(name)
		if parent, ok := r.Lookup(name); ok {
			queue = append(queue, directSupertypes(parent, true)...)
		}
	}
	return seen.Sorted()
}

// walkExtends visits resolvable embedded ancestors breadth first until visit
// returns true.
func walkExtends(r Resolver, class *Class, visit func(*Class) bool) {
	seen := NewNames(class.Name)
	queue := directSupertypes(class, false)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen.Has(name) {
			continue
		}
		seen.Add(name)

		parent, ok := r.Lookup(name)
		if !ok {
			continue
		}
		if visit(parent) {
			return
		}
		queue = append(queue, directSupertypes(parent, false)...)
	}
}

func directSupertypes(class *Class, withInterfaces bool) []string {
	out := append([]string(nil), class.Extends...)
	if withInterfaces {
		out = append(out, class.Implements...)
	}
	return out
}
