/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag read from an embedded Meta field.
const TagKey = "resthub"

// Meta carries class markers in its struct tag:
//
//	type User struct {
//	    catalog.Meta `resthub:"entity,cacheable" bun:"-"`
//	    model.Resource
//	}
type Meta struct{}

var metaType = reflect.TypeOf(Meta{})

// Option adjusts a described class.
type Option func(*Class)

// WithMarkers adds markers to the class.
func WithMarkers(markers ...string) Option {
	return func(c *Class) {
		c.Markers = append(c.Markers, markers...)
	}
}

// WithExtends adds embedded supertypes that reflection cannot see.
func WithExtends(names ...string) Option {
	return func(c *Class) {
		c.Extends = append(c.Extends, names...)
	}
}

// WithImplements adds capability interfaces by name.
func WithImplements(names ...string) Option {
	return func(c *Class) {
		c.Implements = append(c.Implements, names...)
	}
}

// Implementing adds the interface I to the class capabilities.
func Implementing[I any]() Option {
	return WithImplements(NameOf[I]())
}

// AsAbstract marks the class as a filter anchor that is never discovered.
func AsAbstract() Option {
	return func(c *Class) {
		c.Abstract = true
		c.New = nil
	}
}

// TypeName returns the fully qualified name of t, dereferencing pointers.
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// NameOf returns the fully qualified name of T.
func NameOf[T any]() string {
	return TypeName(reflect.TypeOf((*T)(nil)).Elem())
}

// Describe builds a Class for T by reflection. Embedded named structs become
// Extends, embedded named interfaces become Implements and the tag of an
// embedded Meta becomes Markers. Stateless embeds such as bun.BaseModel are
// skipped.
func Describe[T any](opts ...Option) Class {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	class := Class{
		Name:    TypeName(t),
		Package: t.PkgPath(),
		Type:    t,
	}

	switch t.Kind() {
	case reflect.Interface:
		class.Interface = true
		class.Abstract = true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.Anonymous {
				continue
			}
			ft := field.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft == metaType {
				class.Markers = append(class.Markers, ParseTag(field.Tag.Get(TagKey))...)
				continue
			}
			if ft.Name() == "" {
				continue
			}
			switch ft.Kind() {
			case reflect.Struct:
				if ft.NumField() > 0 {
					class.Extends = append(class.Extends, TypeName(ft))
				}
			case reflect.Interface:
				class.Implements = append(class.Implements, TypeName(ft))
			}
		}
	}

	if !class.Interface {
		class.New = func() any { return reflect.New(t).Interface() }
	}
	for _, opt := range opts {
		opt(&class)
	}
	return class
}

// DescribeInterface builds an abstract Class for the interface I.
func DescribeInterface[I any](opts ...Option) Class {
	t := reflect.TypeOf((*I)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("catalog: DescribeInterface called with non-interface %s", t))
	}
	return Describe[I](opts...)
}

// ParseTag splits a comma separated marker list.
func ParseTag(tag string) []string {
	var out []string
	for _, part := range strings.Split(tag, ",") {
		if part = strings.TrimSpace(part); part != "" && part != "-" {
			out = append(out, part)
		}
	}
	return out
}
