/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"fmt"
	"strings"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/errors"
)

// Filter is a predicate over a candidate class.
type Filter interface {
	Match(class *catalog.Class, r catalog.Resolver) bool
	// Validate checks that every name the filter references resolves.
	Validate(r catalog.Resolver) error
	String() string
}

// Filter kinds accepted by Parse.
const (
	KindAnnotation       = "annotation"
	KindAssignable       = "assignable"
	kindAnnotationLong   = "annotation-presence"
	kindAssignableLong   = "assignable-to"
	kindAssignableStrict = "assignable-self-excluded"
)

// AnnotationPresence matches classes carrying Marker, directly or through an
// embedded class when the marker is inherited.
type AnnotationPresence struct {
	Marker string
}

func (f AnnotationPresence) Match(class *catalog.Class, r catalog.Resolver) bool {
	return catalog.HasMarker(r, class, f.Marker)
}

func (f AnnotationPresence) Validate(r catalog.Resolver) error {
	if _, ok := r.Marker(f.Marker); !ok {
		return fmt.Errorf("marker %q is not declared", f.Marker)
	}
	return nil
}

func (f AnnotationPresence) String() string {
	return KindAnnotation + "(" + f.Marker + ")"
}

// AssignableTo matches Base and every class deriving from it. ExcludeSelf
// drops Base itself, leaving only its subtypes.
type AssignableTo struct {
	Base        string
	ExcludeSelf bool
}

func (f AssignableTo) Match(class *catalog.Class, r catalog.Resolver) bool {
	if f.ExcludeSelf && class.Name == f.Base {
		return false
	}
	return catalog.IsAssignable(r, class, f.Base)
}

func (f AssignableTo) Validate(r catalog.Resolver) error {
	if _, ok := r.Lookup(f.Base); !ok {
		return errors.NewUnknownClassError(f.Base)
	}
	return nil
}

func (f AssignableTo) String() string {
	if f.ExcludeSelf {
		return kindAssignableStrict + "(" + f.Base + ")"
	}
	return KindAssignable + "(" + f.Base + ")"
}

// Parse builds a filter from its declarative kind and expression.
func Parse(kind, expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, errors.NewValidationError("expression", "filter expression is required")
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindAnnotation, kindAnnotationLong:
		return AnnotationPresence{Marker: expression}, nil
	case KindAssignable, kindAssignableLong:
		return AssignableTo{Base: expression}, nil
	case kindAssignableStrict:
		return AssignableTo{Base: expression, ExcludeSelf: true}, nil
	default:
		return nil, errors.NewValidationError("type", fmt.Sprintf("unknown filter kind %q", kind))
	}
}

// Set composes include and exclude filters. Exclusion wins over inclusion.
type Set struct {
	Include []Filter
	Exclude []Filter
}

// Accept reports whether class passes the set: no include filter or any
// include filter matching, and no exclude filter matching.
func (s Set) Accept(class *catalog.Class, r catalog.Resolver) bool {
	for _, f := range s.Exclude {
		if f.Match(class, r) {
			return false
		}
	}
	if len(s.Include) == 0 {
		return true
	}
	for _, f := range s.Include {
		if f.Match(class, r) {
			return true
		}
	}
	return false
}

// Validate checks every filter of the set.
func (s Set) Validate(r catalog.Resolver) error {
	for i, f := range s.Include {
		if err := f.Validate(r); err != nil {
			return errors.NewConfigurationError("", fmt.Sprintf("include-filters[%d]", i), f.String(), err)
		}
	}
	for i, f := range s.Exclude {
		if err := f.Validate(r); err != nil {
			return errors.NewConfigurationError("", fmt.Sprintf("exclude-filters[%d]", i), f.String(), err)
		}
	}
	return nil
}
