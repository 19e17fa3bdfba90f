/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package scanner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/filter"
)

// Enumerator lists every class whose package is root or nested below it.
// An unknown root yields no classes and no error.
type Enumerator interface {
	Enumerate(ctx context.Context, root string) ([]*catalog.Class, error)
}

// Spec is one scan request.
type Spec struct {
	// Patterns are package patterns: an exact import path, "pkg/**" or
	// "pkg/..." for a package and its descendants, "*" for one segment.
	Patterns []string
	Filters  filter.Set
	// IncludeAbstract keeps abstract classes and interfaces in the result.
	IncludeAbstract bool
}

// Scanner discovers entity classes under package patterns.
type Scanner struct {
	enum     Enumerator
	resolver catalog.Resolver
	logger   *zap.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the scanner logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scanner reading classes from enum and resolving supertypes
// and markers through resolver.
func New(enum Enumerator, resolver catalog.Resolver, opts ...Option) *Scanner {
	s := &Scanner{
		enum:     enum,
		resolver: resolver,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the deduplicated names of the classes selected by spec.
// A pattern that selects no package contributes nothing and does not stop
// the remaining patterns.
func (s *Scanner) Scan(ctx context.Context, spec Spec) (catalog.Names, error) {
	result := catalog.NewNames()

	for _, raw := range spec.Patterns {
		pattern, err := NormalizePattern(raw)
		if err != nil {
			return nil, err
		}

		classes, err := s.enum.Enumerate(ctx, enumerationRoot(pattern))
		if err != nil {
			return nil, fmt.Errorf("enumerate %q: %w", raw, err)
		}

		packages := catalog.NewNames()
		for _, class := range classes {
			if !matchPackage(pattern, class.Package) {
				continue
			}
			packages.Add(class.Package)

			if !class.Instantiable() && !spec.IncludeAbstract {
				continue
			}
			if spec.Filters.Accept(class, s.resolver) {
				result.Add(class.Name)
			}
		}

		if packages.Len() == 0 {
			s.logger.Warn("Package pattern matched no classes", zap.String("pattern", raw))
			continue
		}
		s.logger.Debug("Scanned package pattern",
			zap.String("pattern", raw),
			zap.Int("packages", packages.Len()),
		)
	}

	return result, nil
}
