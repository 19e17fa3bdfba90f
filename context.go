/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resthub

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/config"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/registry"
	"github.com/suparena/resthub/scanner"
)

// ClassSource is what a PersistenceContext scans: a class enumerator that
// also resolves markers and supertypes. *catalog.Catalog and
// *sourcescan.Index both qualify.
type ClassSource interface {
	scanner.Enumerator
	catalog.Resolver
}

// PersistenceContext wires a class source, a scanner, a binder and the
// registry that receives the discovered persistence units.
type PersistenceContext struct {
	source   ClassSource
	registry *registry.Registry
	scanner  *scanner.Scanner
	binder   *config.Binder
	logger   *zap.Logger
}

// ContextOption configures a PersistenceContext.
type ContextOption func(*contextOptions)

type contextOptions struct {
	registry    *registry.Registry
	logger      *zap.Logger
	defaultUnit string
}

// WithRegistry records units in reg instead of a fresh registry.
func WithRegistry(reg *registry.Registry) ContextOption {
	return func(o *contextOptions) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithLogger sets the logger shared by the scanner and the binder.
func WithLogger(logger *zap.Logger) ContextOption {
	return func(o *contextOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultUnit sets the unit used by contexts that name none.
func WithDefaultUnit(unit string) ContextOption {
	return func(o *contextOptions) {
		if unit != "" {
			o.defaultUnit = unit
		}
	}
}

// NewPersistenceContext creates a PersistenceContext over source.
func NewPersistenceContext(source ClassSource, opts ...ContextOption) *PersistenceContext {
	o := contextOptions{
		logger:      zap.NewNop(),
		defaultUnit: registry.DefaultUnit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.New()
	}

	s := scanner.New(source, source, scanner.WithLogger(o.logger))
	return &PersistenceContext{
		source:   source,
		registry: o.registry,
		scanner:  s,
		binder: config.NewBinder(s, o.registry, source,
			config.WithLogger(o.logger),
			config.WithDefaultUnit(o.defaultUnit)),
		logger: o.logger,
	}
}

func (pc *PersistenceContext) Registry() *registry.Registry { return pc.registry }

func (pc *PersistenceContext) Scanner() *scanner.Scanner { return pc.scanner }

func (pc *PersistenceContext) Binder() *config.Binder { return pc.binder }

// Load binds the persistence-context documents at paths.
func (pc *PersistenceContext) Load(ctx context.Context, paths ...string) error {
	return pc.binder.LoadFiles(ctx, paths...)
}

// Bind binds an already parsed document.
func (pc *PersistenceContext) Bind(ctx context.Context, doc *config.Document, source string) error {
	return pc.binder.Bind(ctx, doc, source)
}

// Entities returns the sorted class names registered for unit.
func (pc *PersistenceContext) Entities(unit string) []string {
	return pc.registry.Get(unit)
}

// Classes resolves the entities of unit against the class source.
func (pc *PersistenceContext) Classes(unit string) ([]*catalog.Class, error) {
	names := pc.registry.Get(unit)
	classes := make([]*catalog.Class, 0, len(names))
	for _, name := range names {
		class, ok := pc.source.Lookup(name)
		if !ok {
			return nil, errors.NewUnknownClassError(name)
		}
		classes = append(classes, class)
	}
	return classes, nil
}
