/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/filter"
	"github.com/suparena/resthub/registry"
	"github.com/suparena/resthub/scanner"
)

// Binder turns persistence-context documents into registry entries.
type Binder struct {
	scanner     *scanner.Scanner
	registry    *registry.Registry
	resolver    catalog.Resolver
	logger      *zap.Logger
	defaultUnit string
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithLogger sets the binder logger.
func WithLogger(logger *zap.Logger) BinderOption {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDefaultUnit sets the unit used by contexts that name none.
func WithDefaultUnit(unit string) BinderOption {
	return func(b *Binder) {
		if unit = strings.TrimSpace(unit); unit != "" {
			b.defaultUnit = unit
		}
	}
}

// NewBinder creates a Binder. resolver validates filter references and
// should be the same metadata source the scanner reads.
func NewBinder(s *scanner.Scanner, reg *registry.Registry, resolver catalog.Resolver, opts ...BinderOption) *Binder {
	b := &Binder{
		scanner:     s,
		registry:    reg,
		resolver:    resolver,
		logger:      zap.NewNop(),
		defaultUnit: registry.DefaultUnit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Registry returns the registry the binder writes to.
func (b *Binder) Registry() *registry.Registry {
	return b.registry
}

type boundContext struct {
	unit string
	spec scanner.Spec
}

// Bind validates every context of doc, scans them and registers the results.
// Any configuration mistake fails the whole document before anything is
// registered.
func (b *Binder) Bind(ctx context.Context, doc *Document, source string) error {
	if len(doc.Contexts) == 0 {
		b.logger.Warn("Configuration source declares no persistence contexts",
			zap.String("source", source))
		return nil
	}

	bound := make([]boundContext, 0, len(doc.Contexts))
	for i, pc := range doc.Contexts {
		bc, err := b.compile(pc, source, fmt.Sprintf("persistence-contexts[%d]", i))
		if err != nil {
			return err
		}
		bound = append(bound, bc)
	}

	results := make([]catalog.Names, len(bound))
	for i, bc := range bound {
		names, err := b.scanner.Scan(ctx, bc.spec)
		if err != nil {
			return fmt.Errorf("%s: scan persistence unit %q: %w", source, bc.unit, err)
		}
		results[i] = names
	}

	for i, bc := range bound {
		b.registry.RegisterSet(bc.unit, results[i])
		b.logger.Info("Registered persistence context",
			zap.String("source", source),
			zap.String("unit", bc.unit),
			zap.Strings("patterns", bc.spec.Patterns),
			zap.Int("entities", results[i].Len()),
		)
	}
	return nil
}

// LoadFile parses and binds the document at path.
func (b *Binder) LoadFile(ctx context.Context, path string) error {
	doc, err := ParseFile(path)
	if err != nil {
		return err
	}
	return b.Bind(ctx, doc, path)
}

// LoadFiles binds several documents concurrently into the shared registry.
// The first failure is returned; documents bound before it stay registered.
func (b *Binder) LoadFiles(ctx context.Context, paths ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			return b.LoadFile(gctx, path)
		})
	}
	return g.Wait()
}

func (b *Binder) compile(pc PersistenceContext, source, field string) (boundContext, error) {
	unit := strings.TrimSpace(pc.Unit)
	if unit == "" {
		unit = b.defaultUnit
	}

	patterns := pc.Patterns()
	if len(patterns) == 0 {
		return boundContext{}, errors.NewConfigurationError(source, field+".base-packages", "at least one base package is required", nil)
	}
	for i, p := range patterns {
		if err := scanner.ValidatePattern(p); err != nil {
			return boundContext{}, errors.NewConfigurationError(source, fmt.Sprintf("%s.base-packages[%d]", field, i), "invalid package pattern", err)
		}
	}

	include, err := parseFilters(pc.IncludeFilters, source, field+".include-filters")
	if err != nil {
		return boundContext{}, err
	}
	exclude, err := parseFilters(pc.ExcludeFilters, source, field+".exclude-filters")
	if err != nil {
		return boundContext{}, err
	}

	set := filter.Set{Include: include, Exclude: exclude}
	if err := set.Validate(b.resolver); err != nil {
		var cfgErr *errors.ConfigurationError
		if stderrors.As(err, &cfgErr) {
			cfgErr.Source = source
			cfgErr.Field = field + "." + cfgErr.Field
		}
		return boundContext{}, err
	}

	return boundContext{
		unit: unit,
		spec: scanner.Spec{
			Patterns:        patterns,
			Filters:         set,
			IncludeAbstract: pc.IncludeAbstract,
		},
	}, nil
}

func parseFilters(decls []FilterDecl, source, field string) ([]filter.Filter, error) {
	out := make([]filter.Filter, 0, len(decls))
	for i, decl := range decls {
		f, err := filter.Parse(decl.Type, decl.Expression)
		if err != nil {
			return nil, errors.NewConfigurationError(source, fmt.Sprintf("%s[%d]", field, i), "invalid filter", err)
		}
		out = append(out, f)
	}
	return out, nil
}
