/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sourcescan

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/errors"
)

// Package describes one parsed Go package.
type Package struct {
	Path string
	Name string
	Dir  string
}

// Index holds the classes declared in the source of one Go module.
type Index struct {
	module   string
	root     string
	catalog  *catalog.Catalog
	packages map[string]Package
}

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger used while loading.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithInheritedMarkers declares markers that propagate along embedding.
func WithInheritedMarkers(markers ...string) Option {
	return func(l *loader) {
		l.inherited = append(l.inherited, markers...)
	}
}

// WithParallelism bounds the number of packages parsed at once.
func WithParallelism(n int) Option {
	return func(l *loader) {
		if n > 0 {
			l.parallelism = n
		}
	}
}

type loader struct {
	logger      *zap.Logger
	inherited   []string
	parallelism int
}

// Load walks the module rooted at dir and indexes every struct and interface
// type declared outside test files. vendor, testdata, hidden and underscore
// directories, nested modules and main packages are skipped.
func Load(ctx context.Context, dir string, opts ...Option) (*Index, error) {
	l := &loader{logger: zap.NewNop(), parallelism: 8}
	for _, opt := range opts {
		opt(l)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	module, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil, err
	}

	dirs, err := collectSources(ctx, root)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(dirs))
	for d := range dirs {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	parsed := make([]*parsedPackage, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)
	for i, d := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pkg, err := parsePackage(importPath(module, root, d), d, dirs[d], l.logger)
			if err != nil {
				return err
			}
			parsed[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{
		module:   module,
		root:     root,
		catalog:  catalog.New(),
		packages: make(map[string]Package),
	}
	for _, m := range l.inherited {
		if err := idx.catalog.DeclareMarker(m, true); err != nil {
			return nil, err
		}
	}

	types := make(map[string]*rawType)
	for _, pkg := range parsed {
		if pkg == nil {
			continue
		}
		idx.packages[pkg.path] = Package{Path: pkg.path, Name: pkg.name, Dir: pkg.dir}
		for _, t := range pkg.types {
			types[t.name] = t
		}
	}
	for _, t := range types {
		if err := idx.catalog.Register(t.class(types)); err != nil {
			return nil, fmt.Errorf("register %s: %w", t.name, err)
		}
	}

	l.logger.Debug("Indexed module sources",
		zap.String("module", module),
		zap.String("root", root),
		zap.Int("packages", len(idx.packages)),
		zap.Int("classes", idx.catalog.Len()),
	)
	return idx, nil
}

// Module returns the module path read from go.mod.
func (x *Index) Module() string { return x.module }

// Root returns the absolute module directory.
func (x *Index) Root() string { return x.root }

// Catalog exposes the indexed classes.
func (x *Index) Catalog() *catalog.Catalog { return x.catalog }

// Enumerate implements scanner.Enumerator.
func (x *Index) Enumerate(ctx context.Context, root string) ([]*catalog.Class, error) {
	return x.catalog.Enumerate(ctx, root)
}

// Lookup implements catalog.Resolver.
func (x *Index) Lookup(name string) (*catalog.Class, bool) {
	return x.catalog.Lookup(name)
}

// Marker implements catalog.Resolver.
func (x *Index) Marker(name string) (catalog.MarkerInfo, bool) {
	return x.catalog.Marker(name)
}

// Package returns the parsed package with the given import path.
func (x *Index) Package(importPath string) (Package, bool) {
	p, ok := x.packages[importPath]
	return p, ok
}

// Dir returns the source directory of a package.
func (x *Index) Dir(importPath string) (string, bool) {
	p, ok := x.packages[importPath]
	return p.Dir, ok
}

// Packages returns every parsed package sorted by import path.
func (x *Index) Packages() []Package {
	out := make([]Package, 0, len(x.packages))
	for _, p := range x.packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func readModulePath(gomod string) (string, error) {
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	module := modfile.ModulePath(data)
	if module == "" {
		return "", errors.NewValidationError("go.mod", fmt.Sprintf("%s declares no module path", gomod))
	}
	return module, nil
}

// collectSources maps each source directory to its non-test Go files.
func collectSources(ctx context.Context, root string) (map[string][]string, error) {
	var mu sync.Mutex
	dirs := make(map[string][]string)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			if skipDir(d.Name()) {
				return fastwalk.SkipDir
			}
			if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !d.Type().IsRegular() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		dir := filepath.Dir(p)
		mu.Lock()
		dirs[dir] = append(dirs[dir], p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	for _, files := range dirs {
		sort.Strings(files)
	}
	return dirs, nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func importPath(module, root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return module
	}
	return path.Join(module, filepath.ToSlash(rel))
}
