/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sourcescan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/suparena/resthub/catalog"
)

// DirectivePrefix starts every type annotation comment:
//
//	//resthub:markers entity,cacheable
//	//resthub:abstract
//	//resthub:implements model.Named
const DirectivePrefix = "//resthub:"

var (
	metaName       = catalog.NameOf[catalog.Meta]()
	versionElement = regexp.MustCompile(`^v[0-9]+$`)
	gopkgVersion   = regexp.MustCompile(`\.v[0-9]+$`)
)

type typeKind int

const (
	structKind typeKind = iota
	interfaceKind
)

type rawType struct {
	name       string
	pkg        string
	kind       typeKind
	fields     int
	abstract   bool
	markers    []string
	implements []string
	embeds     []string
}

type parsedPackage struct {
	path  string
	name  string
	dir   string
	types []*rawType
}

// class resolves embeds against the other indexed types: interfaces become
// Implements, empty structs are dropped and everything else is Extends.
func (t *rawType) class(types map[string]*rawType) catalog.Class {
	c := catalog.Class{
		Name:       t.name,
		Package:    t.pkg,
		Abstract:   t.abstract,
		Interface:  t.kind == interfaceKind,
		Markers:    t.markers,
		Implements: append([]string(nil), t.implements...),
	}
	for _, embed := range t.embeds {
		target, known := types[embed]
		switch {
		case t.kind == interfaceKind:
			c.Implements = append(c.Implements, embed)
		case known && target.kind == interfaceKind:
			c.Implements = append(c.Implements, embed)
		case known && target.fields == 0:
		default:
			c.Extends = append(c.Extends, embed)
		}
	}
	return c
}

func parsePackage(importPath, dir string, files []string, logger *zap.Logger) (*parsedPackage, error) {
	fset := token.NewFileSet()
	pkg := &parsedPackage{path: importPath, dir: dir}

	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		if ignored(f) {
			continue
		}
		if f.Name.Name == "main" {
			logger.Debug("Skipping main package", zap.String("package", importPath))
			return nil, nil
		}
		if pkg.name == "" {
			pkg.name = f.Name.Name
		} else if pkg.name != f.Name.Name {
			logger.Warn("Skipping file with mismatched package name",
				zap.String("file", file),
				zap.String("package", pkg.name),
				zap.String("found", f.Name.Name),
			)
			continue
		}

		imports := fileImports(f)
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Assign.IsValid() || ts.TypeParams != nil {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				if t := parseType(importPath, ts, doc, imports, logger); t != nil {
					pkg.types = append(pkg.types, t)
				}
			}
		}
	}

	if pkg.name == "" {
		return nil, nil
	}
	return pkg, nil
}

func parseType(pkgPath string, ts *ast.TypeSpec, doc *ast.CommentGroup, imports map[string]string, logger *zap.Logger) *rawType {
	t := &rawType{name: pkgPath + "." + ts.Name.Name, pkg: pkgPath}

	switch typ := ts.Type.(type) {
	case *ast.StructType:
		t.kind = structKind
		t.fields = len(typ.Fields.List)
		for _, field := range typ.Fields.List {
			if len(field.Names) > 0 {
				continue
			}
			name, ok := typeRef(field.Type, pkgPath, imports)
			if !ok {
				continue
			}
			if name == metaName {
				t.markers = append(t.markers, tagMarkers(field.Tag)...)
				continue
			}
			t.embeds = append(t.embeds, name)
		}
	case *ast.InterfaceType:
		t.kind = interfaceKind
		t.abstract = true
		for _, method := range typ.Methods.List {
			if len(method.Names) > 0 {
				continue
			}
			if name, ok := typeRef(method.Type, pkgPath, imports); ok {
				t.embeds = append(t.embeds, name)
			}
		}
	default:
		return nil
	}

	if doc != nil {
		for _, c := range doc.List {
			applyDirective(t, c.Text, imports, logger)
		}
	}
	return t
}

func applyDirective(t *rawType, text string, imports map[string]string, logger *zap.Logger) {
	rest, ok := strings.CutPrefix(text, DirectivePrefix)
	if !ok {
		return
	}
	verb, arg, _ := strings.Cut(strings.TrimSpace(rest), " ")
	switch verb {
	case "markers":
		t.markers = append(t.markers, catalog.ParseTag(arg)...)
	case "abstract":
		t.abstract = true
	case "implements":
		for _, ref := range catalog.ParseTag(arg) {
			t.implements = append(t.implements, qualify(ref, t.pkg, imports))
		}
	default:
		logger.Warn("Unknown type directive", zap.String("type", t.name), zap.String("directive", text))
	}
}

// qualify turns "pkg.Type" or "Type" into a fully qualified class name.
func qualify(ref, pkgPath string, imports map[string]string) string {
	dot := strings.LastIndex(ref, ".")
	if dot < 0 {
		return pkgPath + "." + ref
	}
	if importPath, ok := imports[ref[:dot]]; ok {
		return importPath + "." + ref[dot+1:]
	}
	return ref
}

func typeRef(expr ast.Expr, pkgPath string, imports map[string]string) (string, bool) {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return typeRef(e.X, pkgPath, imports)
	case *ast.IndexExpr:
		return typeRef(e.X, pkgPath, imports)
	case *ast.IndexListExpr:
		return typeRef(e.X, pkgPath, imports)
	case *ast.Ident:
		if predeclared(e.Name) {
			return "", false
		}
		return pkgPath + "." + e.Name, true
	case *ast.SelectorExpr:
		x, ok := e.X.(*ast.Ident)
		if !ok {
			return "", false
		}
		importPath, ok := imports[x.Name]
		if !ok {
			return "", false
		}
		return importPath + "." + e.Sel.Name, true
	}
	return "", false
}

func predeclared(name string) bool {
	switch name {
	case "error", "any", "comparable":
		return true
	}
	return false
}

func tagMarkers(tag *ast.BasicLit) []string {
	if tag == nil {
		return nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil
	}
	return catalog.ParseTag(reflect.StructTag(raw).Get(catalog.TagKey))
}

func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := defaultImportName(p)
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			name = imp.Name.Name
		}
		imports[name] = p
	}
	return imports
}

// defaultImportName guesses the package name of an import path following the
// usual conventions for major version suffixes.
func defaultImportName(importPath string) string {
	base := path.Base(importPath)
	if versionElement.MatchString(base) && path.Dir(importPath) != "." {
		base = path.Base(path.Dir(importPath))
	}
	base = gopkgVersion.ReplaceAllString(base, "")
	return strings.ReplaceAll(base, "-", "_")
}

func ignored(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() > f.Package {
			break
		}
		for _, c := range cg.List {
			if strings.TrimSpace(c.Text) == "//go:build ignore" {
				return true
			}
		}
	}
	return false
}
