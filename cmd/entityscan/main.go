/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command entityscan scans a Go module for entity classes, binds
// persistence-context documents against them and prints the resulting
// persistence units as YAML. With -generate it writes the catalog
// registration file into every package that declares a bound class.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/suparena/resthub"
	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/config"
	"github.com/suparena/resthub/logging"
	"github.com/suparena/resthub/processor"
	"github.com/suparena/resthub/sourcescan"
)

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// report is the YAML document printed on success.
type report struct {
	Module    string              `yaml:"module"`
	Units     map[string][]string `yaml:"persistence-units"`
	Generated []string            `yaml:"generated,omitempty"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "entityscan: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("entityscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var contexts, inherited listFlag
	dir := fs.String("dir", settings.Scan.SourceDir, "module root to scan")
	unit := fs.String("unit", settings.Scan.DefaultUnit, "persistence unit for contexts that name none")
	generate := fs.Bool("generate", false, "write "+processor.FileName+" into each package with bound classes")
	version := fs.Bool("version", false, "show version information")
	fs.Var(&contexts, "context", "persistence-context document (repeatable)")
	fs.Var(&inherited, "inherited", "marker visible through embedding (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		info := resthub.GetVersionInfo()
		fmt.Fprintf(stdout, "resthub entityscan version %s\n", info.Version)
		fmt.Fprintf(stdout, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(stdout, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(stdout, "Go version: %s\n", info.GoVersion)
		return nil
	}

	if len(contexts) == 0 {
		contexts = settings.Scan.ContextFiles
	}
	if len(contexts) == 0 {
		return fmt.Errorf("no persistence-context documents given; use -context or RESTHUB_SCAN_CONTEXTS")
	}

	logger, err := logging.New(settings.Logging.Level, settings.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	idx, err := sourcescan.Load(ctx, *dir,
		sourcescan.WithLogger(logger.Logger),
		sourcescan.WithInheritedMarkers(inherited...))
	if err != nil {
		return err
	}

	pc := resthub.NewPersistenceContext(idx,
		resthub.WithLogger(logger.Logger),
		resthub.WithDefaultUnit(*unit))
	if err := pc.Load(ctx, contexts...); err != nil {
		return err
	}

	out := report{Module: idx.Module(), Units: make(map[string][]string)}
	for _, u := range pc.Registry().Units() {
		out.Units[u] = pc.Entities(u)
	}

	if *generate {
		files, err := generateAll(idx, pc, logger.Logger)
		if err != nil {
			return err
		}
		out.Generated = files
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// generateAll writes one registration file per package holding a bound class
// or one of its supertypes.
func generateAll(idx *sourcescan.Index, pc *resthub.PersistenceContext, logger *zap.Logger) ([]string, error) {
	byPackage := make(map[string]map[string]*catalog.Class)
	add := func(class *catalog.Class) {
		if byPackage[class.Package] == nil {
			byPackage[class.Package] = make(map[string]*catalog.Class)
		}
		byPackage[class.Package][class.Name] = class
	}

	for _, u := range pc.Registry().Units() {
		classes, err := pc.Classes(u)
		if err != nil {
			return nil, err
		}
		for _, class := range classes {
			add(class)
			for _, name := range catalog.Supertypes(idx, class) {
				if super, ok := idx.Lookup(name); ok {
					add(super)
				}
			}
		}
	}

	pkgs := make([]string, 0, len(byPackage))
	for pkg := range byPackage {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var files []string
	for _, pkg := range pkgs {
		info, ok := idx.Package(pkg)
		if !ok {
			logger.Warn("Skipping package outside the scanned module", zap.String("package", pkg))
			continue
		}
		classes := make([]*catalog.Class, 0, len(byPackage[pkg]))
		for _, class := range byPackage[pkg] {
			classes = append(classes, class)
		}
		path, err := processor.WriteFile(info.Dir, info.Name, classes)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", pkg, err)
		}
		logger.Info("Generated catalog registrations",
			zap.String("package", pkg),
			zap.Int("classes", len(classes)))
		files = append(files, path)
	}
	return files, nil
}
