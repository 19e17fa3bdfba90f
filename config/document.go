package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suparena/resthub/errors"
)

// Document is one persistence-context configuration source.
type Document struct {
	Contexts []PersistenceContext `yaml:"persistence-contexts"`
}

// PersistenceContext declares one scan: where to look, what to keep and
// which persistence unit receives the result.
type PersistenceContext struct {
	// Unit defaults to the binder default unit when empty.
	Unit string `yaml:"persistence-unit,omitempty"`
	// BasePackages entries may hold several comma separated patterns.
	BasePackages    []string     `yaml:"base-packages"`
	IncludeAbstract bool         `yaml:"include-abstract,omitempty"`
	IncludeFilters  []FilterDecl `yaml:"include-filters,omitempty"`
	ExcludeFilters  []FilterDecl `yaml:"exclude-filters,omitempty"`
}

// FilterDecl is a declarative filter entry.
type FilterDecl struct {
	Type       string `yaml:"type"`
	Expression string `yaml:"expression"`
}

// Patterns returns the trimmed base package patterns.
func (pc PersistenceContext) Patterns() []string {
	var out []string
	for _, entry := range pc.BasePackages {
		for _, p := range strings.Split(entry, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Parse decodes a Document. Unknown keys are rejected. A stream of several
// YAML documents yields the contexts of all of them in order.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	for i := 0; ; i++ {
		var part Document
		if err := dec.Decode(&part); err != nil {
			if stderrors.Is(err, io.EOF) {
				return &doc, nil
			}
			return nil, errors.NewConfigurationError("", fmt.Sprintf("document[%d]", i), "parse persistence contexts", err)
		}
		doc.Contexts = append(doc.Contexts, part.Contexts...)
	}
}

// ParseFile reads and decodes the Document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var cfgErr *errors.ConfigurationError
		if stderrors.As(err, &cfgErr) {
			cfgErr.Source = path
		}
		return nil, err
	}
	return doc, nil
}
