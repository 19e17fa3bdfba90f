/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/suparena/resthub/catalog"
)

// FileName is the name of the generated registration file.
const FileName = "zz_resthub_catalog.go"

var fileTemplate = template.Must(template.New("catalog").Parse(`// Code generated by entityscan. DO NOT EDIT.

package {{ .Package }}

import "github.com/suparena/resthub/catalog"

func init() {
	catalog.Default().MustRegister(
{{- range .Classes }}
		catalog.{{ .Func }}[{{ .Type }}]({{ .Options }}),
{{- end }}
	)
}
`))

type classData struct {
	Func    string
	Type    string
	Options string
}

// Generate renders an init function that registers classes, all declared in
// the package named pkgName, with catalog.Default.
func Generate(pkgName string, classes []*catalog.Class) ([]byte, error) {
	if pkgName == "" {
		return nil, fmt.Errorf("processor: package name is required")
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("processor: no classes to register in package %s", pkgName)
	}

	sorted := append([]*catalog.Class(nil), classes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	pkgPath := sorted[0].Package
	data := struct {
		Package string
		Classes []classData
	}{Package: pkgName}

	for _, c := range sorted {
		if c.Package != pkgPath {
			return nil, fmt.Errorf("processor: class %s is not in package %s", c.Name, pkgPath)
		}
		data.Classes = append(data.Classes, describe(c))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("processor: render %s: %w", pkgPath, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("processor: format %s: %w", pkgPath, err)
	}
	return src, nil
}

// WriteFile generates the registration file into dir.
func WriteFile(dir, pkgName string, classes []*catalog.Class) (string, error) {
	src, err := Generate(pkgName, classes)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", fmt.Errorf("processor: write %s: %w", path, err)
	}
	return path, nil
}

func describe(c *catalog.Class) classData {
	d := classData{Func: "Describe", Type: c.SimpleName()}
	var opts []string
	if c.Interface {
		d.Func = "DescribeInterface"
	} else if c.Abstract {
		opts = append(opts, "catalog.AsAbstract()")
	}
	if len(c.Markers) > 0 {
		opts = append(opts, "catalog.WithMarkers("+quoteAll(c.Markers)+")")
	}
	if len(c.Implements) > 0 {
		opts = append(opts, "catalog.WithImplements("+quoteAll(c.Implements)+")")
	}
	d.Options = strings.Join(opts, ", ")
	return d
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
