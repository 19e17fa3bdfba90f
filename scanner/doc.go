/*
Package scanner discovers entity classes under package patterns.

A Scanner reads classes from an Enumerator (the static catalog, or a source
tree index) and keeps those selected by a Spec:

	s := scanner.New(catalog.Default(), catalog.Default(), scanner.WithLogger(logger))
	names, err := s.Scan(ctx, scanner.Spec{
	    Patterns: []string{"example.com/app/model/...", "example.com/app/audit"},
	    Filters: filter.Set{
	        Include: []filter.Filter{filter.AnnotationPresence{Marker: "entity"}},
	        Exclude: []filter.Filter{filter.AssignableTo{Base: "example.com/app/model.Draft"}},
	    },
	})

Abstract classes and interfaces are dropped unless Spec.IncludeAbstract is
set. Overlapping patterns yield each class once.
*/
package scanner
