/*
Package sourcescan indexes the struct and interface types of a Go module
directly from source so they can be scanned without a hand-written catalog.

Load walks the module (module path from go.mod), parses every non-test file
and turns each type into a catalog.Class:

	// Order is persisted.
	//
	//resthub:markers entity,cacheable
	//resthub:implements model.Named
	type Order struct {
	    catalog.Meta `resthub:"auditable"`
	    audit.Audited
	    Total int
	}

Embedded structs become Extends, embedded interfaces become Implements and
interfaces are always abstract. //resthub:abstract marks a struct abstract.
Markers come from //resthub:markers and from the tag of an embedded
catalog.Meta.

An Index is both a scanner.Enumerator and a catalog.Resolver:

	idx, err := sourcescan.Load(ctx, ".", sourcescan.WithInheritedMarkers("entity"))
	if err != nil {
	    return err
	}
	names, err := scanner.New(idx, idx).Scan(ctx, spec)
*/
package sourcescan
