/*
Package catalog holds the class metadata that persistence scanning inspects.

Go has no classpath to walk, so every discoverable type is described by a
Class: its fully qualified name, its package, the markers declared on it and
the types it embeds or implements. A Catalog is a static registry of those
descriptions, filled through explicit registration, typically from generated
init() functions:

	func init() {
	    catalog.Default().MustRegister(
	        catalog.Describe[User](catalog.WithMarkers("entity")),
	        catalog.Describe[Auditable](catalog.AsAbstract()),
	        catalog.DescribeInterface[Named](),
	    )
	}

Markers play the role of annotations. A marker is declared directly on a
class, or inherited from an embedded class when declared inheritable:

	catalog.Default().DeclareMarker("audited", true)

The Catalog also implements the Enumerator contract used by the scanner:
Enumerate(ctx, root) lists every class at or below an import path.
*/
package catalog
