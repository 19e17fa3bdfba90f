/*
Package registry keeps the entity classes discovered for each persistence unit.

A persistence unit is a named group of entity classes that one ORM bootstrap
maps together. Scans targeting the same unit merge into it:

	reg := registry.New()
	reg.RegisterSet("resthub", names)        // from scanner.Scan
	reg.Register("resthub", "example.com/app/model.User")

	for _, class := range reg.Get("resthub") {
	    // map class
	}

Get returns a snapshot; callers cannot change the registry through it.
ClearPersistenceUnit drops one unit, which test harnesses use between
independent configuration loads.

The registry is thread-safe. Default returns a lazily created process-wide
instance for code that cannot have one injected.
*/
package registry
