/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package config binds declarative persistence contexts to the registry and
loads process settings.

# Persistence contexts

A persistence-context document lists one or more scans. Each scan names the
base packages to search, optional include and exclude filters and the
persistence unit that receives the discovered entities:

	persistence-contexts:
	  - persistence-unit: config
	    base-packages:
	      - example.com/app/model/...
	    include-abstract: false
	    include-filters:
	      - type: annotation
	        expression: entity
	    exclude-filters:
	      - type: assignable
	        expression: example.com/app/model.AuditRecord

persistence-unit defaults to "resthub". A base-packages entry may hold several
comma separated patterns. Supported filter types are annotation and
assignable (see package filter).

# Binding

A Binder validates every context of a document before scanning anything, so
a malformed document never leaves a partial registration behind:

	c := catalog.Default()
	b := config.NewBinder(scanner.New(c, c), registry.Default(), c,
	    config.WithLogger(logger))
	if err := b.LoadFiles(ctx, "persistence.yaml", "billing.yaml"); err != nil {
	    return err
	}

Configuration mistakes are reported as *errors.ConfigurationError with the
source path and the offending field, for example
"persistence-contexts[1].include-filters[0]".

# Settings

LoadSettings reads an optional .env file and then RESTHUB_* environment
variables:

	RESTHUB_DB_DRIVER      sqlite3 | postgres
	RESTHUB_DB_DSN         data source name
	RESTHUB_LOG_LEVEL      debug | info | warn | error
	RESTHUB_LOG_DEV        development logger
	RESTHUB_SCAN_CONTEXTS  comma separated context files
	RESTHUB_SCAN_DIR       module directory scanned for entities
	RESTHUB_SCAN_UNIT      default persistence unit
*/
package config
