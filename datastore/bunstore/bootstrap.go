/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bunstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
	"go.uber.org/zap"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/registry"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the database and wraps it with the matching bun dialect.
func Open(driver, dsn string) (*bun.DB, error) {
	var dialect schema.Dialect
	switch driver {
	case DriverSQLite:
		dialect = sqlitedialect.New()
	case DriverPostgres:
		dialect = pgdialect.New()
	default:
		return nil, errors.NewValidationError("driver", fmt.Sprintf("unsupported database driver %q", driver))
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("bunstore: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqlDB, dialect), nil
}

// Bootstrap registers the entity classes of a persistence unit with bun.
// Every class must resolve to a registered class with a factory; the models
// are registered in name order and returned.
func Bootstrap(ctx context.Context, db *bun.DB, reg *registry.Registry, resolver catalog.Resolver, unit string, logger *zap.Logger) ([]*catalog.Class, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	names := reg.Get(unit)
	classes := make([]*catalog.Class, 0, len(names))
	models := make([]any, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		class, ok := resolver.Lookup(name)
		if !ok {
			return nil, errors.NewUnknownClassError(name)
		}
		if class.New == nil {
			return nil, errors.NewValidationError("class", fmt.Sprintf("%s has no factory; register it with catalog.Describe", name))
		}
		classes = append(classes, class)
		models = append(models, class.New())
	}

	db.RegisterModel(models...)
	logger.Info("Registered persistence unit models",
		zap.String("unit", unit),
		zap.Int("models", len(models)),
		zap.Strings("classes", names),
	)
	return classes, nil
}
