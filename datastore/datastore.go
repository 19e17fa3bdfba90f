/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/google/uuid"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

// DataStore is the generic resource DAO.
type DataStore[T any] interface {
	// Create inserts a new entity, assigning an ID when it has none.
	Create(ctx context.Context, entity *T) error

	// Save inserts or replaces the entity with the same ID.
	Save(ctx context.Context, entity *T) error

	FindByID(ctx context.Context, id string) (*T, error)

	FindAll(ctx context.Context, page storagemodels.PageRequest) (*storagemodels.Page[T], error)

	Count(ctx context.Context) (int, error)

	Delete(ctx context.Context, id string) error

	Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
}

// Identifiable is implemented by entities that carry a string ID.
type Identifiable interface {
	ResourceID() string
	AssignID(id string)
}

// EnsureID returns the ID of entity, assigning a new UUID when it is empty.
func EnsureID(entity any) (string, error) {
	id, ok := entity.(Identifiable)
	if !ok {
		return "", errors.NewValidationError("id", "entity does not implement datastore.Identifiable")
	}
	if id.ResourceID() == "" {
		id.AssignID(uuid.NewString())
	}
	return id.ResourceID(), nil
}

// IDOf returns the ID of entity, which must be set.
func IDOf(entity any) (string, error) {
	id, ok := entity.(Identifiable)
	if !ok {
		return "", errors.NewValidationError("id", "entity does not implement datastore.Identifiable")
	}
	if id.ResourceID() == "" {
		return "", errors.NewValidationError("id", "is required")
	}
	return id.ResourceID(), nil
}

// EntityName returns the class name of T, used in error messages.
func EntityName[T any]() string {
	return catalog.NameOf[T]()
}
