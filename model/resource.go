/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package model holds the base types shared by resthub entities.
package model

import (
	"github.com/suparena/resthub/catalog"
)

// Resource is embedded by entities that use a string primary key named id.
//
//	type Book struct {
//	    bun.BaseModel `bun:"table:books"`
//	    catalog.Meta  `resthub:"entity" bun:"-"`
//	    model.Resource
//	    Title string `bun:"title" json:"title"`
//	}
type Resource struct {
	ID string `bun:"id,pk" json:"id"`
}

// ResourceID returns the primary key.
func (r *Resource) ResourceID() string { return r.ID }

// AssignID sets the primary key.
func (r *Resource) AssignID(id string) { r.ID = id }

func init() {
	catalog.Default().MustRegister(catalog.Describe[Resource](catalog.AsAbstract()))
}
