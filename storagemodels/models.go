/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

const (
	// DefaultPageSize is used when a PageRequest carries no limit.
	DefaultPageSize = 20
	// MaxPageSize caps PageRequest.Limit.
	MaxPageSize = 1000
)

// PageRequest selects one page of a FindAll listing.
type PageRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

// Normalized returns the request with defaults applied and bounds enforced.
func (p PageRequest) Normalized() PageRequest {
	if p.Offset < 0 {
		p.Offset = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageSize
	case p.Limit > MaxPageSize:
		p.Limit = MaxPageSize
	}
	return p
}

// Page is one page of entities plus the total count of the listing.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HasNext reports whether entities remain after this page.
func (p *Page[T]) HasNext() bool {
	return p.Offset+len(p.Items) < p.Total
}
