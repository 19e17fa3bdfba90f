package audit

import (
	"example.com/shop/model"
)

// Audited records who created a resource.
//
//resthub:abstract
//resthub:markers mapped
type Audited struct {
	model.Resource
	CreatedBy string
}
