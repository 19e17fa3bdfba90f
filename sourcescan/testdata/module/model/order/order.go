package order

import (
	"github.com/suparena/resthub/catalog"

	"example.com/shop/model"
	"example.com/shop/model/audit"
)

type Order struct {
	catalog.Meta `resthub:"entity, cacheable"`
	audit.Audited
	Total int
}

// Customer places orders.
//
//resthub:implements model.Named
type Customer struct {
	model.Resource
	marker
	Display string
}

func (c Customer) Name() string { return c.Display }

type marker struct{}

type Line[T any] struct {
	Item T
}

type Alias = Order

type Sized interface {
	model.Named
	Size() int
}
