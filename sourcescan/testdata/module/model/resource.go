package model

// Resource is the base of every stored type.
//
//resthub:markers entity
type Resource struct {
	ID string
}

// Named is implemented by resources with a display name.
type Named interface {
	Name() string
}

type (
	// Status is not a class.
	Status int

	empty struct{}
)
