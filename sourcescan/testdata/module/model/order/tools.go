//go:build ignore

package order

type Ignored struct {
	Name string
}
