package order

type TestOnly struct {
	Name string
}
