package nested

type Nested struct{ Name string }
