package scratch

type Scratch struct{ Name string }
