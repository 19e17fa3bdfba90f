package cache

type Cached struct{ Name string }
