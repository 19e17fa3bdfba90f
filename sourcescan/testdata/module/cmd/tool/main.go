package main

type Config struct {
	Verbose bool
}

func main() {}
