package main

import "github.com/andrescamacho/gunsmith-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
