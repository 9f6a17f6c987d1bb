package main

import (
	"github.com/andrescamacho/research-queue/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
