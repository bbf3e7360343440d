package main

import (
	"github.com/dyike/PowerupGo/internal/cli"
)

func main() {
	cli.Run()
}
