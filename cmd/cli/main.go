package main

import (
	"github.com/mchmarny/phenosim/pkg/cli"
)

func main() {
	cli.Execute()
}
