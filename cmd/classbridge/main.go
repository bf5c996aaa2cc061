package main

import (
	"os"

	"github.com/hashicorp-forge/classbridge/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
