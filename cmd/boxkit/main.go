package main

import (
	"os"

	"github.com/hashicorp-forge/boxkit/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
