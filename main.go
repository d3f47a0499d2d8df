package main

import (
	"os"

	"github.com/gurisko/vm/cmd"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
