package main

import (
	"os"

	"github.com/meridian-data/schemactl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
