package main

import (
	"os"

	"github.com/modeterm/modeterm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
