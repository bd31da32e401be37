package main

import (
	"os"

	"github.com/idilsaglam/todolists/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
