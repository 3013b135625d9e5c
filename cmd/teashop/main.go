// Command teashop runs a bubble tea shop from the terminal.
package main

import (
	"os"

	"github.com/mesh-intelligence/teashop/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
