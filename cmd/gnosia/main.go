package main

import (
	"fmt"
	"os"

	"github.com/subosito/gotenv"

	"github.com/ppiankov/gnosia/internal/cli"
)

func main() {
	_ = gotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
