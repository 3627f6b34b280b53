package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/salestax-api/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "taxctl:", err)
		os.Exit(1)
	}
}
