package main

import (
	"os"

	"github.com/diewo77/go-cotizaciones/cmd/cotizaciones/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
