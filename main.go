package main

import (
	"os"

	"github.com/carlosvictorodrigues/Editaliza-sub011/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
