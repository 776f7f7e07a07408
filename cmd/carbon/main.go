package main

import (
	"os"

	"github.com/lugondev/go-chain-decoder/cmd/carbon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
