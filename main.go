package main

import (
	"os"

	"lockworks/pkg/game/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
