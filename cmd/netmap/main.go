package main

import (
	"os"

	"github.com/mvaldren/netmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
