package main

import (
	"fmt"
	"os"

	"learncenter/internal/catalog"
	"learncenter/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	rootCmd := cli.RootCmd(catalog.MustLoad(), version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
