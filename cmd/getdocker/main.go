// Package main is the entry point of the getdocker binary. All functionality
// lives in the cli package, this only injects the build-time version info.
package main

import (
	"github.com/getdocker/getdocker/cli"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
