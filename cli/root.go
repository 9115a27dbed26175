// Package cli implements the cobra commands of the getdocker binary.
package cli

import (
	"fmt"
	"os"

	"github.com/getdocker/getdocker/log"
	"github.com/spf13/cobra"
)

// Version, Commit and Date are injected from the main package at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

// NewRootCommand returns the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "getdocker",
		Short: "Install Docker Engine from the upstream package repositories",
		Long: `getdocker installs Docker Engine on Debian and Ubuntu family hosts from
the upstream package repositories. It detects the host distribution, sets up
the apt source and signing key, installs the engine packages and enables the
service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only output errors")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.getdocker.yaml)")

	cmd.AddCommand(NewInstallCommand())
	cmd.AddCommand(NewUninstallCommand())

	return cmd
}

func setupLogging() {
	level := log.LevelInfo
	switch {
	case verbose:
		level = log.LevelDebug
	case quiet:
		level = log.LevelError
	}
	log.SetLogger(log.New(os.Stderr, level))
}

// Execute runs the root command and exits non-zero on error.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
