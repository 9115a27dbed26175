package cli

import (
	"github.com/getdocker/getdocker/install"
	"github.com/spf13/cobra"
)

// NewUninstallCommand returns the "uninstall" command.
func NewUninstallCommand() *cobra.Command {
	var dryRun bool
	var aptOptions string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the Docker Engine packages and apt configuration",
		Long: `Remove the Docker Engine packages, the apt source and the repository
signing key. Images, containers and volumes under /var/lib/docker are left
in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				config.DryRun = dryRun
			}
			if cmd.Flags().Changed("apt-opts") {
				config.AptOptions = aptOptions
			}
			uninstaller, err := install.NewUninstaller(config)
			if err != nil {
				return err
			}
			return uninstaller.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the commands that would modify the host instead of running them")
	cmd.Flags().StringVar(&aptOptions, "apt-opts", "", "extra options for apt-get invocations")

	return cmd
}
