package cli

import (
	"os"

	"github.com/getdocker/getdocker/install"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type installFlags struct {
	channel      string
	version      string
	mirror       string
	force        bool
	codename     string
	architecture string
	user         string
	dryRun       bool
	aptOptions   string
}

// NewInstallCommand returns the "install" command.
func NewInstallCommand() *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install Docker Engine on this host",
		Long: `Install Docker Engine on this host from the upstream package repository.

Examples:
  getdocker install
  getdocker install --version 27.4 --channel test
  getdocker install --mirror Aliyun --user "$(id -un)"
  getdocker install --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyInstallFlags(cmd, flags, config)

			opts := []install.Option{}
			observer, finish := stepProgress(config)
			if observer != nil {
				opts = append(opts, install.WithObserver(observer))
				defer finish()
			}
			installer, err := install.NewInstaller(config, opts...)
			if err != nil {
				return err
			}
			return installer.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.channel, "channel", install.ChannelStable, `release channel, "stable" or "test"`)
	cmd.Flags().StringVar(&flags.version, "version", "", `engine version to install, like "27.4" (default latest)`)
	cmd.Flags().StringVar(&flags.mirror, "mirror", "", `download mirror, "Aliyun" or "AzureChinaCloud"`)
	cmd.Flags().BoolVar(&flags.force, "force", false, "assume a Debian compatible repository on unrecognized distributions")
	cmd.Flags().StringVar(&flags.codename, "codename", "", "override release codename detection")
	cmd.Flags().StringVar(&flags.architecture, "arch", "", "override package architecture detection")
	cmd.Flags().StringVar(&flags.user, "user", "", "add the given user to the docker group")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the commands that would modify the host instead of running them")
	cmd.Flags().StringVar(&flags.aptOptions, "apt-opts", "", "extra options for apt-get invocations")

	return cmd
}

// applyInstallFlags merges flags the user set on the command line over the
// configuration file values.
func applyInstallFlags(cmd *cobra.Command, flags *installFlags, config *install.Config) {
	if cmd.Flags().Changed("channel") {
		config.Channel = flags.channel
	}
	if cmd.Flags().Changed("version") {
		config.Version = flags.version
	}
	if cmd.Flags().Changed("mirror") {
		config.Mirror = flags.mirror
	}
	if cmd.Flags().Changed("force") {
		config.Force = flags.force
	}
	if cmd.Flags().Changed("codename") {
		config.Codename = flags.codename
	}
	if cmd.Flags().Changed("arch") {
		config.Architecture = flags.architecture
	}
	if cmd.Flags().Changed("user") {
		config.User = flags.user
	}
	if cmd.Flags().Changed("dry-run") {
		config.DryRun = flags.dryRun
	}
	if cmd.Flags().Changed("apt-opts") {
		config.AptOptions = flags.aptOptions
	}
}

// stepProgress returns a progress bar step observer and a finisher when
// stderr is an interactive terminal. Verbose and dry-run output would
// interleave with the bar, so no bar is shown for those.
func stepProgress(config *install.Config) (install.StepObserver, func()) {
	if verbose || quiet || config.DryRun {
		return nil, nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil, nil
	}

	var bar *progressbar.ProgressBar
	observer := func(step, total int, name string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(name)
		_ = bar.Set(step - 1)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
	return observer, finish
}
