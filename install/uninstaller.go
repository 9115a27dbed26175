package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/getdocker/getdocker/aptrepo"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/initsystem"
	"github.com/getdocker/getdocker/log"
	"github.com/getdocker/getdocker/packagemanager"
	"github.com/getdocker/getdocker/sudo"
)

// UninstallOption is a functional option for the Uninstaller.
type UninstallOption func(*Uninstaller)

// WithUninstallRunners overrides the probe and target runners.
func WithUninstallRunners(probe, target exec.Runner) UninstallOption {
	return func(u *Uninstaller) {
		u.probe = probe
		u.target = target
	}
}

// WithUninstallOutput sets the writer dry-run commands are printed to.
func WithUninstallOutput(out io.Writer) UninstallOption {
	return func(u *Uninstaller) { u.out = out }
}

// Uninstaller removes the packages and apt configuration set up by the
// Installer. Images, containers and volumes under /var/lib/docker are left
// untouched.
type Uninstaller struct {
	config *Config
	probe  exec.Runner
	target exec.Runner
	out    io.Writer
}

// NewUninstaller returns an Uninstaller for the given configuration.
func NewUninstaller(config *Config, opts ...UninstallOption) (*Uninstaller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	u := &Uninstaller{config: config, out: os.Stdout}
	for _, opt := range opts {
		opt(u)
	}
	if u.probe == nil {
		u.probe = exec.NewLocalRunner()
	}
	if u.target == nil {
		decorate, err := sudo.DefaultProvider().Get(u.probe)
		if err != nil {
			return nil, fmt.Errorf("the uninstaller needs the ability to run commands as root: %w", err)
		}
		if config.DryRun {
			u.target = exec.NewDryRunner(u.out, decorate)
		} else {
			u.target = exec.NewLocalRunner(decorate)
		}
	}
	return u, nil
}

// Run stops the service, removes the packages and deletes the apt source and
// keyring.
func (u *Uninstaller) Run(ctx context.Context) error {
	if sm, err := initsystem.NewService(initsystem.DefaultProvider(), u.probe).GetServiceManager(); err == nil {
		if err := sm.StopService(ctx, u.target, ServiceName); err != nil {
			log.Default().Warn("could not stop the service", log.Any("reason", err))
		}
		if err := sm.DisableService(ctx, u.target, ServiceName); err != nil {
			log.Default().Warn("could not disable the service", log.Any("reason", err))
		}
	} else {
		log.Default().Warn("no supported init system found, not stopping the service", log.Any("reason", err))
	}

	aptArgs, err := u.config.AptArgs()
	if err != nil {
		return err //nolint:wrapcheck
	}
	provider := packagemanager.NewProvider()
	packagemanager.RegisterApt(provider, aptArgs...)
	pm := packagemanager.NewService(provider, u.probe).PackageManager()
	if err := pm.Remove(ctx, u.target, u.config.Packages...); err != nil {
		return fmt.Errorf("remove %s: %w", strings.Join(u.config.Packages, " "), err)
	}

	if err := aptrepo.RemoveAptConfig(ctx, u.target); err != nil {
		return err //nolint:wrapcheck
	}

	log.Default().Info("uninstalled, images, containers and volumes in /var/lib/docker were not removed")
	return nil
}
