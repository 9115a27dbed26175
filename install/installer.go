package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/getdocker/getdocker/aptrepo"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/initsystem"
	"github.com/getdocker/getdocker/log"
	"github.com/getdocker/getdocker/osrelease"
	"github.com/getdocker/getdocker/packagemanager"
	"github.com/getdocker/getdocker/retry"
	"github.com/getdocker/getdocker/sudo"
)

// ServiceName is the name of the engine service managed by the installer.
const ServiceName = "docker"

// pinnedPackages are the packages whose versions follow the requested engine
// version.
var pinnedPackages = []string{"docker-ce", "docker-ce-cli"}

// StepObserver is called before each installation step with the 1-based step
// number, the total number of steps and a short description.
type StepObserver func(step, total int, name string)

// Option is a functional option for the Installer.
type Option func(*Installer)

// WithObserver sets a step observer.
func WithObserver(fn StepObserver) Option {
	return func(i *Installer) { i.observer = fn }
}

// WithOutput sets the writer dry-run commands are printed to. Defaults to
// standard output.
func WithOutput(out io.Writer) Option {
	return func(i *Installer) { i.out = out }
}

// WithRunners overrides the probe and target runners. The probe runner is
// used for read-only detection commands, the target runner for commands that
// modify the host.
func WithRunners(probe, target exec.Runner) Option {
	return func(i *Installer) {
		i.probe = probe
		i.target = target
	}
}

// Installer installs Docker Engine on the host.
type Installer struct {
	config   *Config
	probe    exec.Runner
	target   exec.Runner
	out      io.Writer
	observer StepObserver
}

// NewInstaller returns an Installer for the given configuration. Unless
// runners are supplied, commands run on the local host and a sudo method is
// probed when the current user is not root.
func NewInstaller(config *Config, opts ...Option) (*Installer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	i := &Installer{config: config, out: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	if i.probe == nil {
		i.probe = exec.NewLocalRunner()
	}
	if i.target == nil {
		decorate, err := sudo.DefaultProvider().Get(i.probe)
		if err != nil {
			return nil, fmt.Errorf("the installer needs the ability to run commands as root: %w", err)
		}
		if config.DryRun {
			i.target = exec.NewDryRunner(i.out, decorate)
		} else {
			i.target = exec.NewLocalRunner(decorate)
		}
	}
	return i, nil
}

type step struct {
	name string
	fn   func(context.Context, *state) error
}

// state carries the facts and collaborators gathered during a run.
type state struct {
	facts      osrelease.Facts
	descriptor *aptrepo.Descriptor
	pm         packagemanager.PackageManager
}

// Run performs the installation.
func (i *Installer) Run(ctx context.Context) error {
	steps := []step{
		{"gather os facts", i.gatherFacts},
		{"resolve package repository", i.resolveRepository},
		{"preflight checks", i.preflight},
		{"configure package repository", i.configureRepository},
		{"install packages", i.installPackages},
		{"enable service", i.enableService},
		{"finalize", i.finalize},
	}
	st := &state{}
	for n, s := range steps {
		if i.observer != nil {
			i.observer(n+1, len(steps), s.name)
		}
		log.Default().Info("step", log.Int("number", n+1), log.String("name", s.name))
		if err := s.fn(ctx, st); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (i *Installer) gatherFacts(_ context.Context, st *state) error {
	facts, err := osrelease.Get(i.probe)
	if err != nil {
		return err //nolint:wrapcheck
	}
	st.facts = *facts
	log.Default().Info("detected operating system", log.String("os", facts.String()))
	return nil
}

func (i *Installer) resolveRepository(ctx context.Context, st *state) error {
	arch := i.config.Architecture
	if arch == "" {
		out, err := i.probe.ExecOutputContext(ctx, "dpkg --print-architecture")
		if err != nil {
			return fmt.Errorf("detect package architecture: %w", err)
		}
		arch = out
	}

	descriptor, err := aptrepo.Resolve(st.facts, arch, aptrepo.Options{
		Force:          i.config.Force,
		Codename:       i.config.Codename,
		CodenameSource: osrelease.NewCodenameLookup(i.probe),
	})
	if err != nil {
		return err //nolint:wrapcheck
	}
	for _, warning := range descriptor.Warnings {
		log.Default().Warn(warning)
	}
	log.Default().Info("resolved package repository",
		log.String("family", string(descriptor.Family)),
		log.String("codename", descriptor.Codename),
		log.String("architecture", descriptor.Architecture),
	)
	st.descriptor = descriptor
	return nil
}

func (i *Installer) preflight(ctx context.Context, st *state) error {
	if i.probe.ExecContext(ctx, "command -v docker > /dev/null") == nil {
		log.Default().Warn("an existing docker installation was detected, the upstream packages may conflict with it")
	}
	if i.probe.ExecContext(ctx, "grep -qi microsoft /proc/version") == nil {
		log.Default().Warn("this host looks like WSL, consider using Docker Desktop for Windows instead")
	}

	aptArgs, err := i.config.AptArgs()
	if err != nil {
		return err //nolint:wrapcheck
	}
	provider := packagemanager.NewProvider()
	packagemanager.RegisterApt(provider, aptArgs...)
	pm, err := packagemanager.NewService(provider, i.probe).GetPackageManager()
	if err != nil {
		return fmt.Errorf("distribution %q resolved to a %s repository but has no apt: %w", st.facts.ID, st.descriptor.Family, err)
	}
	st.pm = pm
	return nil
}

func (i *Installer) configureRepository(ctx context.Context, st *state) error {
	if err := i.updatePackageLists(ctx, st.pm); err != nil {
		return err
	}
	if err := st.pm.Install(ctx, i.target, "ca-certificates", "curl"); err != nil {
		return fmt.Errorf("install repository prerequisites: %w", err)
	}

	baseURL, err := aptrepo.BaseURL(i.config.Mirror)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if err := aptrepo.ConfigureApt(ctx, i.target, st.descriptor, baseURL, i.config.Channel); err != nil {
		return err //nolint:wrapcheck
	}
	return i.updatePackageLists(ctx, st.pm)
}

// updatePackageLists retries the update a couple of times since apt commonly
// fails on a held dpkg lock while unattended upgrades run.
func (i *Installer) updatePackageLists(ctx context.Context, pm packagemanager.PackageManager) error {
	err := retry.DoWithContext(ctx, func(ctx context.Context) error {
		return pm.Update(ctx, i.target)
	}, retry.MaxRetries(2), retry.Delay(5*time.Second))
	if err != nil {
		return fmt.Errorf("update package lists: %w", err)
	}
	return nil
}

func (i *Installer) installPackages(ctx context.Context, st *state) error {
	packages, err := i.packageSet(ctx, st)
	if err != nil {
		return err
	}
	if err := st.pm.Install(ctx, i.target, packages...); err != nil {
		return fmt.Errorf("install %s: %w", strings.Join(packages, " "), err)
	}
	return nil
}

// packageSet returns the configured packages, with the version pinned
// packages rewritten to the apt name=version form when a version is
// requested.
func (i *Installer) packageSet(ctx context.Context, st *state) ([]string, error) {
	packages := make([]string, len(i.config.Packages))
	copy(packages, i.config.Packages)
	if i.config.Version == "" {
		return packages, nil
	}

	resolver, ok := st.pm.(packagemanager.VersionResolver)
	if !ok {
		return nil, packagemanager.ErrVersionNotFound.Wrapf("the detected package manager can not pin versions")
	}
	for n, pkg := range packages {
		if !isPinned(pkg) {
			continue
		}
		version, err := resolver.ResolveVersion(ctx, i.probe, pkg, i.config.Version)
		if err != nil {
			if i.config.DryRun {
				log.Default().Warn("can not resolve the pinned version without configuring the repository, leaving the package unpinned", log.String("package", pkg))
				continue
			}
			return nil, err //nolint:wrapcheck
		}
		packages[n] = pkg + "=" + version
	}
	return packages, nil
}

func isPinned(pkg string) bool {
	for _, p := range pinnedPackages {
		if p == pkg {
			return true
		}
	}
	return false
}

func (i *Installer) enableService(ctx context.Context, _ *state) error {
	sm, err := initsystem.NewService(initsystem.DefaultProvider(), i.probe).GetServiceManager()
	if err != nil {
		log.Default().Warn("no supported init system found, not enabling the service", log.Any("reason", err))
		return nil
	}
	if err := sm.EnableService(ctx, i.target, ServiceName); err != nil {
		return err //nolint:wrapcheck
	}
	if sm.ServiceIsRunning(ctx, i.probe, ServiceName) {
		log.Default().Info("service is already running", log.String("service", ServiceName))
		return nil
	}
	return sm.StartService(ctx, i.target, ServiceName) //nolint:wrapcheck
}

func (i *Installer) finalize(ctx context.Context, _ *state) error {
	if i.config.User != "" {
		if err := i.target.ExecContext(ctx, "usermod -aG docker "+shellescape.Quote(i.config.User)); err != nil {
			return fmt.Errorf("add user %s to the docker group: %w", i.config.User, err)
		}
		log.Default().Info("added user to the docker group, a re-login is required for it to take effect", log.String("user", i.config.User))
	}
	if i.config.DryRun {
		return nil
	}
	version, err := i.probe.ExecOutputContext(ctx, "docker --version")
	if err != nil {
		return fmt.Errorf("verify the installed engine: %w", err)
	}
	log.Default().Info("installed", log.String("version", version))
	if i.config.User == "" {
		log.Default().Info("to use docker as a non-root user, add the user to the docker group or set up rootless mode")
	}
	return nil
}
