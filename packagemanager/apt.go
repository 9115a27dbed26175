package packagemanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
)

// ErrVersionNotFound is returned when no installable package version matches
// the requested version string.
var ErrVersionNotFound = errstring.New("package version not found")

const aptEnv = "DEBIAN_FRONTEND=noninteractive APT_LISTCHANGES_FRONTEND=none"

// Apt is the package manager for Debian family systems.
type Apt struct {
	// Options are extra arguments passed to every apt-get invocation.
	Options []string
}

var (
	_ PackageManager  = Apt{}
	_ VersionResolver = Apt{}
)

// Install installs the given packages. A package name may carry an exact
// version in the apt "name=version" form.
func (a Apt) Install(ctx context.Context, h exec.ContextRunner, packageNames ...string) error {
	if err := h.ExecContext(ctx, aptEnv+" "+buildCommand(a.command("install -y -qq"), packageNames...)); err != nil {
		return fmt.Errorf("failed to install apt packages: %w", err)
	}
	return nil
}

// Remove removes the given packages.
func (a Apt) Remove(ctx context.Context, h exec.ContextRunner, packageNames ...string) error {
	if err := h.ExecContext(ctx, aptEnv+" "+buildCommand(a.command("remove -y"), packageNames...)); err != nil {
		return fmt.Errorf("failed to remove apt packages: %w", err)
	}
	return nil
}

// Update updates the package lists.
func (a Apt) Update(ctx context.Context, h exec.ContextRunner) error {
	if err := h.ExecContext(ctx, aptEnv+" "+a.command("update -qq")); err != nil {
		return fmt.Errorf("failed to update apt package lists: %w", err)
	}
	return nil
}

func (a Apt) command(keyword string) string {
	return buildCommand("apt-get", a.Options...) + " " + keyword
}

// ResolveVersion resolves a fuzzy version string like "24.0" or "v24.0.7"
// into the full version string of an installable package candidate, using the
// apt-cache madison listing. Requires updated package lists.
func (a Apt) ResolveVersion(ctx context.Context, h exec.ContextRunner, packageName, version string) (string, error) {
	want := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if want == "" {
		return "", ErrVersionNotFound.Wrapf("empty version for package %s", packageName)
	}
	out, err := h.ExecOutputContext(ctx, fmt.Sprintf("apt-cache madison %s | awk '{ print $3 }'", shellescape.Quote(packageName)))
	if err != nil {
		return "", fmt.Errorf("failed to list candidate versions for %s: %w", packageName, err)
	}
	for _, candidate := range strings.Fields(out) {
		if strings.Contains(candidate, want) {
			return candidate, nil
		}
	}
	return "", ErrVersionNotFound.Wrapf("no candidate of %s matches %q", packageName, version)
}

// RegisterApt registers apt to the given provider. The options are passed to
// every apt-get invocation.
func RegisterApt(provider *Provider, options ...string) {
	provider.Register(func(c exec.ContextRunner) (PackageManager, bool) {
		if c.ExecContext(context.Background(), "command -v apt-get > /dev/null") != nil {
			return nil, false
		}
		return Apt{Options: options}, true
	})
}
