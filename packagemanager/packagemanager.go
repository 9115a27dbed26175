// Package packagemanager provides a unified interface to interact with the
// host's package manager.
package packagemanager

import (
	"context"
	"strings"
	"sync"

	"github.com/alessio/shellescape"
	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/plumbing"
)

// PackageManager defines the operations for managing packages on a host.
type PackageManager interface {
	Install(ctx context.Context, h exec.ContextRunner, packageNames ...string) error
	Remove(ctx context.Context, h exec.ContextRunner, packageNames ...string) error
	Update(ctx context.Context, h exec.ContextRunner) error
}

// VersionResolver is a PackageManager that can resolve a fuzzy version string
// into an exact installable package version.
type VersionResolver interface {
	ResolveVersion(ctx context.Context, h exec.ContextRunner, packageName, version string) (string, error)
}

// ErrNoPackageManager is returned when no supported package manager is found
// on the host.
var ErrNoPackageManager = errstring.New("no supported package manager found")

// Factory is a plumbing.Factory for package managers.
type Factory = plumbing.Factory[exec.ContextRunner, PackageManager]

// Provider is a plumbing.Provider for package managers.
type Provider = plumbing.Provider[exec.ContextRunner, PackageManager]

// DefaultProvider is the default package manager provider.
var DefaultProvider = sync.OnceValue(func() *Provider {
	provider := NewProvider()
	RegisterApt(provider)
	return provider
})

// NewProvider returns a new Provider.
func NewProvider() *Provider {
	return plumbing.NewProvider[exec.ContextRunner, PackageManager](ErrNoPackageManager)
}

func buildCommand(basecmd string, packages ...string) string {
	cmd := &strings.Builder{}
	cmd.WriteString(basecmd)
	for _, pkg := range packages {
		cmd.WriteRune(' ')
		cmd.WriteString(shellescape.Quote(pkg))
	}
	return cmd.String()
}
