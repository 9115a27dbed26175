// Package sudo provides support for running commands with elevated
// privileges.
package sudo

import (
	"sync"

	"github.com/alessio/shellescape"
	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/plumbing"
)

// ErrNoSudo is returned when no supported method for running commands with
// elevated privileges is found.
var ErrNoSudo = errstring.New("no supported sudo method found")

// Factory is a function that returns a command decorator when the elevation
// method is usable on the host.
type Factory = plumbing.Factory[exec.SimpleRunner, exec.DecorateFunc]

// Provider is a collection of sudo method factories.
type Provider = plumbing.Provider[exec.SimpleRunner, exec.DecorateFunc]

// DefaultProvider is the default sudo method provider.
var DefaultProvider = sync.OnceValue(func() *Provider {
	provider := NewProvider()
	RegisterUID0Noop(provider)
	RegisterSudo(provider)
	RegisterDoas(provider)
	return provider
})

// NewProvider returns a new Provider.
func NewProvider() *Provider {
	return plumbing.NewProvider[exec.SimpleRunner, exec.DecorateFunc](ErrNoSudo)
}

// Noop is a DecorateFunc that returns the command unmodified.
func Noop(cmd string) string { return cmd }

// Sudo is a DecorateFunc that will wrap the given command in a sudo call.
func Sudo(cmd string) string {
	return `sudo -n -- "${SHELL-sh}" -c ` + shellescape.Quote(cmd)
}

// Doas is a DecorateFunc that will wrap the given command in a doas call.
func Doas(cmd string) string {
	return `doas -n -- "${SHELL-sh}" -c ` + shellescape.Quote(cmd)
}

// RegisterUID0Noop registers a noop decorator for hosts where the current
// user is root.
func RegisterUID0Noop(provider *Provider) {
	provider.Register(func(c exec.SimpleRunner) (exec.DecorateFunc, bool) {
		if c.Exec(`[ "$(id -u)" = 0 ]`) != nil {
			return nil, false
		}
		return Noop, true
	})
}

// RegisterSudo registers a sudo decorator with the given provider.
func RegisterSudo(provider *Provider) {
	provider.Register(func(c exec.SimpleRunner) (exec.DecorateFunc, bool) {
		if c.Exec(Sudo("true")) != nil {
			return nil, false
		}
		return Sudo, true
	})
}

// RegisterDoas registers a doas decorator with the given provider.
func RegisterDoas(provider *Provider) {
	provider.Register(func(c exec.SimpleRunner) (exec.DecorateFunc, bool) {
		if c.Exec(Doas("true")) != nil {
			return nil, false
		}
		return Doas, true
	})
}
