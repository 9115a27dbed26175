package osrelease

import (
	"sync"

	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/plumbing"
)

// ErrNotRecognized is returned when the host OS can not be identified.
var ErrNotRecognized = errstring.New("host OS not recognized")

// Factory is a plumbing.Factory for OS facts.
type Factory = plumbing.Factory[exec.SimpleRunner, *Facts]

// Provider is a plumbing.Provider for OS facts.
type Provider = plumbing.Provider[exec.SimpleRunner, *Facts]

// DefaultProvider is the default OS facts provider.
var DefaultProvider = sync.OnceValue(func() *Provider {
	provider := NewProvider()
	RegisterOSReleaseFile(provider)
	RegisterLsbRelease(provider)
	return provider
})

// NewProvider returns a new Provider.
func NewProvider() *Provider {
	return plumbing.NewProvider[exec.SimpleRunner, *Facts](ErrNotRecognized)
}

// RegisterOSReleaseFile registers a factory that reads the os-release file to
// the given provider.
func RegisterOSReleaseFile(provider *Provider) {
	provider.Register(func(runner exec.SimpleRunner) (*Facts, bool) {
		output, err := runner.ExecOutput("cat /etc/os-release || cat /usr/lib/os-release")
		if err != nil {
			return nil, false
		}
		facts, err := DecodeString(output)
		if err != nil {
			return nil, false
		}
		return facts, true
	})
}

// RegisterLsbRelease registers a factory that builds the facts from
// lsb_release output on hosts without an os-release file.
func RegisterLsbRelease(provider *Provider) {
	provider.Register(func(runner exec.SimpleRunner) (*Facts, bool) {
		output, err := runner.ExecOutput(`command -v lsb_release > /dev/null && printf "ID=%s\nVERSION_ID=%s\nVERSION_CODENAME=%s\nPRETTY_NAME=%s\n" "$(lsb_release -si | tr '[:upper:]' '[:lower:]')" "$(lsb_release -sr)" "$(lsb_release -sc)" "$(lsb_release -sd)"`)
		if err != nil {
			return nil, false
		}
		facts, err := DecodeString(output)
		if err != nil {
			return nil, false
		}
		return facts, true
	})
}

// Get returns the facts for the host the runner is connected to using the
// default provider.
func Get(runner exec.SimpleRunner) (*Facts, error) {
	return DefaultProvider().Get(runner)
}
