// Package install orchestrates the installation of Docker Engine on Debian
// family hosts.
package install

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/getdocker/getdocker/aptrepo"
	"github.com/getdocker/getdocker/errstring"
	"github.com/google/shlex"
)

// Release channels of the upstream package repository.
const (
	ChannelStable = "stable"
	ChannelTest   = "test"
)

// ErrInvalidConfig is returned when the configuration is invalid.
var ErrInvalidConfig = errstring.New("invalid configuration")

// Config holds the installation options.
type Config struct {
	// Channel is the release channel to install from, "stable" or "test".
	Channel string `yaml:"channel" default:"stable"`
	// Version pins the docker engine version to install, like "27.4" or
	// "v27.4.1". Empty installs the latest.
	Version string `yaml:"version"`
	// Mirror selects an alternative package download mirror, "Aliyun" or
	// "AzureChinaCloud".
	Mirror string `yaml:"mirror"`
	// Force assumes a Debian compatible repository when the distribution is
	// not recognized.
	Force bool `yaml:"force"`
	// Codename overrides release codename detection.
	Codename string `yaml:"codename"`
	// Architecture overrides package architecture detection.
	Architecture string `yaml:"architecture"`
	// User is added to the docker group after installation when set.
	User string `yaml:"user"`
	// DryRun prints the commands that would modify the host instead of
	// running them.
	DryRun bool `yaml:"dry_run"`
	// Packages is the package set to install.
	Packages []string `yaml:"packages" default:"[\"docker-ce\", \"docker-ce-cli\", \"containerd.io\", \"docker-buildx-plugin\", \"docker-compose-plugin\"]"`
	// AptOptions are extra options passed to every apt-get invocation, in
	// shell quoting, like "-o Dpkg::Options::=--force-confold".
	AptOptions string `yaml:"apt_options"`
}

// NewConfig returns a Config with the default values applied.
func NewConfig() (*Config, error) {
	config := &Config{}
	if err := defaults.Set(config); err != nil {
		return nil, fmt.Errorf("apply configuration defaults: %w", err)
	}
	return config, nil
}

// Validate returns an error when the configuration can not be used.
func (c *Config) Validate() error {
	switch c.Channel {
	case ChannelStable, ChannelTest:
	default:
		return ErrInvalidConfig.Wrapf("channel %q is not %q or %q", c.Channel, ChannelStable, ChannelTest)
	}
	if _, err := aptrepo.BaseURL(c.Mirror); err != nil {
		return ErrInvalidConfig.Wrap(err)
	}
	if len(c.Packages) == 0 {
		return ErrInvalidConfig.Wrapf("package set is empty")
	}
	if _, err := c.AptArgs(); err != nil {
		return err
	}
	return nil
}

// AptArgs returns the extra apt-get arguments parsed from AptOptions.
func (c *Config) AptArgs() ([]string, error) {
	if c.AptOptions == "" {
		return nil, nil
	}
	args, err := shlex.Split(c.AptOptions)
	if err != nil {
		return nil, ErrInvalidConfig.Wrapf("parse apt options %q: %w", c.AptOptions, err)
	}
	return args, nil
}
