package install_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/getdocker/getdocker/aptrepo"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/getdockertest"
	"github.com/getdocker/getdocker/install"
	"github.com/stretchr/testify/require"
)

const jammyRelease = `PRETTY_NAME="Ubuntu 22.04.3 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian`

const fedoraRelease = `NAME="Fedora Linux"
ID=fedora
VERSION_ID=39
ID_LIKE=rhel`

// newProbe returns a mock runner that looks like an Ubuntu Jammy host.
func newProbe(t *testing.T) *getdockertest.MockRunner {
	t.Helper()
	probe := getdockertest.NewMockRunner()
	probe.AddCommandOutput(getdockertest.HasPrefix("cat /etc/os-release"), jammyRelease)
	probe.AddCommandOutput(getdockertest.Equal("dpkg --print-architecture"), "amd64")
	probe.AddCommandFailure(getdockertest.Equal("command -v docker > /dev/null"), "not found")
	probe.AddCommandFailure(getdockertest.Equal("grep -qi microsoft /proc/version"), "no match")
	return probe
}

func TestInstallerRun(t *testing.T) {
	probe := newProbe(t)
	target := getdockertest.NewMockRunner()

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.User = "jane doe"

	var steps []string
	installer, err := install.NewInstaller(config,
		install.WithRunners(probe, target),
		install.WithObserver(func(_, _ int, name string) { steps = append(steps, name) }),
	)
	require.NoError(t, err)
	require.NoError(t, installer.Run(context.Background()))

	require.Equal(t, []string{
		"gather os facts",
		"resolve package repository",
		"preflight checks",
		"configure package repository",
		"install packages",
		"enable service",
		"finalize",
	}, steps)

	require.NoError(t, target.Received(getdockertest.Contains("apt-get update -qq")))
	require.NoError(t, target.Received(getdockertest.Contains("install -y -qq ca-certificates curl")))
	require.NoError(t, target.Received(getdockertest.Equal("install -m 0755 -d /etc/apt/keyrings")))
	require.NoError(t, target.Received(getdockertest.Equal("curl -fsSL https://download.docker.com/linux/ubuntu/gpg -o "+aptrepo.KeyringPath)))
	require.NoError(t, target.Received(getdockertest.HasPrefix("tee "+aptrepo.SourceListPath)))
	require.NoError(t, target.Received(getdockertest.Contains("install -y -qq docker-ce docker-ce-cli containerd.io docker-buildx-plugin docker-compose-plugin")))
	require.NoError(t, target.Received(getdockertest.HasPrefix("systemctl enable docker")))
	require.NoError(t, target.Received(getdockertest.Equal("usermod -aG docker 'jane doe'")))

	// writes go through the target runner only
	require.Error(t, probe.Received(getdockertest.Contains("apt-get update")))
	require.Error(t, probe.Received(getdockertest.Contains("apt-get install")))
	require.Error(t, probe.Received(getdockertest.Contains("usermod")))
}

func TestInstallerSourceLineContent(t *testing.T) {
	probe := newProbe(t)
	target := getdockertest.NewMockRunner()

	var sourceLine string
	target.AddCommand(getdockertest.HasPrefix("tee "), func(a *getdockertest.A) error {
		buf := &bytes.Buffer{}
		if _, err := buf.ReadFrom(a.Stdin); err != nil {
			return err
		}
		sourceLine = buf.String()
		return nil
	})

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.Channel = install.ChannelTest

	installer, err := install.NewInstaller(config, install.WithRunners(probe, target))
	require.NoError(t, err)
	require.NoError(t, installer.Run(context.Background()))

	require.Equal(t,
		"deb [arch=amd64 signed-by="+aptrepo.KeyringPath+"] https://download.docker.com/linux/ubuntu jammy test\n",
		sourceLine,
	)
}

func TestInstallerVersionPinning(t *testing.T) {
	probe := newProbe(t)
	probe.AddCommandOutput(getdockertest.HasPrefix("apt-cache madison docker-ce "), "5:24.0.7-1~ubuntu.22.04~jammy\n5:24.0.6-1~ubuntu.22.04~jammy")
	probe.AddCommandOutput(getdockertest.HasPrefix("apt-cache madison docker-ce-cli "), "5:24.0.7-1~ubuntu.22.04~jammy")
	target := getdockertest.NewMockRunner()

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.Version = "v24.0.7"

	installer, err := install.NewInstaller(config, install.WithRunners(probe, target))
	require.NoError(t, err)
	require.NoError(t, installer.Run(context.Background()))

	require.NoError(t, target.Received(getdockertest.Contains("docker-ce=5:24.0.7-1~ubuntu.22.04~jammy")))
	require.NoError(t, target.Received(getdockertest.Contains("docker-ce-cli=5:24.0.7-1~ubuntu.22.04~jammy")))
	require.NoError(t, target.Received(getdockertest.Contains(" containerd.io ")))
}

func TestInstallerVersionNotFound(t *testing.T) {
	probe := newProbe(t)
	probe.AddCommandOutput(getdockertest.HasPrefix("apt-cache madison "), "5:24.0.6-1~ubuntu.22.04~jammy")
	target := getdockertest.NewMockRunner()

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.Version = "26.1"

	installer, err := install.NewInstaller(config, install.WithRunners(probe, target))
	require.NoError(t, err)
	err = installer.Run(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "install packages")

	// the engine packages must not have been touched
	require.Error(t, target.Received(getdockertest.Contains("install -y -qq docker-ce")))
}

func TestInstallerUnsupportedDistribution(t *testing.T) {
	probe := getdockertest.NewMockRunner()
	probe.AddCommandOutput(getdockertest.HasPrefix("cat /etc/os-release"), fedoraRelease)
	probe.AddCommandOutput(getdockertest.Equal("dpkg --print-architecture"), "amd64")
	target := getdockertest.NewMockRunner()

	config, err := install.NewConfig()
	require.NoError(t, err)

	installer, err := install.NewInstaller(config, install.WithRunners(probe, target))
	require.NoError(t, err)
	err = installer.Run(context.Background())
	require.ErrorIs(t, err, aptrepo.ErrUnsupportedDistro)
	require.Empty(t, target.Commands())
}

func TestInstallerInstallFailure(t *testing.T) {
	probe := newProbe(t)
	target := getdockertest.NewMockRunner()
	target.AddCommandFailure(getdockertest.Contains("install -y -qq docker-ce"), "dpkg lock held")

	config, err := install.NewConfig()
	require.NoError(t, err)

	installer, err := install.NewInstaller(config, install.WithRunners(probe, target))
	require.NoError(t, err)
	err = installer.Run(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "install packages")
	require.ErrorIs(t, err, exec.ErrCommandFailed)
}

func TestInstallerDryRun(t *testing.T) {
	probe := newProbe(t)
	// madison fails before the repository is configured; a dry-run should
	// go on with the packages unpinned.
	probe.AddCommandFailure(getdockertest.HasPrefix("apt-cache madison "), "no candidates")

	out := &bytes.Buffer{}
	config, err := install.NewConfig()
	require.NoError(t, err)
	config.DryRun = true
	config.Version = "24.0"

	installer, err := install.NewInstaller(config, install.WithRunners(probe, exec.NewDryRunner(out)))
	require.NoError(t, err)
	require.NoError(t, installer.Run(context.Background()))

	printed := out.String()
	require.Contains(t, printed, "apt-get update -qq")
	require.Contains(t, printed, "install -y -qq docker-ce docker-ce-cli containerd.io")
	require.Contains(t, printed, "tee "+aptrepo.SourceListPath)
	require.NotContains(t, printed, "docker-ce=")

	// nothing mutating went through the probe runner
	require.Error(t, probe.Received(getdockertest.Contains("apt-get install")))
}

func TestUninstallerRun(t *testing.T) {
	probe := newProbe(t)
	target := getdockertest.NewMockRunner()

	config, err := install.NewConfig()
	require.NoError(t, err)

	uninstaller, err := install.NewUninstaller(config, install.WithUninstallRunners(probe, target))
	require.NoError(t, err)
	require.NoError(t, uninstaller.Run(context.Background()))

	require.NoError(t, target.Received(getdockertest.HasPrefix("systemctl stop docker")))
	require.NoError(t, target.Received(getdockertest.HasPrefix("systemctl disable docker")))
	require.NoError(t, target.Received(getdockertest.Contains("remove -y docker-ce docker-ce-cli containerd.io")))
	require.NoError(t, target.Received(getdockertest.Equal("rm -f "+aptrepo.SourceListPath+" "+aptrepo.KeyringPath)))
}

func TestUninstallerDryRun(t *testing.T) {
	probe := newProbe(t)
	out := &bytes.Buffer{}

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.DryRun = true

	uninstaller, err := install.NewUninstaller(config, install.WithUninstallRunners(probe, exec.NewDryRunner(out)))
	require.NoError(t, err)
	require.NoError(t, uninstaller.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	require.Contains(t, out.String(), "remove -y docker-ce")
	require.Contains(t, out.String(), "rm -f "+aptrepo.SourceListPath)
}
