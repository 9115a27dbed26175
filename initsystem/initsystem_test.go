package initsystem_test

import (
	"context"
	"testing"

	"github.com/getdocker/getdocker/getdockertest"
	"github.com/getdocker/getdocker/initsystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemdCommands(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	ctx := context.Background()
	sd := initsystem.Systemd{}

	require.NoError(t, sd.EnableService(ctx, runner, "docker"))
	require.NoError(t, sd.StartService(ctx, runner, "docker"))
	require.NoError(t, runner.Received(getdockertest.HasPrefix("systemctl enable docker")))
	require.NoError(t, runner.Received(getdockertest.HasPrefix("systemctl start docker")))
}

func TestSystemdServiceIsRunning(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	assert.True(t, initsystem.Systemd{}.ServiceIsRunning(context.Background(), runner, "docker"))

	runner.AddCommandFailure(getdockertest.HasPrefix("systemctl status"), "inactive")
	assert.False(t, initsystem.Systemd{}.ServiceIsRunning(context.Background(), runner, "docker"))
}

func TestOpenRCCommands(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	ctx := context.Background()
	rc := initsystem.OpenRC{}

	require.NoError(t, rc.EnableService(ctx, runner, "docker"))
	require.NoError(t, rc.StartService(ctx, runner, "docker"))
	require.NoError(t, runner.Received(getdockertest.Equal("rc-update add docker")))
	require.NoError(t, runner.Received(getdockertest.Equal("rc-service docker start")))
}

func TestSysVinitCommands(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	ctx := context.Background()
	sv := initsystem.SysVinit{}

	require.NoError(t, sv.EnableService(ctx, runner, "docker"))
	require.NoError(t, sv.StartService(ctx, runner, "docker"))
	require.NoError(t, runner.Received(getdockertest.Equal("update-rc.d docker defaults")))
	require.NoError(t, runner.Received(getdockertest.Equal("/etc/init.d/docker start")))
}

func TestProviderPrefersSystemd(t *testing.T) {
	runner := getdockertest.NewMockRunner()

	sm, err := initsystem.DefaultProvider().Get(runner)
	require.NoError(t, err)
	assert.IsType(t, initsystem.Systemd{}, sm)
}

func TestProviderFallsBackToSysVinit(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	runner.AddCommandFailure(getdockertest.HasPrefix("stat /run/systemd"), "no such file or directory")
	runner.AddCommandFailure(getdockertest.Contains("openrc"), "not found")

	sm, err := initsystem.DefaultProvider().Get(runner)
	require.NoError(t, err)
	assert.IsType(t, initsystem.SysVinit{}, sm)
}

func TestServiceNoInitSystem(t *testing.T) {
	runner := getdockertest.NewMockRunner()
	runner.AddCommandFailure(getdockertest.Matches(".*"), "exit status 1")

	service := initsystem.NewService(initsystem.DefaultProvider(), runner)
	_, err := service.GetServiceManager()
	assert.ErrorIs(t, err, initsystem.ErrNoInitSystem)
}
