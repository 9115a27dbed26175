package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getdocker/getdocker/install"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	require.Nil(t, config)

	// a missing default file is fine
	t.Setenv("HOME", t.TempDir())
	config, err = loadConfig("")
	require.NoError(t, err)
	require.Equal(t, install.ChannelStable, config.Channel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "getdocker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: test\nmirror: Aliyun\nuser: jane\n"), 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, install.ChannelTest, config.Channel)
	require.Equal(t, "Aliyun", config.Mirror)
	require.Equal(t, "jane", config.User)
	// values not in the file keep their defaults
	require.NotEmpty(t, config.Packages)
	require.NoError(t, config.Validate())
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "getdocker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: [broken\n"), 0o600))

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestApplyInstallFlags(t *testing.T) {
	cmd := NewInstallCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--version", "27.4", "--dry-run", "--user", "jane"}))

	flags := &installFlags{}
	var err error
	flags.version, err = cmd.Flags().GetString("version")
	require.NoError(t, err)
	flags.user, err = cmd.Flags().GetString("user")
	require.NoError(t, err)
	flags.dryRun, err = cmd.Flags().GetBool("dry-run")
	require.NoError(t, err)

	config, err := install.NewConfig()
	require.NoError(t, err)
	config.Channel = install.ChannelTest
	applyInstallFlags(cmd, flags, config)

	require.Equal(t, "27.4", config.Version)
	require.Equal(t, "jane", config.User)
	require.True(t, config.DryRun)
	// an unchanged flag must not override the configuration file value
	require.Equal(t, install.ChannelTest, config.Channel)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	require.Contains(t, names, "install")
	require.Contains(t, names, "uninstall")
	require.NotEmpty(t, cmd.Version)
}
