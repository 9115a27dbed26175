package aptrepo

import (
	"context"
	"fmt"

	"github.com/alessio/shellescape"
	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
)

// Download mirrors recognized by the installer.
const (
	MirrorAliyun          = "Aliyun"
	MirrorAzureChinaCloud = "AzureChinaCloud"
)

// DefaultDownloadURL is the upstream Docker package repository.
const DefaultDownloadURL = "https://download.docker.com"

// Paths the apt configuration is written to.
const (
	KeyringPath    = "/etc/apt/keyrings/docker.asc"
	SourceListPath = "/etc/apt/sources.list.d/docker.list"
)

// ErrUnknownMirror is returned when the mirror name is not recognized.
var ErrUnknownMirror = errstring.New("unknown mirror")

// BaseURL returns the package download base URL for the given mirror name.
// An empty name selects the upstream repository.
func BaseURL(mirror string) (string, error) {
	switch mirror {
	case "":
		return DefaultDownloadURL, nil
	case MirrorAliyun:
		return "https://mirrors.aliyun.com/docker-ce", nil
	case MirrorAzureChinaCloud:
		return "https://mirror.azure.cn/docker-ce", nil
	default:
		return "", ErrUnknownMirror.Wrapf("%q is not one of %q or %q", mirror, MirrorAliyun, MirrorAzureChinaCloud)
	}
}

// RepoURL returns the repository URL for the descriptor's family under the
// given base URL.
func (d *Descriptor) RepoURL(baseURL string) string {
	return baseURL + "/linux/" + string(d.Family)
}

// SourceLine returns the apt source definition line for the descriptor. The
// channel ("stable" or "test") is the repository component.
func (d *Descriptor) SourceLine(baseURL, channel string) string {
	return fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s %s", d.Architecture, KeyringPath, d.RepoURL(baseURL), d.Codename, channel)
}

// ConfigureApt writes the repository's signing key and source definition
// using the given runner. The runner is expected to already run commands with
// sufficient privileges.
func ConfigureApt(ctx context.Context, runner exec.ContextRunner, d *Descriptor, baseURL, channel string) error {
	if err := runner.ExecContext(ctx, "install -m 0755 -d /etc/apt/keyrings"); err != nil {
		return fmt.Errorf("create keyring directory: %w", err)
	}
	gpgURL := d.RepoURL(baseURL) + "/gpg"
	if err := runner.ExecContext(ctx, fmt.Sprintf("curl -fsSL %s -o %s", shellescape.Quote(gpgURL), KeyringPath)); err != nil {
		return fmt.Errorf("download repository key from %s: %w", gpgURL, err)
	}
	if err := runner.ExecContext(ctx, "chmod a+r "+KeyringPath); err != nil {
		return fmt.Errorf("adjust keyring permissions: %w", err)
	}
	line := d.SourceLine(baseURL, channel)
	if err := runner.ExecContext(ctx, "tee "+SourceListPath+" > /dev/null", exec.Stdin(line+"\n")); err != nil {
		return fmt.Errorf("write apt source %s: %w", SourceListPath, err)
	}
	return nil
}

// RemoveAptConfig removes the apt source definition and signing key written
// by ConfigureApt.
func RemoveAptConfig(ctx context.Context, runner exec.ContextRunner) error {
	if err := runner.ExecContext(ctx, fmt.Sprintf("rm -f %s %s", SourceListPath, KeyringPath)); err != nil {
		return fmt.Errorf("remove apt source configuration: %w", err)
	}
	return nil
}
