package osrelease

import (
	"strings"

	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
)

// ErrNoCodename is returned when the release codename can not be determined.
var ErrNoCodename = errstring.New("no release codename")

// debianCodenames maps Debian major versions to their release codenames for
// hosts where /etc/debian_version is the only available source.
var debianCodenames = map[string]string{
	"10": "buster",
	"11": "bullseye",
	"12": "bookworm",
	"13": "trixie",
}

// CodenameLookup is a best-effort secondary source for the release codename,
// used when the os-release facts do not carry one.
type CodenameLookup struct {
	runner exec.SimpleRunner
}

// NewCodenameLookup returns a CodenameLookup using the given runner.
func NewCodenameLookup(runner exec.SimpleRunner) *CodenameLookup {
	return &CodenameLookup{runner: runner}
}

// Codename returns the host's release codename or an error when none of the
// sources yield one.
func (l *CodenameLookup) Codename() (string, error) {
	if out, err := l.runner.ExecOutput("lsb_release -cs 2> /dev/null"); err == nil {
		codename := strings.ToLower(out)
		if codename != "" && codename != "n/a" {
			return codename, nil
		}
	}

	if out, err := l.runner.ExecOutput("cat /etc/debian_version 2> /dev/null"); err == nil {
		if codename := debianVersionCodename(out); codename != "" {
			return codename, nil
		}
	}

	return "", ErrNoCodename.Wrapf("lsb_release and /etc/debian_version yielded nothing")
}

// debianVersionCodename derives a codename from /etc/debian_version contents,
// which is either a numeric version like "12.4" or a "codename/sid" string on
// testing and unstable systems.
func debianVersionCodename(version string) string {
	version = strings.ToLower(strings.TrimSpace(version))
	if version == "" {
		return ""
	}
	if version[0] >= 'a' && version[0] <= 'z' {
		codename, _, _ := strings.Cut(version, "/")
		return codename
	}
	major, _, _ := strings.Cut(version, ".")
	return debianCodenames[major]
}
