// Package aptrepo decides which upstream Docker package repository a host
// should use and configures apt to use it.
package aptrepo

import (
	"fmt"
	"strings"

	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/osrelease"
)

// Family is the upstream package repository path segment to use.
type Family string

const (
	// FamilyUbuntu is the Ubuntu upstream repository.
	FamilyUbuntu Family = "ubuntu"
	// FamilyDebian is the Debian upstream repository. Debian derivatives
	// like Raspberry Pi OS use it too.
	FamilyDebian Family = "debian"
)

var (
	// ErrUnsupportedDistro is returned when the distribution is not a debian
	// or ubuntu derivative and force was not requested.
	ErrUnsupportedDistro = errstring.New("unsupported distribution")
	// ErrUndeterminedCodename is returned when no release codename is
	// available from any source. An empty or guessed codename would produce
	// a repository line pointing at a nonexistent release, so this is fatal
	// even when force is requested.
	ErrUndeterminedCodename = errstring.New("undetermined release codename")
	// ErrInvalidArchitecture is returned when the architecture is blank.
	ErrInvalidArchitecture = errstring.New("invalid architecture")
)

// CodenameSource is a secondary source for the release codename, consulted
// only when the OS facts do not carry one.
type CodenameSource interface {
	Codename() (string, error)
}

// Options alter how the repository is resolved.
type Options struct {
	// Force assumes a Debian compatible repository when the distribution is
	// not recognized as a debian or ubuntu derivative.
	Force bool
	// Codename overrides codename detection and is used verbatim.
	Codename string
	// CodenameSource is consulted when the facts carry no codename.
	CodenameSource CodenameSource
}

// Descriptor describes the upstream package repository to use. A Descriptor
// is either fully populated or resolution fails, there is no partially valid
// descriptor.
type Descriptor struct {
	// Family is the upstream repository path segment.
	Family Family
	// Codename is the release codename to place in the repository line.
	Codename string
	// Architecture is the package architecture identifier.
	Architecture string
	// Warnings are diagnostic messages accumulated during resolution, such
	// as a forced family fallback. Presentation is up to the caller.
	Warnings []string
}

// Resolve decides the repository to use from the given OS facts. It performs
// no I/O of its own; the codename source collaborator is only consulted as a
// fallback. Identical inputs always produce identical results.
func Resolve(facts osrelease.Facts, arch string, opts Options) (*Descriptor, error) {
	arch = strings.TrimSpace(arch)
	if arch == "" {
		return nil, ErrInvalidArchitecture.Wrapf("architecture is empty")
	}

	family, warning, err := resolveFamily(facts, opts.Force)
	if err != nil {
		return nil, err
	}

	codename, err := resolveCodename(facts, opts)
	if err != nil {
		return nil, err
	}

	descriptor := &Descriptor{
		Family:       family,
		Codename:     codename,
		Architecture: arch,
	}
	if warning != "" {
		descriptor.Warnings = append(descriptor.Warnings, warning)
	}
	return descriptor, nil
}

func resolveFamily(facts osrelease.Facts, force bool) (Family, string, error) {
	switch facts.ID {
	case "ubuntu":
		return FamilyUbuntu, "", nil
	case "debian":
		return FamilyDebian, "", nil
	}

	for _, token := range facts.LikeTokens() {
		if strings.Contains(token, "ubuntu") {
			return FamilyUbuntu, "", nil
		}
	}
	for _, token := range facts.LikeTokens() {
		if strings.Contains(token, "debian") {
			return FamilyDebian, "", nil
		}
	}

	if force {
		warning := fmt.Sprintf("distribution %q (ID_LIKE %q) is not a recognized debian or ubuntu derivative, assuming a debian compatible repository as requested", facts.ID, facts.IDLike)
		return FamilyDebian, warning, nil
	}

	return "", "", ErrUnsupportedDistro.Wrapf("id %q (ID_LIKE %q) is not a debian or ubuntu derivative", facts.ID, facts.IDLike)
}

func resolveCodename(facts osrelease.Facts, opts Options) (string, error) {
	if opts.Codename != "" {
		return opts.Codename, nil
	}
	if facts.VersionCodename != "" {
		return facts.VersionCodename, nil
	}
	if opts.CodenameSource != nil {
		codename, err := opts.CodenameSource.Codename()
		if err == nil && codename != "" {
			return codename, nil
		}
		if err != nil {
			return "", ErrUndeterminedCodename.Wrapf("os-release for %q carries no VERSION_CODENAME and the fallback lookup failed: %w", facts.ID, err)
		}
	}
	return "", ErrUndeterminedCodename.Wrapf("os-release for %q carries no VERSION_CODENAME and no override was given", facts.ID)
}
