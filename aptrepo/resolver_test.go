package aptrepo_test

import (
	"errors"
	"testing"

	"github.com/getdocker/getdocker/aptrepo"
	"github.com/getdocker/getdocker/osrelease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCodename string

func (s staticCodename) Codename() (string, error) {
	if s == "" {
		return "", errors.New("no codename available")
	}
	return string(s), nil
}

func TestResolveUbuntu(t *testing.T) {
	facts := osrelease.Facts{ID: "ubuntu", VersionCodename: "jammy"}

	d, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyUbuntu, d.Family)
	assert.Equal(t, "jammy", d.Codename)
	assert.Equal(t, "amd64", d.Architecture)
	assert.Empty(t, d.Warnings)
}

func TestResolveUbuntuIgnoresIDLike(t *testing.T) {
	facts := osrelease.Facts{ID: "ubuntu", IDLike: "debian", VersionCodename: "noble"}

	d, err := aptrepo.Resolve(facts, "arm64", aptrepo.Options{})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyUbuntu, d.Family)
}

func TestResolveDebian(t *testing.T) {
	facts := osrelease.Facts{ID: "debian", VersionCodename: "bookworm"}

	d, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyDebian, d.Family)
	assert.Equal(t, "bookworm", d.Codename)
}

func TestResolveUbuntuDerivative(t *testing.T) {
	// Linux Mint and friends carry ubuntu in ID_LIKE
	facts := osrelease.Facts{ID: "linuxmint", IDLike: "ubuntu debian", VersionCodename: "virginia"}

	d, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyUbuntu, d.Family)
}

func TestResolveRaspbian(t *testing.T) {
	facts := osrelease.Facts{ID: "raspbian", IDLike: "debian"}

	d, err := aptrepo.Resolve(facts, "armhf", aptrepo.Options{CodenameSource: staticCodename("bookworm")})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyDebian, d.Family)
	assert.Equal(t, "bookworm", d.Codename)
	assert.Equal(t, "armhf", d.Architecture)
}

func TestResolveUnsupportedDistro(t *testing.T) {
	facts := osrelease.Facts{ID: "fedora", IDLike: "rhel", VersionCodename: "rawhide"}

	_, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{})
	require.ErrorIs(t, err, aptrepo.ErrUnsupportedDistro)
	assert.Contains(t, err.Error(), "fedora")
	assert.Contains(t, err.Error(), "rhel")
}

func TestResolveForcedFallback(t *testing.T) {
	facts := osrelease.Facts{ID: "fedora", IDLike: "rhel"}

	d, err := aptrepo.Resolve(facts, "x86_64", aptrepo.Options{Force: true, Codename: "bullseye"})
	require.NoError(t, err)
	assert.Equal(t, aptrepo.FamilyDebian, d.Family)
	assert.Equal(t, "bullseye", d.Codename)
	assert.Equal(t, "x86_64", d.Architecture)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "fedora")
}

func TestResolveCodenameOverrideWins(t *testing.T) {
	facts := osrelease.Facts{ID: "debian", VersionCodename: "bookworm"}

	d, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{Codename: "trixie", CodenameSource: staticCodename("bullseye")})
	require.NoError(t, err)
	assert.Equal(t, "trixie", d.Codename)
}

func TestResolveCodenameFromSource(t *testing.T) {
	facts := osrelease.Facts{ID: "debian"}

	d, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{CodenameSource: staticCodename("bookworm")})
	require.NoError(t, err)
	assert.Equal(t, "bookworm", d.Codename)
}

func TestResolveUndeterminedCodename(t *testing.T) {
	facts := osrelease.Facts{ID: "debian"}

	_, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{CodenameSource: staticCodename("")})
	assert.ErrorIs(t, err, aptrepo.ErrUndeterminedCodename)

	_, err = aptrepo.Resolve(facts, "amd64", aptrepo.Options{})
	assert.ErrorIs(t, err, aptrepo.ErrUndeterminedCodename)
}

func TestResolveUndeterminedCodenameFatalUnderForce(t *testing.T) {
	facts := osrelease.Facts{ID: "unknownix"}

	_, err := aptrepo.Resolve(facts, "amd64", aptrepo.Options{Force: true, CodenameSource: staticCodename("")})
	assert.ErrorIs(t, err, aptrepo.ErrUndeterminedCodename)
}

func TestResolveInvalidArchitecture(t *testing.T) {
	facts := osrelease.Facts{ID: "ubuntu", VersionCodename: "jammy"}

	for _, arch := range []string{"", "   "} {
		_, err := aptrepo.Resolve(facts, arch, aptrepo.Options{})
		assert.ErrorIs(t, err, aptrepo.ErrInvalidArchitecture)
	}
}

func TestResolveDeterminism(t *testing.T) {
	facts := osrelease.Facts{ID: "raspbian", IDLike: "debian", VersionCodename: "bullseye"}
	opts := aptrepo.Options{Force: true}

	first, err := aptrepo.Resolve(facts, "armhf", opts)
	require.NoError(t, err)
	second, err := aptrepo.Resolve(facts, "armhf", opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
