// Package osrelease provides information about the host operating system
// gathered from the os-release file as described in os-release(5).
package osrelease

import (
	"strings"
)

// Facts is the host operating system identification information.
type Facts struct {
	// Name - A string identifying the operating system, without a version
	// component, suitable for presentation to the user. Example: "Ubuntu".
	Name string `osrelease:"NAME"`

	// ID - A lower-case string (no spaces or other characters outside of
	// 0-9, a-z, ".", "_" and "-") identifying the operating system,
	// excluding any version information. Example: "debian" or "raspbian".
	ID string `osrelease:"ID"`

	// IDLike - A whitespace-separated list of operating system IDs that
	// this operating system is closely related to. Example: "ubuntu debian".
	IDLike string `osrelease:"ID_LIKE"`

	// Version - A string identifying the operating system version, possibly
	// including a release code name. Example: "12 (bookworm)".
	Version string `osrelease:"VERSION"`

	// VersionID - A lower-case string identifying the operating system
	// version. Example: "22.04".
	VersionID string `osrelease:"VERSION_ID"`

	// VersionCodename - A lower-case string identifying the operating
	// system release code name. This field is optional and may be absent on
	// rolling or minimal systems. Example: "jammy" or "bookworm".
	VersionCodename string `osrelease:"VERSION_CODENAME"`

	// PrettyName - A pretty operating system name in a format suitable for
	// presentation to the user. Example: "Debian GNU/Linux 12 (bookworm)".
	PrettyName string `osrelease:"PRETTY_NAME"`

	// Extra holds any other fields found in the file.
	Extra map[string]string
}

// String returns a printable representation of the facts.
func (f Facts) String() string {
	if f.PrettyName != "" {
		return f.PrettyName
	}
	if f.Name != "" && f.VersionID != "" {
		return f.Name + " " + f.VersionID
	}
	return f.ID
}

// LikeTokens returns the ID_LIKE field split into individual tokens.
func (f Facts) LikeTokens() []string {
	return strings.Fields(f.IDLike)
}

// IsLike returns true when the ID matches or the ID_LIKE field contains the
// given id.
func (f Facts) IsLike(id string) bool {
	if f.ID == id {
		return true
	}
	for _, v := range f.LikeTokens() {
		if v == id {
			return true
		}
	}
	return false
}
