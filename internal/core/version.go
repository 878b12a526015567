package core

import (
	"fmt"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Version is the major.minor pair declared by !AXM.
type Version struct {
	Major int
	Minor int
}

// SupportedVersion is the newest AXM language version this parser reads.
var SupportedVersion = Version{Major: 3, Minor: 2}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// compatibleSpecifier accepts any version of the supported major that is
// not newer than supported.
func compatibleSpecifier(supported Version) string {
	return fmt.Sprintf(">=%d.0,<=%s", supported.Major, supported)
}

// checkVersion reports whether a file written for declared can be read by a
// parser that supports up to supported.
func checkVersion(declared Version, supported Version) error {
	if declared.Major != supported.Major {
		return errInvalidVersion(declared, supported)
	}
	parsed, err := pep440.Parse(declared.String())
	if err != nil {
		return errInvalidSyntax("!AXM", "command")
	}
	specifiers, err := pep440.NewSpecifiers(compatibleSpecifier(supported))
	if err != nil {
		return errInvalidVersion(declared, supported)
	}
	if !specifiers.Check(parsed) {
		return errInvalidVersion(declared, supported)
	}
	return nil
}
