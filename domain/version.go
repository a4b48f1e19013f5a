package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Classification describes how an installed version relates to the latest
// published version of the same package.
type Classification string

const (
	ClassCurrent Classification = "current"
	ClassPatch   Classification = "patch"
	ClassMinor   Classification = "minor"
	ClassMajor   Classification = "major"
	ClassUnknown Classification = "unknown"
)

// rangeOperators are the characters stripped from a declared version range
// to coerce it into a bare version string.
const rangeOperators = "^~><= "

// NormalizeVersion strips range operators, surrounding whitespace, and a
// leading "v" from a version string, leaving the bare X.Y.Z form.
func NormalizeVersion(raw string) string {
	s := strings.TrimLeft(strings.TrimSpace(raw), rangeOperators)
	s = strings.TrimPrefix(s, "v")
	return strings.TrimSpace(s)
}

// Classify compares an installed version against the latest known version
// and decides whether the difference may be applied unattended.
//
// The comparison looks only at the magnitude of the first differing
// component (major, then minor, then patch); it does not check which side
// is newer, so an installed version ahead of the registry still reports as
// an update of that magnitude.
//
// Only a patch-level difference is auto-updatable: any change in the two
// leading components is considered unsafe for unattended application.
func Classify(installed, latest string) (Classification, bool) {
	if latest == "" {
		return ClassUnknown, false
	}

	current := NormalizeVersion(installed)
	target := NormalizeVersion(latest)
	if current == target {
		return ClassCurrent, false
	}

	currentVer, err := semver.NewVersion(current)
	if err != nil {
		return ClassUnknown, false
	}
	targetVer, err := semver.NewVersion(target)
	if err != nil {
		return ClassUnknown, false
	}

	switch {
	case currentVer.Major() != targetVer.Major():
		return ClassMajor, false
	case currentVer.Minor() != targetVer.Minor():
		return ClassMinor, false
	case currentVer.Patch() != targetVer.Patch():
		return ClassPatch, true
	default:
		// Raw strings differed only in decoration (prefixes, build metadata).
		return ClassCurrent, false
	}
}
