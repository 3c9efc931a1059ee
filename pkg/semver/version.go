// Package semver provides the Version type used to tag package
// releases: a plain (major, minor, patch) triple, formatted "M.m.p".
//
// Parsing and validation are delegated to github.com/blang/semver so
// this type benefits from a battle-tested semver grammar rather than a
// hand-rolled one; pre-release and build-metadata components, which
// that grammar accepts but this registry's wire format has no room
// for, are rejected explicitly.
package semver

import (
	"fmt"

	"github.com/blang/semver"
)

// Version is a semantic-version triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// String renders v in "M.m.p" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other.
func (v Version) Compare(other Version) int {
	a := semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	b := semver.Version{Major: other.Major, Minor: other.Minor, Patch: other.Patch}
	return a.Compare(b)
}

// ParseError reports a failure to parse a Version's textual form.
type ParseError struct {
	Input string
	Cause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("semver: cannot parse %q: %s", e.Input, e.Cause)
}

// Parse parses a version's "M.m.p" textual form. Pre-release and
// build-metadata suffixes, though accepted by the underlying semver
// grammar, are rejected: this registry's Version carries only the
// bare triple.
func Parse(s string) (Version, error) {
	parsed, err := semver.Parse(s)
	if err != nil {
		return Version{}, &ParseError{Input: s, Cause: err.Error()}
	}
	if len(parsed.Pre) != 0 || len(parsed.Build) != 0 {
		return Version{}, &ParseError{Input: s, Cause: "pre-release and build metadata are not supported"}
	}
	return Version{Major: parsed.Major, Minor: parsed.Minor, Patch: parsed.Patch}, nil
}
