// Package regpkg defines the package-record data model — the
// administrative and release log entries each package's hash chain is
// built from — and the signed Envelope that carries them, adapted from
// the teacher's pkg/package (Manifest/Package) to the append-only log
// model this registry uses instead of a single signed manifest per
// release.
package regpkg

import (
	"fmt"
	"time"

	"github.com/pkgchain/registry/pkg/hash"
	"github.com/pkgchain/registry/pkg/semver"
	"github.com/pkgchain/registry/pkg/signing"
)

// Permission represents the ability to author entries of a given kind.
type Permission int

const (
	// PermissionRelease grants the ability to author Release entries.
	PermissionRelease Permission = iota
	// PermissionYank grants the ability to author Yank entries.
	PermissionYank
)

// String renders the permission in lower-case form, e.g. "release".
func (p Permission) String() string {
	switch p {
	case PermissionRelease:
		return "release"
	case PermissionYank:
		return "yank"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// ParsePermission parses a permission's lower-case textual form.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "release":
		return PermissionRelease, nil
	case "yank":
		return PermissionYank, nil
	default:
		return 0, fmt.Errorf("regpkg: unknown permission %q", s)
	}
}

// EntryKind discriminates the variants of PackageEntry.
type EntryKind int

const (
	// EntryInit initializes a package log. Must be the first entry of
	// every log and must not appear elsewhere.
	EntryInit EntryKind = iota
	// EntryGrantFlat grants a permission to a key.
	EntryGrantFlat
	// EntryRevokeFlat revokes a permission from whoever holds a key_id.
	EntryRevokeFlat
	// EntryRelease publishes a new package version.
	EntryRelease
	// EntryYank withdraws a previously released version.
	EntryYank
)

// PackageEntry is one administrative or release event in a package's
// log, modeled as a discriminated union: exactly one of the payload
// fields matching Kind is meaningful.
//
// Shared fields across variants are nested by value rather than
// flattened, matching the teacher's convention of grouping related data
// into named substructures (cf. Manifest.ConfigSchema).
type PackageEntry struct {
	Kind EntryKind

	Init       *InitEntry
	GrantFlat  *GrantFlatEntry
	RevokeFlat *RevokeFlatEntry
	Release    *ReleaseEntry
	Yank       *YankEntry
}

// InitEntry fixes the chain's hash algorithm and founding key.
type InitEntry struct {
	HashAlgorithm hash.Algorithm
	Key           signing.PublicKey
}

// GrantFlatEntry grants permission to key. The author of this entry
// must hold permission themselves (enforced by an external validator).
type GrantFlatEntry struct {
	Key        signing.PublicKey
	Permission Permission
}

// RevokeFlatEntry revokes permission from whoever holds KeyID.
type RevokeFlatEntry struct {
	KeyID      hash.Hash
	Permission Permission
}

// ReleaseEntry publishes a new package version. The version must not
// already have been released (enforced by an external validator).
type ReleaseEntry struct {
	Version semver.Version
	Content hash.Hash
}

// YankEntry withdraws a previously released version. The version must
// have been released and not yet yanked (enforced by an external
// validator).
type YankEntry struct {
	Version semver.Version
}

// NewInitEntry constructs an Init entry.
func NewInitEntry(algo hash.Algorithm, key signing.PublicKey) PackageEntry {
	return PackageEntry{Kind: EntryInit, Init: &InitEntry{HashAlgorithm: algo, Key: key}}
}

// NewGrantFlatEntry constructs a GrantFlat entry.
func NewGrantFlatEntry(key signing.PublicKey, perm Permission) PackageEntry {
	return PackageEntry{Kind: EntryGrantFlat, GrantFlat: &GrantFlatEntry{Key: key, Permission: perm}}
}

// NewRevokeFlatEntry constructs a RevokeFlat entry.
func NewRevokeFlatEntry(keyID hash.Hash, perm Permission) PackageEntry {
	return PackageEntry{Kind: EntryRevokeFlat, RevokeFlat: &RevokeFlatEntry{KeyID: keyID, Permission: perm}}
}

// NewReleaseEntry constructs a Release entry.
func NewReleaseEntry(version semver.Version, content hash.Hash) PackageEntry {
	return PackageEntry{Kind: EntryRelease, Release: &ReleaseEntry{Version: version, Content: content}}
}

// NewYankEntry constructs a Yank entry.
func NewYankEntry(version semver.Version) PackageEntry {
	return PackageEntry{Kind: EntryYank, Yank: &YankEntry{Version: version}}
}

// RequiredPermission reports which permission, if any, an author must
// hold to submit this entry. This is the hook an external validator
// uses against a key's granted permissions; Init/GrantFlat/RevokeFlat
// require none at this layer (grant/revoke authorization rules are the
// validator's responsibility).
func (e PackageEntry) RequiredPermission() (Permission, bool) {
	switch e.Kind {
	case EntryRelease:
		return PermissionRelease, true
	case EntryYank:
		return PermissionYank, true
	default:
		return 0, false
	}
}

// PackageRecord is a collection of entries published together by the
// same author, chained to the previous record by the hash of its
// content bytes.
type PackageRecord struct {
	// Prev is the hash of the previous record's envelope content bytes.
	// Nil exactly for a package's genesis record.
	Prev *hash.Hash

	// Version is the registry protocol version used to produce this record.
	Version uint32

	// Timestamp is when this record was published.
	Timestamp time.Time

	// Entries are the administrative/release events in this record.
	Entries []PackageEntry
}

// IsGenesis reports whether r is a package's first record.
func (r PackageRecord) IsGenesis() bool {
	return r.Prev == nil
}
