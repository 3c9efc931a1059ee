package regpkg

import (
	"time"

	"github.com/pkgchain/registry/pkg/hash"
	"github.com/pkgchain/registry/pkg/regpkg/wire"
	"github.com/pkgchain/registry/pkg/semver"
	"github.com/pkgchain/registry/pkg/signing"
)

func permissionToWire(p Permission) wire.Permission {
	return wire.Permission(p)
}

func permissionFromWire(p wire.Permission) (Permission, error) {
	switch p {
	case wire.PermissionRelease:
		return PermissionRelease, nil
	case wire.PermissionYank:
		return PermissionYank, nil
	default:
		return 0, &UnknownEnumValueError{Enum: "Permission", Value: int32(p)}
	}
}

// MarshalBinary encodes r to its wire-format bytes. Encoding a
// correctly-constructed PackageRecord never fails.
func (r PackageRecord) MarshalBinary() ([]byte, error) {
	w := wire.PackageRecord{
		Version: r.Version,
		Time: &wire.Timestamp{
			Seconds: r.Timestamp.Unix(),
			Nanos:   int32(r.Timestamp.Nanosecond()),
		},
	}
	if r.Prev != nil {
		s := r.Prev.String()
		w.Prev = &s
	}
	for _, entry := range r.Entries {
		wireEntry, err := entry.toWire()
		if err != nil {
			return nil, err
		}
		w.Entries = append(w.Entries, wireEntry)
	}
	return w.Marshal(), nil
}

func (e PackageEntry) toWire() (wire.PackageEntry, error) {
	switch e.Kind {
	case EntryInit:
		return wire.PackageEntry{Init: &wire.Init{
			Key:           e.Init.Key.String(),
			HashAlgorithm: e.Init.HashAlgorithm.String(),
		}}, nil
	case EntryGrantFlat:
		return wire.PackageEntry{GrantFlat: &wire.GrantFlat{
			Key:        e.GrantFlat.Key.String(),
			Permission: permissionToWire(e.GrantFlat.Permission),
		}}, nil
	case EntryRevokeFlat:
		return wire.PackageEntry{RevokeFlat: &wire.RevokeFlat{
			KeyID:      e.RevokeFlat.KeyID.String(),
			Permission: permissionToWire(e.RevokeFlat.Permission),
		}}, nil
	case EntryRelease:
		return wire.PackageEntry{Release: &wire.Release{
			Version:     e.Release.Version.String(),
			ContentHash: e.Release.Content.String(),
		}}, nil
	case EntryYank:
		return wire.PackageEntry{Yank: &wire.Yank{
			Version: e.Yank.Version.String(),
		}}, nil
	default:
		return wire.PackageEntry{}, &ContentsParseError{Field: "entry.kind", Cause: &UnknownEnumValueError{Enum: "EntryKind", Value: int32(e.Kind)}}
	}
}

// DecodeRecord parses a PackageRecord from its wire-format bytes.
func DecodeRecord(data []byte) (PackageRecord, error) {
	w, err := wire.UnmarshalPackageRecord(data)
	if err != nil {
		return PackageRecord{}, &ProtobufParseError{Cause: err}
	}

	var out PackageRecord
	if w.Prev != nil {
		prev, err := hash.Parse(*w.Prev)
		if err != nil {
			return PackageRecord{}, &ContentsParseError{Field: "record.prev", Cause: err}
		}
		out.Prev = &prev
	}
	out.Version = w.Version

	if w.Time == nil {
		return PackageRecord{}, &MissingFieldError{Field: "record.time"}
	}
	out.Timestamp = time.Unix(w.Time.Seconds, int64(w.Time.Nanos)).UTC()

	for i, wireEntry := range w.Entries {
		entry, err := entryFromWire(wireEntry)
		if err != nil {
			return PackageRecord{}, &ContentsParseError{Field: "record.entries", Cause: err}
		}
		_ = i
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func entryFromWire(w wire.PackageEntry) (PackageEntry, error) {
	switch {
	case w.Init != nil:
		algo, err := hash.ParseAlgorithm(w.Init.HashAlgorithm)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "init.hash_algorithm", Cause: err}
		}
		key, err := signing.ParsePublicKey(w.Init.Key)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "init.key", Cause: err}
		}
		return NewInitEntry(algo, key), nil

	case w.GrantFlat != nil:
		key, err := signing.ParsePublicKey(w.GrantFlat.Key)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "grant_flat.key", Cause: err}
		}
		perm, err := permissionFromWire(w.GrantFlat.Permission)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "grant_flat.permission", Cause: err}
		}
		return NewGrantFlatEntry(key, perm), nil

	case w.RevokeFlat != nil:
		keyID, err := hash.Parse(w.RevokeFlat.KeyID)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "revoke_flat.key_id", Cause: err}
		}
		perm, err := permissionFromWire(w.RevokeFlat.Permission)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "revoke_flat.permission", Cause: err}
		}
		return NewRevokeFlatEntry(keyID, perm), nil

	case w.Release != nil:
		version, err := semver.Parse(w.Release.Version)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "release.version", Cause: err}
		}
		content, err := hash.Parse(w.Release.ContentHash)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "release.content_hash", Cause: err}
		}
		return NewReleaseEntry(version, content), nil

	case w.Yank != nil:
		version, err := semver.Parse(w.Yank.Version)
		if err != nil {
			return PackageEntry{}, &ContentsParseError{Field: "yank.version", Cause: err}
		}
		return NewYankEntry(version), nil

	default:
		return PackageEntry{}, &MissingFieldError{Field: "entry.contents"}
	}
}
