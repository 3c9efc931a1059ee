// Package wire implements the length-delimited, tag-numbered binary
// codec described by spec §4.1: the wire shapes for Envelope,
// PackageRecord, PackageEntry (and its five oneof variants), Permission
// and Timestamp.
//
// There is no .proto file and no protoc-generated code here: the
// message shapes are small and fixed, so this package hand-writes
// Marshal/Unmarshal directly against
// google.golang.org/protobuf/encoding/protowire's tag/varint/
// length-delimited primitives — the same low-level building blocks a
// generated message's MarshalAppend/Unmarshal would use — rather than
// pulling in the reflection-based proto.Message machinery for nine
// small struct shapes. The wire bytes it produces are ordinary
// protobuf, readable by any protobuf implementation that has the
// matching .proto schema.
//
// The codec is deliberately not canonical: field order on the wire
// need not be reproduced by re-encoding, and an encoder is free to
// choose any valid representation. Callers that need to preserve
// exactly what was received (e.g. because a signature was computed
// over it) must keep the original bytes around themselves — see
// regpkg.Envelope.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers, per spec §4.1.
const (
	envelopeContentsField  protowire.Number = 1
	envelopeKeyIDField     protowire.Number = 2
	envelopeSignatureField protowire.Number = 3

	recordPrevField    protowire.Number = 1
	recordVersionField protowire.Number = 2
	recordTimeField    protowire.Number = 3
	recordEntriesField protowire.Number = 4

	entryInitField       protowire.Number = 1
	entryGrantFlatField  protowire.Number = 2
	entryRevokeFlatField protowire.Number = 3
	entryReleaseField    protowire.Number = 4
	entryYankField       protowire.Number = 5

	initKeyField           protowire.Number = 1
	initHashAlgorithmField protowire.Number = 2

	grantFlatKeyField        protowire.Number = 1
	grantFlatPermissionField protowire.Number = 2

	revokeFlatKeyIDField      protowire.Number = 1
	revokeFlatPermissionField protowire.Number = 2

	releaseVersionField     protowire.Number = 1
	releaseContentHashField protowire.Number = 2

	yankVersionField protowire.Number = 1

	timestampSecondsField protowire.Number = 1
	timestampNanosField   protowire.Number = 2
)

// Permission mirrors the spec's Permission enum ordinals. These values
// are this registry's choice of the open question spec §4.1/§9 leaves
// to "the IDL schema file (not shown)" — see DESIGN.md.
type Permission int32

const (
	PermissionRelease Permission = 0
	PermissionYank    Permission = 1
)

// ErrMalformed is wrapped by every low-level decode failure raised
// while walking the wire bytes (bad tag, truncated varint, truncated
// length-delimited field, and so on).
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("wire: malformed input: %s", e.Reason)
}

func consumeErr(reason string) error {
	return &ErrMalformed{Reason: reason}
}

// Timestamp mirrors the standard seconds+nanos timestamp message.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// Marshal encodes t.
func (t Timestamp) Marshal() []byte {
	var b []byte
	if t.Seconds != 0 {
		b = protowire.AppendTag(b, timestampSecondsField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.Seconds))
	}
	if t.Nanos != 0 {
		b = protowire.AppendTag(b, timestampNanosField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(t.Nanos)))
	}
	return b
}

// UnmarshalTimestamp decodes a Timestamp message.
func UnmarshalTimestamp(data []byte) (Timestamp, error) {
	var out Timestamp
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Timestamp{}, consumeErr("bad timestamp tag")
		}
		data = data[n:]

		switch num {
		case timestampSecondsField:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Timestamp{}, consumeErr("bad timestamp.seconds")
			}
			out.Seconds = int64(v)
			data = data[n:]
		case timestampNanosField:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Timestamp{}, consumeErr("bad timestamp.nanos")
			}
			out.Nanos = int32(uint32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Timestamp{}, consumeErr("bad timestamp field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// Envelope mirrors the outer signed-envelope wire shape.
type Envelope struct {
	Contents  []byte
	KeyID     string
	Signature string
}

// Marshal encodes e.
func (e Envelope) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, envelopeContentsField, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Contents)
	b = protowire.AppendTag(b, envelopeKeyIDField, protowire.BytesType)
	b = protowire.AppendString(b, e.KeyID)
	b = protowire.AppendTag(b, envelopeSignatureField, protowire.BytesType)
	b = protowire.AppendString(b, e.Signature)
	return b
}

// UnmarshalEnvelope decodes an Envelope message.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var out Envelope
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Envelope{}, consumeErr("bad envelope tag")
		}
		data = data[n:]

		switch num {
		case envelopeContentsField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Envelope{}, consumeErr("bad envelope.contents")
			}
			out.Contents = append([]byte(nil), v...)
			data = data[n:]
		case envelopeKeyIDField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Envelope{}, consumeErr("bad envelope.key_id")
			}
			out.KeyID = v
			data = data[n:]
		case envelopeSignatureField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Envelope{}, consumeErr("bad envelope.signature")
			}
			out.Signature = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Envelope{}, consumeErr("bad envelope field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// PackageRecord mirrors the record wire shape.
type PackageRecord struct {
	Prev    *string
	Version uint32
	Time    *Timestamp
	Entries []PackageEntry
}

// Marshal encodes r.
func (r PackageRecord) Marshal() []byte {
	var b []byte
	if r.Prev != nil {
		b = protowire.AppendTag(b, recordPrevField, protowire.BytesType)
		b = protowire.AppendString(b, *r.Prev)
	}
	if r.Version != 0 {
		b = protowire.AppendTag(b, recordVersionField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.Version))
	}
	if r.Time != nil {
		b = protowire.AppendTag(b, recordTimeField, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Time.Marshal())
	}
	for _, entry := range r.Entries {
		b = protowire.AppendTag(b, recordEntriesField, protowire.BytesType)
		b = protowire.AppendBytes(b, entry.Marshal())
	}
	return b
}

// UnmarshalPackageRecord decodes a PackageRecord message.
func UnmarshalPackageRecord(data []byte) (PackageRecord, error) {
	var out PackageRecord
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return PackageRecord{}, consumeErr("bad record tag")
		}
		data = data[n:]

		switch num {
		case recordPrevField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return PackageRecord{}, consumeErr("bad record.prev")
			}
			prev := v
			out.Prev = &prev
			data = data[n:]
		case recordVersionField:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return PackageRecord{}, consumeErr("bad record.version")
			}
			out.Version = uint32(v)
			data = data[n:]
		case recordTimeField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageRecord{}, consumeErr("bad record.time")
			}
			ts, err := UnmarshalTimestamp(v)
			if err != nil {
				return PackageRecord{}, err
			}
			out.Time = &ts
			data = data[n:]
		case recordEntriesField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageRecord{}, consumeErr("bad record.entries")
			}
			entry, err := UnmarshalPackageEntry(v)
			if err != nil {
				return PackageRecord{}, err
			}
			out.Entries = append(out.Entries, entry)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return PackageRecord{}, consumeErr("bad record field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// PackageEntry is a wire-level oneof: exactly one of the pointer
// fields is populated, mirroring the PackageEntry.contents oneof from
// spec §4.1.
type PackageEntry struct {
	Init       *Init
	GrantFlat  *GrantFlat
	RevokeFlat *RevokeFlat
	Release    *Release
	Yank       *Yank
}

// Marshal encodes e. Exactly one variant is expected to be set.
func (e PackageEntry) Marshal() []byte {
	var b []byte
	switch {
	case e.Init != nil:
		b = protowire.AppendTag(b, entryInitField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Init.Marshal())
	case e.GrantFlat != nil:
		b = protowire.AppendTag(b, entryGrantFlatField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.GrantFlat.Marshal())
	case e.RevokeFlat != nil:
		b = protowire.AppendTag(b, entryRevokeFlatField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.RevokeFlat.Marshal())
	case e.Release != nil:
		b = protowire.AppendTag(b, entryReleaseField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Release.Marshal())
	case e.Yank != nil:
		b = protowire.AppendTag(b, entryYankField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Yank.Marshal())
	}
	return b
}

// UnmarshalPackageEntry decodes a PackageEntry message.
func UnmarshalPackageEntry(data []byte) (PackageEntry, error) {
	var out PackageEntry
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return PackageEntry{}, consumeErr("bad entry tag")
		}
		data = data[n:]

		switch num {
		case entryInitField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry.init")
			}
			inner, err := UnmarshalInit(v)
			if err != nil {
				return PackageEntry{}, err
			}
			out.Init = &inner
			data = data[n:]
		case entryGrantFlatField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry.grant_flat")
			}
			inner, err := UnmarshalGrantFlat(v)
			if err != nil {
				return PackageEntry{}, err
			}
			out.GrantFlat = &inner
			data = data[n:]
		case entryRevokeFlatField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry.revoke_flat")
			}
			inner, err := UnmarshalRevokeFlat(v)
			if err != nil {
				return PackageEntry{}, err
			}
			out.RevokeFlat = &inner
			data = data[n:]
		case entryReleaseField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry.release")
			}
			inner, err := UnmarshalRelease(v)
			if err != nil {
				return PackageEntry{}, err
			}
			out.Release = &inner
			data = data[n:]
		case entryYankField:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry.yank")
			}
			inner, err := UnmarshalYank(v)
			if err != nil {
				return PackageEntry{}, err
			}
			out.Yank = &inner
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return PackageEntry{}, consumeErr("bad entry field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// Init mirrors the Init variant.
type Init struct {
	Key           string
	HashAlgorithm string
}

func (m Init) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, initKeyField, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	b = protowire.AppendTag(b, initHashAlgorithmField, protowire.BytesType)
	b = protowire.AppendString(b, m.HashAlgorithm)
	return b
}

func UnmarshalInit(data []byte) (Init, error) {
	var out Init
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Init{}, consumeErr("bad init tag")
		}
		data = data[n:]
		switch num {
		case initKeyField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Init{}, consumeErr("bad init.key")
			}
			out.Key = v
			data = data[n:]
		case initHashAlgorithmField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Init{}, consumeErr("bad init.hash_algorithm")
			}
			out.HashAlgorithm = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Init{}, consumeErr("bad init field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// GrantFlat mirrors the GrantFlat variant.
type GrantFlat struct {
	Key        string
	Permission Permission
}

func (m GrantFlat) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, grantFlatKeyField, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	b = protowire.AppendTag(b, grantFlatPermissionField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Permission))
	return b
}

func UnmarshalGrantFlat(data []byte) (GrantFlat, error) {
	var out GrantFlat
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return GrantFlat{}, consumeErr("bad grant_flat tag")
		}
		data = data[n:]
		switch num {
		case grantFlatKeyField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return GrantFlat{}, consumeErr("bad grant_flat.key")
			}
			out.Key = v
			data = data[n:]
		case grantFlatPermissionField:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return GrantFlat{}, consumeErr("bad grant_flat.permission")
			}
			out.Permission = Permission(int32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return GrantFlat{}, consumeErr("bad grant_flat field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// RevokeFlat mirrors the RevokeFlat variant.
type RevokeFlat struct {
	KeyID      string
	Permission Permission
}

func (m RevokeFlat) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, revokeFlatKeyIDField, protowire.BytesType)
	b = protowire.AppendString(b, m.KeyID)
	b = protowire.AppendTag(b, revokeFlatPermissionField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Permission))
	return b
}

func UnmarshalRevokeFlat(data []byte) (RevokeFlat, error) {
	var out RevokeFlat
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return RevokeFlat{}, consumeErr("bad revoke_flat tag")
		}
		data = data[n:]
		switch num {
		case revokeFlatKeyIDField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return RevokeFlat{}, consumeErr("bad revoke_flat.key_id")
			}
			out.KeyID = v
			data = data[n:]
		case revokeFlatPermissionField:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return RevokeFlat{}, consumeErr("bad revoke_flat.permission")
			}
			out.Permission = Permission(int32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return RevokeFlat{}, consumeErr("bad revoke_flat field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// Release mirrors the Release variant.
type Release struct {
	Version     string
	ContentHash string
}

func (m Release) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, releaseVersionField, protowire.BytesType)
	b = protowire.AppendString(b, m.Version)
	b = protowire.AppendTag(b, releaseContentHashField, protowire.BytesType)
	b = protowire.AppendString(b, m.ContentHash)
	return b
}

func UnmarshalRelease(data []byte) (Release, error) {
	var out Release
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Release{}, consumeErr("bad release tag")
		}
		data = data[n:]
		switch num {
		case releaseVersionField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Release{}, consumeErr("bad release.version")
			}
			out.Version = v
			data = data[n:]
		case releaseContentHashField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Release{}, consumeErr("bad release.content_hash")
			}
			out.ContentHash = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Release{}, consumeErr("bad release field")
			}
			data = data[n:]
		}
	}
	return out, nil
}

// Yank mirrors the Yank variant.
type Yank struct {
	Version string
}

func (m Yank) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, yankVersionField, protowire.BytesType)
	b = protowire.AppendString(b, m.Version)
	return b
}

func UnmarshalYank(data []byte) (Yank, error) {
	var out Yank
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Yank{}, consumeErr("bad yank tag")
		}
		data = data[n:]
		switch num {
		case yankVersionField:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return Yank{}, consumeErr("bad yank.version")
			}
			out.Version = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Yank{}, consumeErr("bad yank field")
			}
			data = data[n:]
		}
	}
	return out, nil
}
