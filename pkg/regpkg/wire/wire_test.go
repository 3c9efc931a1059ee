package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	in := Envelope{
		Contents:  []byte{0, 1, 2, 3},
		KeyID:     "sha256:aa",
		Signature: "ed25519:bb",
	}
	out, err := UnmarshalEnvelope(in.Marshal())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPackageRecord_RoundTrip(t *testing.T) {
	prev := "sha256:aa"
	in := PackageRecord{
		Prev:    &prev,
		Version: 1,
		Time:    &Timestamp{Seconds: 100, Nanos: 7},
		Entries: []PackageEntry{
			{Init: &Init{Key: "ed25519:aa", HashAlgorithm: "sha256"}},
			{GrantFlat: &GrantFlat{Key: "ed25519:bb", Permission: PermissionRelease}},
			{RevokeFlat: &RevokeFlat{KeyID: "sha256:cc", Permission: PermissionYank}},
			{Release: &Release{Version: "1.2.0", ContentHash: "sha256:dd"}},
			{Yank: &Yank{Version: "1.2.0"}},
		},
	}
	out, err := UnmarshalPackageRecord(in.Marshal())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPackageRecord_GenesisHasNilPrev(t *testing.T) {
	in := PackageRecord{Version: 0, Time: &Timestamp{Seconds: 1}}
	out, err := UnmarshalPackageRecord(in.Marshal())
	require.NoError(t, err)
	assert.Nil(t, out.Prev)
}

func TestUnmarshalPackageRecord_MissingTime(t *testing.T) {
	in := PackageRecord{Version: 1}
	out, err := UnmarshalPackageRecord(in.Marshal())
	require.NoError(t, err)
	assert.Nil(t, out.Time)
}

func TestUnmarshal_Truncated(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte{0x0a, 0xff})
	require.Error(t, err)
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	in := Envelope{Contents: []byte("x"), KeyID: "k", Signature: "s"}
	b := in.Marshal()
	b = append(b, mustUnknownField()...)
	out, err := UnmarshalEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func mustUnknownField() []byte {
	t := Timestamp{Seconds: 42}
	var b []byte
	b = append(b, 0x7a) // field 15, wire type 2 (bytes)
	inner := t.Marshal()
	b = append(b, byte(len(inner)))
	b = append(b, inner...)
	return b
}
