package regpkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pkgchain/registry/pkg/hash"
	"github.com/pkgchain/registry/pkg/regpkg/wire"
	"github.com/pkgchain/registry/pkg/semver"
	"github.com/pkgchain/registry/pkg/signing"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	alicePriv, alicePub, err := signing.GeneratePrivateKey()
	require.NoError(t, err)
	_, bobPub, err := signing.GeneratePrivateKey()
	require.NoError(t, err)
	bobKeyID, err := bobPub.Digest()
	require.NoError(t, err)

	content, err := hash.Of(hash.SHA256, []byte{0, 1, 2, 3})
	require.NoError(t, err)
	version, err := semver.Parse("1.2.0")
	require.NoError(t, err)

	record := PackageRecord{
		Version:   0,
		Timestamp: time.Unix(1_700_000_000, 0).UTC(),
		Entries: []PackageEntry{
			NewInitEntry(hash.SHA256, alicePub),
			NewGrantFlatEntry(bobPub, PermissionRelease),
			NewRevokeFlatEntry(bobKeyID, PermissionRelease),
			NewReleaseEntry(version, content),
		},
	}

	env, err := Sign(record, alicePriv.AsSigner())
	require.NoError(t, err)

	encoded := env.Encode()
	decoded, err := DecodeRecordEnvelope(encoded)
	require.NoError(t, err)

	assert.Equal(t, env, decoded)
	assert.NoError(t, decoded.Verify(alicePub))
}

func TestEnvelope_VerifyRejectsWrongKey(t *testing.T) {
	alicePriv, _, err := signing.GeneratePrivateKey()
	require.NoError(t, err)
	_, wrongPub, err := signing.GeneratePrivateKey()
	require.NoError(t, err)

	record := PackageRecord{Version: 0, Timestamp: time.Unix(1, 0).UTC()}
	env, err := Sign(record, alicePriv.AsSigner())
	require.NoError(t, err)

	assert.Error(t, env.Verify(wrongPub))
}

// TestEnvelope_CanonicityIndependence builds envelope wire bytes with
// fields in non-canonical (reversed) order and checks that decoding
// still succeeds and the stored content_bytes still verify, since
// content_bytes are carried verbatim rather than re-derived.
func TestEnvelope_CanonicityIndependence(t *testing.T) {
	priv, pub, err := signing.GeneratePrivateKey()
	require.NoError(t, err)

	record := PackageRecord{Version: 0, Timestamp: time.Unix(5, 0).UTC()}
	contentBytes, err := record.MarshalBinary()
	require.NoError(t, err)
	sig, err := priv.Sign(contentBytes)
	require.NoError(t, err)
	keyID, err := pub.Digest()
	require.NoError(t, err)

	var b []byte
	b = protowire.AppendTag(b, 3, protowire.BytesType) // signature first
	b = protowire.AppendString(b, sig.String())
	b = protowire.AppendTag(b, 2, protowire.BytesType) // then key_id
	b = protowire.AppendString(b, keyID.String())
	b = protowire.AppendTag(b, 1, protowire.BytesType) // contents last
	b = protowire.AppendBytes(b, contentBytes)

	decoded, err := DecodeRecordEnvelope(b)
	require.NoError(t, err)
	require.NoError(t, decoded.Verify(pub))

	reencoded := decoded.Encode()
	redecoded, err := DecodeRecordEnvelope(reencoded)
	require.NoError(t, err)
	assert.NoError(t, redecoded.Verify(pub))
}

func TestDecodeRecord_MissingTimestamp(t *testing.T) {
	w := wire.PackageRecord{Version: 1}
	_, err := DecodeRecord(w.Marshal())
	require.Error(t, err)
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestPermission_UnknownOrdinal(t *testing.T) {
	_, pub, err := signing.GeneratePrivateKey()
	require.NoError(t, err)

	w := wire.PackageRecord{
		Version: 1,
		Time:    &wire.Timestamp{Seconds: 1},
		Entries: []wire.PackageEntry{
			{GrantFlat: &wire.GrantFlat{Key: pub.String(), Permission: wire.Permission(99)}},
		},
	}
	_, err = DecodeRecord(w.Marshal())
	require.Error(t, err)
	var unknown *UnknownEnumValueError
	assert.ErrorAs(t, err, &unknown)
}
