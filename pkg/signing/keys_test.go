package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateEd25519Pair(t *testing.T) (PublicKey, PrivateKey) {
	t.Helper()
	priv, pub, err := GeneratePrivateKey()
	require.NoError(t, err)
	return pub, priv
}

func TestSignAndVerify(t *testing.T) {
	pub, priv := generateEd25519Pair(t)
	message := []byte("package release v1.2.0")

	sig, err := priv.Sign(message)
	require.NoError(t, err)

	assert.True(t, pub.Verify(message, sig))
	assert.False(t, pub.Verify([]byte("tampered"), sig))
}

func TestPublicKey_StringRoundTrip(t *testing.T) {
	pub, _ := generateEd25519Pair(t)

	parsed, err := ParsePublicKey(pub.String())
	require.NoError(t, err)
	assert.Equal(t, pub, parsed)
}

func TestSignature_StringRoundTrip(t *testing.T) {
	_, priv := generateEd25519Pair(t)
	sig, err := priv.Sign([]byte("data"))
	require.NoError(t, err)

	parsed, err := ParseSignature(sig.String())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)
}

func TestParsePublicKey_UnknownAlgorithm(t *testing.T) {
	_, err := ParsePublicKey("p256:aabbcc")
	require.Error(t, err)
}

func TestParseSignature_WrongLength(t *testing.T) {
	_, err := ParseSignature("ed25519:aabb")
	require.Error(t, err)
}

func TestDigest(t *testing.T) {
	pub, _ := generateEd25519Pair(t)
	d, err := pub.Digest()
	require.NoError(t, err)
	assert.Equal(t, 32, len(d.Digest))
}

func TestKeyManager_GenerateThenReload(t *testing.T) {
	dir := t.TempDir()

	km, err := NewKeyManager(dir)
	require.NoError(t, err)
	require.NoError(t, km.EnsureKeysExist())

	originalPub := km.PublicKey()

	km2, err := NewKeyManager(dir)
	require.NoError(t, err)
	require.NoError(t, km2.EnsureKeysExist())

	assert.Equal(t, originalPub.String(), km2.PublicKey().String())
}

func TestSigner_Adapter(t *testing.T) {
	pub, priv := generateEd25519Pair(t)
	var signer Signer = priv.AsSigner()

	sig, err := signer.Sign([]byte("hello"))
	require.NoError(t, err)
	assert.True(t, pub.Verify([]byte("hello"), sig))

	signerPub, err := signer.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, pub, signerPub)
}
