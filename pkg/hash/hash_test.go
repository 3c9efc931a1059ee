package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ZeroDigestRoundTrips(t *testing.T) {
	zeros := strings.Repeat("00", sha256Size(t))
	h, err := Parse("sha256:" + zeros)
	require.NoError(t, err)
	assert.Equal(t, SHA256, h.Algorithm)
	for _, b := range h.Digest {
		assert.Equal(t, byte(0), b)
	}
	assert.Equal(t, "sha256:"+zeros, h.String())
}

func TestParse_UnknownAlgorithm(t *testing.T) {
	_, err := Parse("md5:aabbcc")
	require.Error(t, err)
}

func TestParse_MalformedHex(t *testing.T) {
	_, err := Parse("sha256:not-hex-zz")
	require.Error(t, err)
}

func TestParse_LengthMismatch(t *testing.T) {
	_, err := Parse("sha256:aabbcc")
	require.Error(t, err)
}

func TestParse_MissingSeparator(t *testing.T) {
	_, err := Parse("sha256aabbcc")
	require.Error(t, err)
}

func TestOf_RoundTrip(t *testing.T) {
	h, err := Of(SHA256, []byte("hello world"))
	require.NoError(t, err)

	parsed, err := Parse(h.String())
	require.NoError(t, err)
	assert.True(t, h.Equal(parsed))
}

func TestEqual(t *testing.T) {
	a, err := Of(SHA256, []byte{1, 2, 3})
	require.NoError(t, err)
	b, err := Of(SHA256, []byte{1, 2, 3})
	require.NoError(t, err)
	c, err := Of(SHA256, []byte{1, 2, 4})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func sha256Size(t *testing.T) int {
	t.Helper()
	return SHA256.Size()
}
