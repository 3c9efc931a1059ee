package path

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgchain/registry/pkg/hash"
)

// TestFromKey_MSBOrder mirrors forrest's map/path.rs::test(): walks the
// digest of "foo" from both ends simultaneously, checking that forward
// iteration yields each byte's bits most-significant first and
// backward iteration yields them least-significant first.
func TestFromKey_MSBOrder(t *testing.T) {
	digest := sha256.Sum256([]byte("foo"))

	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	for i := 0; i < len(digest)/2; i++ {
		lhs := digest[i]
		for shift := 7; shift >= 0; shift-- {
			bit, ok := p.Next()
			require.True(t, ok)
			assert.Equal(t, (lhs>>uint(shift))&1 == 1, bit)
		}

		rhs := digest[len(digest)-1-i]
		for shift := 0; shift <= 7; shift++ {
			bit, ok := p.NextBack()
			require.True(t, ok)
			assert.Equal(t, (rhs>>uint(shift))&1 == 1, bit)
		}
	}

	_, ok := p.Next()
	assert.False(t, ok)
	_, ok = p.NextBack()
	assert.False(t, ok)
}

func TestFromKey_FirstAndLastByte(t *testing.T) {
	digest := sha256.Sum256([]byte("foo"))
	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		bit, ok := p.Next()
		require.True(t, ok)
		assert.Equal(t, (digest[0]>>uint(7-i))&1 == 1, bit)
	}

	p2, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)
	for i := 0; i < 256-8; i++ {
		_, ok := p2.Next()
		require.True(t, ok)
	}
	for i := 0; i < 8; i++ {
		bit, ok := p2.Next()
		require.True(t, ok)
		assert.Equal(t, (digest[31]>>uint(7-i))&1 == 1, bit)
	}
}

func TestLen_ExactSizeFused(t *testing.T) {
	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	assert.Equal(t, 256, p.Len())

	for p.Len() > 0 {
		before := p.Len()
		_, ok := p.Next()
		require.True(t, ok)
		assert.Equal(t, before-1, p.Len())
	}

	_, ok := p.Next()
	assert.False(t, ok)
	_, ok = p.NextBack()
	assert.False(t, ok)
}

func TestLen_MeetsWithoutOverlap(t *testing.T) {
	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	count := 0
	for {
		if _, ok := p.Next(); ok {
			count++
		} else {
			break
		}
		if _, ok := p.NextBack(); ok {
			count++
		} else {
			break
		}
	}
	assert.Equal(t, 256, count)
	assert.Equal(t, 0, p.Len())
}

func TestHash_DomainSeparation(t *testing.T) {
	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	leaf, err := p.Hash([]byte("value"))
	require.NoError(t, err)

	manual := append([]byte{0xFF}, sha256.Sum256([]byte("foo"))[:]...)
	manual = append(manual, []byte("value")...)
	want, err := hash.Of(hash.SHA256, manual)
	require.NoError(t, err)

	assert.True(t, leaf.Equal(want))
}

func TestHash_DifferentValuesDifferentHashes(t *testing.T) {
	p, err := FromKey(hash.SHA256, []byte("foo"))
	require.NoError(t, err)

	a, err := p.Hash([]byte("a"))
	require.NoError(t, err)
	b, err := p.Hash([]byte("b"))
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}
