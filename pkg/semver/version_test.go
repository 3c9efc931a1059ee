package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	v, err := Parse("1.2.0")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 1, Minor: 2, Patch: 0}, v)
	assert.Equal(t, "1.2.0", v.String())
}

func TestParse_RejectsPreRelease(t *testing.T) {
	_, err := Parse("1.2.0-beta.1")
	require.Error(t, err)
}

func TestParse_RejectsBuildMetadata(t *testing.T) {
	_, err := Parse("1.2.0+build5")
	require.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("not-a-version")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	a, err := Parse("1.2.0")
	require.NoError(t, err)
	b, err := Parse("1.3.0")
	require.NoError(t, err)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}
