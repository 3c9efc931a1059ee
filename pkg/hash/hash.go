// Package hash provides algorithm-tagged content digests for the
// registry's log format.
//
// A Hash pairs a digest algorithm identifier with the raw digest bytes
// it produced. Its textual form, "<algo>:<lowercase-hex>", is the wire
// representation used everywhere a hash crosses a serialization
// boundary: key IDs, content hashes, and the prev-record link.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	// SHA256 is the only digest algorithm this registry version supports.
	// A package log fixes its algorithm once, at Init, so new algorithms
	// can be added without breaking existing logs.
	SHA256 Algorithm = "sha256"
)

// Size returns the digest length in bytes for the algorithm, or 0 if
// the algorithm is not recognized.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return sha256.Size
	default:
		return 0
	}
}

// String returns the textual form of the algorithm, e.g. "sha256".
func (a Algorithm) String() string {
	return string(a)
}

// ParseAlgorithm parses an algorithm's textual form.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case SHA256:
		return SHA256, nil
	default:
		return "", fmt.Errorf("hash: unknown algorithm %q", s)
	}
}

// Hash is an algorithm-tagged digest.
type Hash struct {
	Algorithm Algorithm
	Digest    []byte
}

// Of computes the hash of data under algo.
func Of(algo Algorithm, data []byte) (Hash, error) {
	switch algo {
	case SHA256:
		sum := sha256.Sum256(data)
		return Hash{Algorithm: algo, Digest: sum[:]}, nil
	default:
		return Hash{}, fmt.Errorf("hash: unknown algorithm %q", algo)
	}
}

// String renders the hash in "<algo>:<hex>" form.
func (h Hash) String() string {
	return fmt.Sprintf("%s:%s", h.Algorithm, hex.EncodeToString(h.Digest))
}

// IsZero reports whether h is the zero value (no algorithm, no digest).
func (h Hash) IsZero() bool {
	return h.Algorithm == "" && len(h.Digest) == 0
}

// Equal reports whether h and other represent the same algorithm and digest.
func (h Hash) Equal(other Hash) bool {
	if h.Algorithm != other.Algorithm {
		return false
	}
	if len(h.Digest) != len(other.Digest) {
		return false
	}
	for i := range h.Digest {
		if h.Digest[i] != other.Digest[i] {
			return false
		}
	}
	return true
}

// ParseError reports a failure to parse a Hash's textual form.
type ParseError struct {
	Input string
	Cause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hash: cannot parse %q: %s", e.Input, e.Cause)
}

// Parse parses a hash's "<algo>:<hex>" textual form.
func Parse(s string) (Hash, error) {
	algoPart, hexPart, ok := strings.Cut(s, ":")
	if !ok {
		return Hash{}, &ParseError{Input: s, Cause: "missing ':' separator"}
	}

	algo, err := ParseAlgorithm(algoPart)
	if err != nil {
		return Hash{}, &ParseError{Input: s, Cause: err.Error()}
	}

	digest, err := hex.DecodeString(hexPart)
	if err != nil {
		return Hash{}, &ParseError{Input: s, Cause: "malformed hex: " + err.Error()}
	}

	if want := algo.Size(); len(digest) != want {
		return Hash{}, &ParseError{
			Input: s,
			Cause: fmt.Sprintf("expected %d digest bytes for %s, got %d", want, algo, len(digest)),
		}
	}

	return Hash{Algorithm: algo, Digest: digest}, nil
}
