// Package signing provides the algorithm-tagged public/private key and
// signature types used to authenticate package log entries, along with
// file-based key-pair persistence.
//
// LibreSeed-style key handling: Ed25519 keys, SHA-256 key IDs. Unlike a
// bare ed25519.PublicKey, PublicKey and Signature here carry an
// Algorithm tag and a "<algo>:<hex>" textual form so both can travel
// through the wire codec the same way a Hash does.
package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkgchain/registry/pkg/hash"
)

// Algorithm identifies a supported signing algorithm.
type Algorithm string

const (
	// Ed25519 is the only signing algorithm this registry version supports.
	Ed25519 Algorithm = "ed25519"
)

// PublicKey is an algorithm-tagged public key.
type PublicKey struct {
	Algorithm Algorithm
	KeyBytes  []byte
}

// NewPublicKey validates and wraps raw Ed25519 public key bytes.
func NewPublicKey(keyBytes []byte) (PublicKey, error) {
	if len(keyBytes) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf("signing: invalid ed25519 public key size: expected %d bytes, got %d",
			ed25519.PublicKeySize, len(keyBytes))
	}
	return PublicKey{Algorithm: Ed25519, KeyBytes: keyBytes}, nil
}

// Digest computes the key_id of pk: the hash of its raw key bytes.
func (pk PublicKey) Digest() (hash.Hash, error) {
	return hash.Of(hash.SHA256, pk.KeyBytes)
}

// Verify reports whether signature is a valid signature over message
// under this public key.
func (pk PublicKey) Verify(message []byte, signature Signature) bool {
	if pk.Algorithm != Ed25519 || signature.Algorithm != Ed25519 {
		return false
	}
	if len(signature.SignatureBytes) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk.KeyBytes), message, signature.SignatureBytes)
}

// String renders the key in "<algo>:<hex>" form.
func (pk PublicKey) String() string {
	return fmt.Sprintf("%s:%s", pk.Algorithm, hex.EncodeToString(pk.KeyBytes))
}

// ParsePublicKey parses a public key's "<algo>:<hex>" textual form.
func ParsePublicKey(s string) (PublicKey, error) {
	algoPart, hexPart, ok := strings.Cut(s, ":")
	if !ok {
		return PublicKey{}, fmt.Errorf("signing: cannot parse public key %q: missing ':' separator", s)
	}
	if Algorithm(algoPart) != Ed25519 {
		return PublicKey{}, fmt.Errorf("signing: cannot parse public key %q: unknown algorithm %q", s, algoPart)
	}
	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return PublicKey{}, fmt.Errorf("signing: cannot parse public key %q: malformed hex: %w", s, err)
	}
	return NewPublicKey(raw)
}

// PrivateKey is an algorithm-tagged private key, usable to produce Signatures.
type PrivateKey struct {
	Algorithm Algorithm
	KeyBytes  ed25519.PrivateKey
}

// GeneratePrivateKey generates a new Ed25519 key pair.
func GeneratePrivateKey() (PrivateKey, PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("signing: failed to generate keypair: %w", err)
	}
	pubKey, err := NewPublicKey(pub)
	if err != nil {
		return PrivateKey{}, PublicKey{}, err
	}
	return PrivateKey{Algorithm: Ed25519, KeyBytes: priv}, pubKey, nil
}

// PublicKey derives the public key corresponding to this private key.
func (sk PrivateKey) PublicKey() (PublicKey, error) {
	pub, ok := sk.KeyBytes.Public().(ed25519.PublicKey)
	if !ok {
		return PublicKey{}, fmt.Errorf("signing: private key does not expose an ed25519 public key")
	}
	return NewPublicKey(pub)
}

// Sign signs message, returning the resulting Signature. Fails only if
// the underlying signer fails.
func (sk PrivateKey) Sign(message []byte) (Signature, error) {
	if sk.Algorithm != Ed25519 || len(sk.KeyBytes) != ed25519.PrivateKeySize {
		return Signature{}, &SignatureError{Cause: fmt.Errorf("signing: invalid ed25519 private key")}
	}
	sig := ed25519.Sign(sk.KeyBytes, message)
	return Signature{Algorithm: Ed25519, SignatureBytes: sig}, nil
}

// SignatureError wraps a failure originating from the signer itself,
// as opposed to a parse or validation error.
type SignatureError struct {
	Cause error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signing: signature operation failed: %v", e.Cause)
}

func (e *SignatureError) Unwrap() error {
	return e.Cause
}

// Signature is an algorithm-tagged signature.
type Signature struct {
	Algorithm      Algorithm
	SignatureBytes []byte
}

// String renders the signature in "<algo>:<hex>" form.
func (s Signature) String() string {
	return fmt.Sprintf("%s:%s", s.Algorithm, hex.EncodeToString(s.SignatureBytes))
}

// ParseSignature parses a signature's "<algo>:<hex>" textual form.
func ParseSignature(s string) (Signature, error) {
	algoPart, hexPart, ok := strings.Cut(s, ":")
	if !ok {
		return Signature{}, fmt.Errorf("signing: cannot parse signature %q: missing ':' separator", s)
	}
	if Algorithm(algoPart) != Ed25519 {
		return Signature{}, fmt.Errorf("signing: cannot parse signature %q: unknown algorithm %q", s, algoPart)
	}
	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return Signature{}, fmt.Errorf("signing: cannot parse signature %q: malformed hex: %w", s, err)
	}
	if len(raw) != ed25519.SignatureSize {
		return Signature{}, fmt.Errorf("signing: cannot parse signature %q: expected %d bytes, got %d",
			s, ed25519.SignatureSize, len(raw))
	}
	return Signature{Algorithm: Ed25519, SignatureBytes: raw}, nil
}

// Signer is the external collaborator interface consumed by the
// envelope signing operation (spec §6): anything that can sign a
// message and report its own public key.
type Signer interface {
	Sign(message []byte) (Signature, error)
	PublicKey() (PublicKey, error)
}

// signerFromPrivateKey adapts a PrivateKey to the Signer interface.
type signerFromPrivateKey struct {
	key PrivateKey
}

// AsSigner adapts sk to the Signer interface.
func (sk PrivateKey) AsSigner() Signer {
	return signerFromPrivateKey{key: sk}
}

func (s signerFromPrivateKey) Sign(message []byte) (Signature, error) {
	return s.key.Sign(message)
}

func (s signerFromPrivateKey) PublicKey() (PublicKey, error) {
	return s.key.PublicKey()
}
