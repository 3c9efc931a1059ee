package regpkg

import (
	"fmt"

	"github.com/pkgchain/registry/pkg/hash"
	"github.com/pkgchain/registry/pkg/regpkg/wire"
	"github.com/pkgchain/registry/pkg/signing"
)

// Contents is anything that can serve as the signed payload of an
// Envelope. MarshalBinary is expected never to fail for a
// correctly-constructed value; the error return exists only to satisfy
// encoding.BinaryMarshaler.
type Contents interface {
	MarshalBinary() ([]byte, error)
}

// Envelope binds an arbitrary signed payload to the key that signed it
// and the signature itself, mirroring spec §4's Envelope message but
// generic over the payload type C so the same wrapper serves both
// PackageRecord and any future signed content this registry grows.
//
// Decoding an envelope (Decode) and verifying it (Verify) are
// deliberately separate operations: a caller may need to read key_id
// and inspect the claimed signer before it has fetched the
// corresponding public key, or may want to decode untrusted bytes
// purely for display without ever verifying them.
type Envelope[C Contents] struct {
	// Contents is the decoded payload.
	Contents C

	// ContentBytes are the exact bytes the signature covers, as produced
	// at signing time or as received on the wire. Content_bytes is
	// signed and verified verbatim; it is not required to be the
	// canonical re-encoding of Contents, so Encode reuses these bytes
	// rather than re-marshaling Contents.
	ContentBytes []byte

	// KeyID is the claimed signer, asserted but not yet checked against
	// any trust store by Decode.
	KeyID hash.Hash

	// Signature is the claimed signature over ContentBytes.
	Signature signing.Signature
}

// Sign produces a new Envelope by signing contents with signer.
func Sign[C Contents](contents C, signer signing.Signer) (Envelope[C], error) {
	contentBytes, err := contents.MarshalBinary()
	if err != nil {
		return Envelope[C]{}, err
	}

	pub, err := signer.PublicKey()
	if err != nil {
		return Envelope[C]{}, fmt.Errorf("regpkg: failed to obtain signer's public key: %w", err)
	}
	keyID, err := pub.Digest()
	if err != nil {
		return Envelope[C]{}, fmt.Errorf("regpkg: failed to compute key id: %w", err)
	}

	sig, err := signer.Sign(contentBytes)
	if err != nil {
		return Envelope[C]{}, err
	}

	return Envelope[C]{
		Contents:     contents,
		ContentBytes: contentBytes,
		KeyID:        keyID,
		Signature:    sig,
	}, nil
}

// Decode parses data as a wire Envelope and decodes its contents using
// decodeContents, without verifying the signature. Callers that intend
// to trust the result must call Verify with the appropriate public key
// afterward.
func Decode[C Contents](data []byte, decodeContents func([]byte) (C, error)) (Envelope[C], error) {
	w, err := wire.UnmarshalEnvelope(data)
	if err != nil {
		return Envelope[C]{}, &ProtobufParseError{Cause: err}
	}

	keyID, err := hash.Parse(w.KeyID)
	if err != nil {
		return Envelope[C]{}, &KeyIDParseError{Cause: err}
	}

	sig, err := signing.ParseSignature(w.Signature)
	if err != nil {
		return Envelope[C]{}, &SignatureParseError{Cause: err}
	}

	contents, err := decodeContents(w.Contents)
	if err != nil {
		return Envelope[C]{}, err
	}

	return Envelope[C]{
		Contents:     contents,
		ContentBytes: w.Contents,
		KeyID:        keyID,
		Signature:    sig,
	}, nil
}

// Verify reports whether key is the claimed signer (its digest matches
// KeyID) and whether Signature is a valid signature over ContentBytes
// under key.
func (e Envelope[C]) Verify(key signing.PublicKey) error {
	digest, err := key.Digest()
	if err != nil {
		return fmt.Errorf("regpkg: failed to compute key id: %w", err)
	}
	if !digest.Equal(e.KeyID) {
		return fmt.Errorf("regpkg: key id mismatch: envelope claims %s, key is %s", e.KeyID, digest)
	}
	if !key.Verify(e.ContentBytes, e.Signature) {
		return fmt.Errorf("regpkg: signature verification failed")
	}
	return nil
}

// Encode serializes e back to its wire-format bytes, reusing
// ContentBytes verbatim rather than re-marshaling Contents.
func (e Envelope[C]) Encode() []byte {
	w := wire.Envelope{
		Contents:  e.ContentBytes,
		KeyID:     e.KeyID.String(),
		Signature: e.Signature.String(),
	}
	return w.Marshal()
}

// DecodeRecordEnvelope decodes an Envelope[PackageRecord] from its
// wire-format bytes, without verifying its signature.
func DecodeRecordEnvelope(data []byte) (Envelope[PackageRecord], error) {
	return Decode[PackageRecord](data, DecodeRecord)
}
