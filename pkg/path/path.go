// Package path implements the content-addressed bit-sequence used to
// route a key down a binary trie: Path turns a key into the sequence
// of bits of its digest, consumable from either end, and provides the
// domain-separated leaf hash used at the bottom of that trie.
//
// Grounded directly on forrest's map/path.rs: a Path is a
// (digest, lhs, rhs) cursor pair rather than a decoded []bool, so
// iterating it costs no allocation beyond the one digest computed at
// construction.
package path

import (
	"fmt"

	"github.com/pkgchain/registry/pkg/hash"
)

// leafPrefix domain-separates leaf hashes from any other hash computed
// over key-digest-shaped material.
const leafPrefix = 0xFF

// Path is a finite, double-ended, exact-size sequence of the bits of a
// key's digest, traversed most-significant-bit first.
//
// The zero value is not valid; construct with FromKey.
type Path struct {
	algo hash.Algorithm
	all  []byte
	lhs  int
	rhs  int
}

// FromKey computes the digest of key under algo and returns the Path
// over its bits, lhs at 0 and rhs at 8*len(digest).
func FromKey(algo hash.Algorithm, key []byte) (Path, error) {
	h, err := hash.Of(algo, key)
	if err != nil {
		return Path{}, err
	}
	return Path{algo: algo, all: h.Digest, lhs: 0, rhs: len(h.Digest) * 8}, nil
}

// Len reports the number of bits remaining between the two cursors.
func (p Path) Len() int {
	return p.rhs - p.lhs
}

func (p Path) get(at int) bool {
	shift := 7 - at%8
	b := at / 8
	return (p.all[b]>>shift)&1 == 1
}

// Next consumes and returns the next bit from the front (most
// significant end), advancing lhs. ok is false once the cursors meet.
func (p *Path) Next() (bit bool, ok bool) {
	if p.lhs == p.rhs {
		return false, false
	}
	bit = p.get(p.lhs)
	p.lhs++
	return bit, true
}

// NextBack consumes and returns the next bit from the back (least
// significant end), retreating rhs. ok is false once the cursors meet.
//
// Next and NextBack are fused: once Len reaches 0, both keep returning
// ok=false rather than wrapping.
func (p *Path) NextBack() (bit bool, ok bool) {
	if p.lhs == p.rhs {
		return false, false
	}
	p.rhs--
	return p.get(p.rhs), true
}

// Hash computes the domain-separated leaf hash for this path and a
// leaf value: H(0xFF || digest(key) || value). The leading 0xFF byte
// prevents collision between leaf digests and arbitrary key-digest
// material appearing elsewhere in the trie.
func (p Path) Hash(value []byte) (hash.Hash, error) {
	data := make([]byte, 0, 1+len(p.all)+len(value))
	data = append(data, leafPrefix)
	data = append(data, p.all...)
	data = append(data, value...)
	return hash.Of(p.algo, data)
}

// Link pairs a node with the hash that addresses it: a leaf's Hash
// method for leaves, or the caller-supplied fork hash for forks.
type Link[V any] struct {
	Hash hash.Hash
	Node Node[V]
}

// Node is either a Leaf holding a value or a Fork identified only by a
// caller-supplied hash; a fork Node does not hold its children, and how
// that hash is derived from them is left to the trie implementation.
// It mirrors forrest's
// Node enum; this registry does not persist a trie, so Node exists to
// give Path.Hash and future validators a typed home, not as a storage
// structure.
type Node[V any] struct {
	IsLeaf bool
	Leaf   V

	ForkHash hash.Hash
}

// NewLeaf constructs a leaf node.
func NewLeaf[V any](value V) Node[V] {
	return Node[V]{IsLeaf: true, Leaf: value}
}

// NewFork constructs a fork node addressed by forkHash, the hash of
// whatever the trie implementation combines its two children into.
func NewFork[V any](forkHash hash.Hash) Node[V] {
	return Node[V]{IsLeaf: false, ForkHash: forkHash}
}

// LinkLeaf builds the Link for a leaf node reached via p, hashing
// value with p's domain-separated leaf hash.
func LinkLeaf[V interface{ ~[]byte }](p Path, value V) (Link[V], error) {
	h, err := p.Hash(value)
	if err != nil {
		return Link[V]{}, fmt.Errorf("path: failed to hash leaf: %w", err)
	}
	return Link[V]{Hash: h, Node: NewLeaf(value)}, nil
}

// LinkFork builds the Link for a fork node whose hash has already been
// computed by the caller (the combination rule for two children is the
// trie implementation's concern, not Path's).
func LinkFork[V any](forkHash hash.Hash) Link[V] {
	return Link[V]{Hash: forkHash, Node: NewFork[V](forkHash)}
}
