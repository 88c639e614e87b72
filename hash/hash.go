// Package hash provides the two deterministic 64-bit hash operations the
// keyspace core needs: hashing an application key to a shard coordinate, and
// computing the rendezvous weight of a (key-or-shard, node-id) pair.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher is the pluggable hash surface the keyspace core depends on. Any
// fixed 64-bit hash with good avalanche over both operands satisfies the
// contract; HashPair must change its output whenever either operand changes.
type Hasher interface {
	// HashKey maps an application key to the shard coordinate space.
	HashKey(key []byte) uint64
	// HashPair computes the rendezvous weight of a node for a given
	// key hash or shard lower bound. subject is the 8-byte numeric operand
	// (a key hash or a shard.lo); nodeID is the candidate's identifier,
	// already encoded to bytes by the caller.
	HashPair(subject uint64, nodeID []byte) uint64
}

// WeightFn scales a raw rendezvous weight by a per-node multiplier. The
// default is the identity function. This is the anticipated extension point
// for heterogeneous node capacities (see spec's weighted-node future work);
// no code path in this module currently supplies a non-default WeightFn.
type WeightFn func(weight uint64, nodeWeight uint32) uint64

// IdentityWeight is the default WeightFn: it ignores nodeWeight and returns
// weight unchanged.
func IdentityWeight(weight uint64, _ uint32) uint64 { return weight }

// XXHash is the default Hasher, backed by github.com/cespare/xxhash/v2.
// It is deterministic across process runs and platforms, which xxhash
// guarantees by construction (no per-process seeding).
type XXHash struct {
	// Weight scales the mixed hash before it is returned from HashPair.
	// Nil means IdentityWeight.
	Weight WeightFn
}

// NewXXHash returns the default Hasher with identity weighting.
func NewXXHash() XXHash { return XXHash{Weight: IdentityWeight} }

// HashKey hashes an application key with a single xxhash pass.
func (h XXHash) HashKey(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// HashPair mixes subject and nodeID through one running xxhash digest,
// the same two-write pattern the corpus's rendezvous implementations use
// (write the numeric operand, then the node identity, then Sum64): this
// keeps both operands' bytes in the same Merkle-Damgard chain so that
// changing either one perturbs the whole digest.
func (h XXHash) HashPair(subject uint64, nodeID []byte) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], subject)

	d := xxhash.New()
	d.Write(buf[:])
	d.Write(nodeID)
	w := d.Sum64()

	weight := h.Weight
	if weight == nil {
		weight = IdentityWeight
	}
	return weight(w, 1)
}

var _ Hasher = XXHash{}
