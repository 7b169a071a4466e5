// Package kprng implements a keyed, seedable byte stream used to
// derive round keys and dedup hashes deterministically from a fixed
// key, the same "clockable PRNG" shape the teacher repo uses for
// reproducible randomness.
package kprng

import (
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// PRNG is a reusable keyed byte stream: the same key always produces
// the same stream from the start, and Reset rewinds to that start
// without needing to reconstruct the object.
type PRNG struct {
	key   []byte
	shake sha3.ShakeHash
	clock uint64
}

// New derives a PRNG from key via SHAKE256, absorbing key once at
// construction (and again on every Reset).
func New(key []byte) (*PRNG, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("kprng: key must be non-empty")
	}
	p := &PRNG{key: append([]byte(nil), key...)}
	p.reinit()
	return p, nil
}

func (p *PRNG) reinit() {
	p.shake = sha3.NewShake256()
	p.shake.Write(p.key)
	p.clock = 0
}

// Read fills b with bytes from the stream, always returning len(b), nil.
func (p *PRNG) Read(b []byte) (int, error) {
	n, err := p.shake.Read(b)
	p.clock += uint64(n)
	return n, err
}

// Reset rewinds the stream to its state immediately after New.
func (p *PRNG) Reset() {
	p.reinit()
}

// Clock returns the number of bytes emitted since the last Reset.
func (p *PRNG) Clock() uint64 {
	return p.clock
}

// FastHash64 returns a blake3-derived 64-bit digest of b, used as the
// pattern enumerator's visited-set key where cryptographic strength is
// unnecessary and throughput matters.
func FastHash64(b []byte) uint64 {
	sum := blake3.Sum256(b)
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(sum[i])
	}
	return v
}
