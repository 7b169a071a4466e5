// Package xmath holds small generic numeric helpers shared by the search
// engine: parity, population count and masking over unsigned integer types.
package xmath

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Parity returns 0 or 1, the XOR of every bit of x.
func Parity[T constraints.Unsigned](x T) uint64 {
	return uint64(bits.OnesCount64(uint64(x)) & 1)
}

// PopCount returns the number of set bits in x.
func PopCount[T constraints.Unsigned](x T) int {
	return bits.OnesCount64(uint64(x))
}

// MaskBits returns x with only its lowest n bits retained.
func MaskBits[T constraints.Unsigned](x T, n uint) T {
	if n >= 64 {
		return x
	}
	return x & ((T(1) << n) - 1)
}

// InnerParity returns <a,b> over GF(2), i.e. the parity of popcount(a&b).
func InnerParity[T constraints.Unsigned](a, b T) uint64 {
	return Parity(a & b)
}
