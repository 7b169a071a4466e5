// Package ciphers holds the concrete per-cipher tables (S-boxes, linear
// layers, key schedules) that spec §1 treats as external plumbing around
// the core engine: each cipher here only needs to satisfy cipher.Cipher.
package ciphers

import (
	"fmt"

	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/sbox"
)

// applyNibbleSbox applies sb, a 4-bit S-box, to every nibble of state
// across numNibbles positions (the bricklayer of most of the 64-bit
// ciphers this package implements).
func applyNibbleSbox(state uint64, sb *sbox.Sbox, numNibbles int) uint64 {
	var out uint64
	for i := 0; i < numNibbles; i++ {
		shift := uint(4 * i)
		nibble := (state >> shift) & 0xf
		out ^= sb.Apply(nibble) << shift
	}
	return out
}

// bitPermute applies a bit permutation table (table[i] = destination
// position of source bit i) to a value of the given width.
func bitPermute(x uint64, table []int) uint64 {
	var out uint64
	for i, dst := range table {
		if x&(1<<uint(i)) != 0 {
			out |= 1 << uint(dst)
		}
	}
	return out
}

// invertPermutation returns the inverse of a bit-position permutation table.
func invertPermutation(table []int) []int {
	inv := make([]int, len(table))
	for i, dst := range table {
		inv[dst] = i
	}
	return inv
}

func checkKeyLen(key []byte, keyBits uint) error {
	if len(key)*8 != int(keyBits) {
		return fmt.Errorf("ciphers: invalid key length %d bytes, want %d bits", len(key), keyBits)
	}
	return nil
}

// rotl rotates k left by n bits within a register of the given width.
func rotl(k mask128.Mask, n, width uint) mask128.Mask {
	n %= width
	if n == 0 {
		return k.MaskTo(width)
	}
	left := k.Shl(n).MaskTo(width)
	right := k.Shr(width - n)
	return left.Or(right)
}

// loadBE loads up to 16 bytes of key material big-endian into a Mask.
func loadBE(key []byte) mask128.Mask {
	var hi, lo uint64
	n := len(key)
	for i := 0; i < n; i++ {
		b := uint64(key[i])
		bitpos := (n - 1 - i) * 8
		if bitpos >= 64 {
			hi |= b << uint(bitpos-64)
		} else {
			lo |= b << uint(bitpos)
		}
	}
	return mask128.Mask{Hi: hi, Lo: lo}
}
