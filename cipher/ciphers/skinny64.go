package ciphers

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

func init() {
	cipher.Register("skinny64", newSkinny64)
}

var skinny64ShiftRows = []int{0, 1, 2, 3, 5, 6, 7, 4, 10, 11, 8, 9, 15, 12, 13, 14}
var skinny64KeyPermute = []int{8, 9, 10, 11, 12, 13, 14, 15, 2, 0, 4, 7, 6, 3, 5, 1}

var skinny64Constants = [48]uint64{
	0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3e, 0x3d, 0x3b, 0x37, 0x2f, 0x1e, 0x3c, 0x39, 0x33, 0x27,
	0x0e, 0x1d, 0x3a, 0x35, 0x2b, 0x16, 0x2c, 0x18, 0x30, 0x21, 0x02, 0x05, 0x0b, 0x17, 0x2e,
	0x1c, 0x38, 0x31, 0x23, 0x06, 0x0d, 0x1b, 0x36, 0x2d, 0x1a, 0x34, 0x29, 0x12, 0x24, 0x08,
	0x11, 0x22, 0x04,
}

type skinny64 struct {
	sb, isb          *sbox.Sbox
	shiftRows        []int
	shiftRowsInverse []int
}

func newSkinny64() cipher.Cipher {
	table := []uint64{0xc, 0x6, 0x9, 0x0, 0x1, 0xa, 0x2, 0xb, 0x3, 0x8, 0x5, 0xd, 0x4, 0xe, 0x7, 0xf}
	itable := []uint64{0x3, 0x4, 0x6, 0x8, 0xc, 0xa, 0x1, 0xe, 0x9, 0x2, 0x5, 0x7, 0x0, 0xb, 0xd, 0xf}
	return &skinny64{
		sb:               sbox.New(4, 4, table),
		isb:              sbox.New(4, 4, itable),
		shiftRows:        skinny64ShiftRows,
		shiftRowsInverse: invertNibblePermutation(skinny64ShiftRows),
	}
}

// invertNibblePermutation inverts a nibble-indexed shuffle (4 bits at a
// time) rather than a bit-level one.
func invertNibblePermutation(table []int) []int {
	inv := make([]int, len(table))
	for i, dst := range table {
		inv[dst] = i
	}
	return inv
}

func (c *skinny64) Name() string           { return "SKINNY64" }
func (c *skinny64) Structure() cipher.Structure { return cipher.SPN }
func (c *skinny64) BlockBits() uint        { return 64 }
func (c *skinny64) KeyBits() uint          { return 64 }
func (c *skinny64) NumSboxes() int         { return 16 }
func (c *skinny64) Sbox(i int) *sbox.Sbox  { return c.sb }
func (c *skinny64) Whitening() bool        { return false }

func (c *skinny64) shiftRowsApply(input uint64, table []int) uint64 {
	var output uint64
	for i := 0; i < 16; i++ {
		output ^= ((input >> uint(i*4)) & 0xf) << uint(table[i]*4)
	}
	return output
}

func (c *skinny64) linearLayer64(input uint64) uint64 {
	output := c.shiftRowsApply(input, c.shiftRows)
	output ^= (output & 0xffff00000000) >> 16
	output ^= (output & 0xffff) << 32
	output ^= (output & 0xffff00000000) << 16
	output = (output << 16) ^ (output >> 48)
	return output
}

func (c *skinny64) linearLayerInv64(input uint64) uint64 {
	output := input
	output = (output >> 16) ^ (output << 48)
	output ^= (output & 0xffff00000000) << 16
	output ^= (output & 0xffff) << 32
	output ^= (output & 0xffff00000000) >> 16
	return c.shiftRowsApply(output, c.shiftRowsInverse)
}

func (c *skinny64) LinearLayer(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.linearLayer64(x.Uint64()))
}

func (c *skinny64) LinearLayerInv(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.linearLayerInv64(x.Uint64()))
}

func (c *skinny64) ReflectionLayer(x mask128.Mask) mask128.Mask {
	panic(cipher.ErrNotImplemented)
}

func (c *skinny64) KeySchedule(rounds int, key []byte) ([]mask128.Mask, error) {
	if err := checkKeyLen(key, c.KeyBits()); err != nil {
		return nil, err
	}
	k := loadBE(key).Uint64()
	keys := make([]mask128.Mask, rounds)
	for r := 0; r < rounds; r++ {
		keys[r] = mask128.FromUint64(k & 0xffffffff)

		var tmp uint64
		for i := 0; i < 16; i++ {
			tmp ^= ((k >> uint(i*4)) & 0xf) << uint(skinny64KeyPermute[i]*4)
		}
		k = tmp
	}
	return keys, nil
}

func (c *skinny64) Encrypt(plaintext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	output := plaintext.Uint64()
	for i := 0; i < len(roundKeys); i++ {
		output = applyNibbleSbox(output, c.sb, 16)
		output ^= skinny64Constants[i] & 0xf
		output ^= (skinny64Constants[i] >> 4) << 16
		output ^= 0x2 << 32
		output ^= roundKeys[i].Uint64()
		output = c.linearLayer64(output)
	}
	return mask128.FromUint64(output), nil
}

func (c *skinny64) Decrypt(ciphertext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	rounds := len(roundKeys)
	output := ciphertext.Uint64()
	for i := 0; i < rounds; i++ {
		output = c.linearLayerInv64(output)
		output ^= roundKeys[rounds-1-i].Uint64()
		output ^= skinny64Constants[rounds-1-i] & 0xf
		output ^= (skinny64Constants[rounds-1-i] >> 4) << 16
		output ^= 0x2 << 32
		output = applyNibbleSbox(output, c.isb, 16)
	}
	return mask128.FromUint64(output), nil
}

func (c *skinny64) SboxMaskTransform(input, output mask128.Mask, _ property.Type) (mask128.Mask, mask128.Mask) {
	return input, c.LinearLayer(output)
}
