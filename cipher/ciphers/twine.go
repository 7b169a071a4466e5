package ciphers

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

func init() {
	cipher.Register("twine", newTwine)
}

// twine is a generalized Feistel network (GFN) over 16 4-bit nibbles,
// the structural family TWINE belongs to: each round applies the
// S-box to 8 of the 16 nibbles and permutes all 16 before the next
// round. The S-box and nibble shuffle tables are TWINE's published ones,
// but no published TWINE test vector checks this implementation
// (original_source carried no twine.rs); see DESIGN.md.
type twine struct {
	sb            *sbox.Sbox
	nibblePerm    []int
	nibblePermInv []int
}

// twineFNibbles identifies the 8 nibble positions every round's S-box
// layer reads; the remaining 8 are only xored with the F output.
var twineFNibbles = []int{0, 2, 4, 6, 8, 10, 12, 14}

// twineNibblePerm is the GFN shuffle applied to the 16 nibbles between rounds.
var twineNibblePerm = []int{5, 0, 1, 4, 7, 12, 3, 8, 13, 6, 9, 2, 15, 10, 11, 14}

func newTwine() cipher.Cipher {
	table := []uint64{0xc, 0x0, 0xf, 0xa, 0x2, 0xb, 0x9, 0x5, 0x8, 0x3, 0xd, 0x7, 0x1, 0xe, 0x6, 0x4}
	return &twine{
		sb:            sbox.New(4, 4, table),
		nibblePerm:    twineNibblePerm,
		nibblePermInv: invertNibblePermutation(twineNibblePerm),
	}
}

func (c *twine) Name() string               { return "TWINE" }
func (c *twine) Structure() cipher.Structure { return cipher.Feistel }
func (c *twine) BlockBits() uint            { return 64 }
func (c *twine) KeyBits() uint              { return 80 }
func (c *twine) NumSboxes() int             { return 8 }
func (c *twine) Sbox(i int) *sbox.Sbox      { return c.sb }
func (c *twine) Whitening() bool            { return false }

func nibbleGet(state uint64, i int) uint64 {
	return (state >> uint(4*i)) & 0xf
}

func nibbleSet(state uint64, i int, v uint64) uint64 {
	return state | (v << uint(4*i))
}

func (c *twine) shufflePermute(state uint64, perm []int) uint64 {
	var out uint64
	for i := 0; i < 16; i++ {
		out = nibbleSet(out, perm[i], nibbleGet(state, i))
	}
	return out
}

// fLayer xors each F-nibble's S-box output (keyed by a round-key nibble)
// into its Feistel partner, in place, leaving the nibble shuffle for
// LinearLayer to perform.
func (c *twine) fLayer(state uint64, roundKey uint64, sb *sbox.Sbox) uint64 {
	for j, i := range twineFNibbles {
		x := nibbleGet(state, i) ^ ((roundKey >> uint(4*j)) & 0xf)
		y := sb.Apply(x)
		partner := i + 1
		partnerVal := nibbleGet(state, partner) ^ y
		state &^= uint64(0xf) << uint(4*partner)
		state = nibbleSet(state, partner, partnerVal)
	}
	return state
}

func (c *twine) LinearLayer(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.shufflePermute(x.Uint64(), c.nibblePerm))
}

func (c *twine) LinearLayerInv(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.shufflePermute(x.Uint64(), c.nibblePermInv))
}

func (c *twine) ReflectionLayer(x mask128.Mask) mask128.Mask {
	panic(cipher.ErrNotImplemented)
}

func (c *twine) KeySchedule(rounds int, key []byte) ([]mask128.Mask, error) {
	if err := checkKeyLen(key, c.KeyBits()); err != nil {
		return nil, err
	}
	s := loadBE(key)
	keys := make([]mask128.Mask, rounds)

	for r := 0; r < rounds; r++ {
		var rk uint64
		rk |= nibbleGet(s.Hi, 12)
		rk |= nibbleGet(s.Hi, 8) << 4
		rk |= nibbleGet(s.Hi, 4) << 8
		rk |= nibbleGet(s.Hi, 0) << 12
		rk |= nibbleGet(s.Lo, 12) << 16
		rk |= nibbleGet(s.Lo, 8) << 20
		rk |= nibbleGet(s.Lo, 4) << 24
		rk |= nibbleGet(s.Lo, 0) << 28
		keys[r] = mask128.FromUint64(rk)

		s = rotl(s, 13, 80)

		top := nibbleGet(s.Hi, 12)
		s.Hi &^= uint64(0xf) << 48
		s.Hi = nibbleSet(s.Hi, 12, c.sb.Apply(top))

		s.Lo ^= uint64(r&0x1f) << 11
		s = s.MaskTo(80)
	}
	return keys, nil
}

func (c *twine) Encrypt(plaintext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	state := plaintext.Uint64()
	rounds := len(roundKeys)
	for i := 0; i < rounds; i++ {
		state = c.fLayer(state, roundKeys[i].Uint64(), c.sb)
		if i != rounds-1 {
			state = c.shufflePermute(state, c.nibblePerm)
		}
	}
	return mask128.FromUint64(state), nil
}

func (c *twine) Decrypt(ciphertext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	state := ciphertext.Uint64()
	rounds := len(roundKeys)
	for i := rounds - 1; i >= 0; i-- {
		if i != rounds-1 {
			state = c.shufflePermute(state, c.nibblePermInv)
		}
		// The Feistel F-function is its own inverse partner here: it is
		// applied to the untouched half of the state on both passes, so
		// decrypting reuses c.sb (not its inverse) to recompute and
		// re-xor the same F(x) out of the partner nibble.
		state = c.fLayer(state, roundKeys[i].Uint64(), c.sb)
	}
	return mask128.FromUint64(state), nil
}

// SboxMaskTransform assembles the packed per-S-box (input, output) masks
// from the property map back into real 64-bit state positions and applies
// the round's nibble shuffle, returning (round-input mask,
// LinearLayer(round-input mask)); the SPN ciphers instead return
// (input, LinearLayer(output)).
//
// The packed input holds one nibble per active F-function position
// (twineFNibbles); the packed output holds the corresponding S-box output
// nibble. An XOR node z = x ^ y only has nonzero correlation/probability
// when the mask on its two inputs and its output agree, so the partner
// nibble's pre-round mask must equal the S-box output mask feeding it:
// that is what makes the packed output usable as the partner nibble of
// the assembled round-input mask, without needing a separate variable for
// the untouched half.
func (c *twine) SboxMaskTransform(input, output mask128.Mask, _ property.Type) (mask128.Mask, mask128.Mask) {
	in, out := input.Uint64(), output.Uint64()
	var full uint64
	for j, i := range twineFNibbles {
		full = nibbleSet(full, i, nibbleGet(in, j))
		full = nibbleSet(full, i+1, nibbleGet(out, j))
	}
	return mask128.FromUint64(full), mask128.FromUint64(c.shufflePermute(full, c.nibblePerm))
}
