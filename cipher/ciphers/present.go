package ciphers

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

func init() {
	cipher.Register("present", newPresent)
}

type present struct {
	sb, isb *sbox.Sbox
	perm    [64]int
	permInv [64]int
}

func newPresent() cipher.Cipher {
	table := []uint64{0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2}
	itable := make([]uint64, 16)
	for i, v := range table {
		itable[v] = uint64(i)
	}

	p := &present{sb: sbox.New(4, 4, table), isb: sbox.New(4, 4, itable)}
	for i := 0; i < 63; i++ {
		p.perm[i] = (16 * i) % 63
	}
	p.perm[63] = 63
	for i, dst := range p.perm {
		p.permInv[dst] = i
	}
	return p
}

func (c *present) Name() string               { return "PRESENT" }
func (c *present) Structure() cipher.Structure { return cipher.SPN }
func (c *present) BlockBits() uint            { return 64 }
func (c *present) KeyBits() uint              { return 80 }
func (c *present) NumSboxes() int             { return 16 }
func (c *present) Sbox(i int) *sbox.Sbox      { return c.sb }
func (c *present) Whitening() bool            { return true }

func (c *present) pLayer(x uint64, perm [64]int) uint64 {
	var out uint64
	for i := 0; i < 64; i++ {
		if x&(1<<uint(i)) != 0 {
			out |= 1 << uint(perm[i])
		}
	}
	return out
}

func (c *present) LinearLayer(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.pLayer(x.Uint64(), c.perm))
}

func (c *present) LinearLayerInv(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.pLayer(x.Uint64(), c.permInv))
}

func (c *present) ReflectionLayer(x mask128.Mask) mask128.Mask {
	panic(cipher.ErrNotImplemented)
}

func (c *present) KeySchedule(rounds int, key []byte) ([]mask128.Mask, error) {
	if err := checkKeyLen(key, c.KeyBits()); err != nil {
		return nil, err
	}
	k := loadBE(key)
	keys := make([]mask128.Mask, 0, rounds+1)

	for r := 1; r <= rounds+1; r++ {
		roundKey := (k.Hi << 48) | (k.Lo >> 16)
		keys = append(keys, mask128.FromUint64(roundKey))

		k = rotl(k, 61, 80)

		nibble := (k.Hi >> 12) & 0xf
		k.Hi = (k.Hi &^ (0xf << 12)) | (c.sb.Apply(nibble) << 12)

		k.Lo ^= uint64(r&0x1f) << 15
	}
	return keys, nil
}

func (c *present) Encrypt(plaintext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	rounds := len(roundKeys) - 1
	output := plaintext.Uint64()
	for i := 0; i < rounds; i++ {
		output ^= roundKeys[i].Uint64()
		output = applyNibbleSbox(output, c.sb, 16)
		output = c.pLayer(output, c.perm)
	}
	output ^= roundKeys[rounds].Uint64()
	return mask128.FromUint64(output), nil
}

func (c *present) Decrypt(ciphertext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	rounds := len(roundKeys) - 1
	output := ciphertext.Uint64()
	output ^= roundKeys[rounds].Uint64()
	for i := rounds - 1; i >= 0; i-- {
		output = c.pLayer(output, c.permInv)
		output = applyNibbleSbox(output, c.isb, 16)
		output ^= roundKeys[i].Uint64()
	}
	return mask128.FromUint64(output), nil
}

func (c *present) SboxMaskTransform(input, output mask128.Mask, _ property.Type) (mask128.Mask, mask128.Mask) {
	return input, c.LinearLayer(output)
}
