package ciphers

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

func init() {
	cipher.Register("boron", newBoron)
}

type boron struct {
	sb, isb *sbox.Sbox
}

func newBoron() cipher.Cipher {
	table := []uint64{0xe, 0x4, 0xb, 0x1, 0x7, 0x9, 0xc, 0xa, 0xd, 0x2, 0x0, 0xf, 0x8, 0x5, 0x3, 0x6}
	itable := []uint64{0xa, 0x3, 0x9, 0xe, 0x1, 0xd, 0xf, 0x4, 0xc, 0x5, 0x7, 0x2, 0x6, 0x8, 0x0, 0xb}
	return &boron{sb: sbox.New(4, 4, table), isb: sbox.New(4, 4, itable)}
}

func (c *boron) Name() string               { return "BORON" }
func (c *boron) Structure() cipher.Structure { return cipher.SPN }
func (c *boron) BlockBits() uint            { return 64 }
func (c *boron) KeyBits() uint              { return 80 }
func (c *boron) NumSboxes() int             { return 16 }
func (c *boron) Sbox(i int) *sbox.Sbox      { return c.sb }
func (c *boron) Whitening() bool            { return true }

func (c *boron) linearLayer64(input uint64) uint64 {
	var output uint64
	output ^= (input & 0xff00ff00ff00ff00) >> 8
	output ^= (input & 0x00ff00ff00ff00ff) << 8

	tmp := output
	output = 0
	output ^= ((tmp << 1) & 0xfffe) ^ ((tmp >> 15) & 0x0001)
	output ^= ((tmp << 4) & 0xfff00000) ^ ((tmp >> 12) & 0x000f0000)
	output ^= ((tmp << 7) & 0xff8000000000) ^ ((tmp >> 9) & 0x007f00000000)
	output ^= ((tmp << 9) & 0xfe00000000000000) ^ ((tmp >> 7) & 0x01ff000000000000)

	output ^= (output & 0xffff) << 32
	output ^= (output & 0xffff000000000000) >> 32
	output ^= (output & 0xffff0000) >> 16
	output ^= (output & 0xffff00000000) << 16

	return output
}

func (c *boron) linearLayerInv64(input uint64) uint64 {
	output := input

	output ^= (output & 0xffff00000000) << 16
	output ^= (output & 0xffff0000) >> 16
	output ^= (output & 0xffff000000000000) >> 32
	output ^= (output & 0xffff) << 32

	tmp := output
	output = 0
	output ^= ((tmp & 0x0001) << 15) ^ ((tmp & 0xfffe) >> 1)
	output ^= ((tmp & 0x000f0000) << 12) ^ ((tmp & 0xfff00000) >> 4)
	output ^= ((tmp & 0x007f00000000) << 9) ^ ((tmp & 0xff8000000000) >> 7)
	output ^= ((tmp & 0x01ff000000000000) << 7) ^ ((tmp & 0xfe00000000000000) >> 9)

	tmp = output
	output = 0
	output ^= (tmp & 0xff00ff00ff00ff00) >> 8
	output ^= (tmp & 0x00ff00ff00ff00ff) << 8

	return output
}

func (c *boron) LinearLayer(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.linearLayer64(x.Uint64()))
}

func (c *boron) LinearLayerInv(x mask128.Mask) mask128.Mask {
	return mask128.FromUint64(c.linearLayerInv64(x.Uint64()))
}

func (c *boron) ReflectionLayer(x mask128.Mask) mask128.Mask {
	panic(cipher.ErrNotImplemented)
}

func (c *boron) KeySchedule(rounds int, key []byte) ([]mask128.Mask, error) {
	if err := checkKeyLen(key, c.KeyBits()); err != nil {
		return nil, err
	}
	s := loadBE(key)
	keys := make([]mask128.Mask, 0, rounds+1)

	for r := 0; r <= rounds; r++ {
		keys = append(keys, mask128.FromUint64(s.Lo))

		s = rotl(s, 13, 80)

		tmp := s.Lo & 0xf
		s.Lo &^= 0xf
		s = s.Xor(mask128.FromUint64(c.sb.Apply(tmp)))

		rnd := uint64(r & 0b11111)
		s = s.Xor(mask128.FromUint64(rnd << 59)).MaskTo(80)
	}
	return keys, nil
}

func (c *boron) Encrypt(plaintext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	output := plaintext.Uint64() ^ roundKeys[0].Uint64()
	for i := 1; i < len(roundKeys); i++ {
		tmp := applyNibbleSbox(output, c.sb, 16)
		output = c.linearLayer64(tmp)
		output ^= roundKeys[i].Uint64()
	}
	return mask128.FromUint64(output), nil
}

func (c *boron) Decrypt(ciphertext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error) {
	last := len(roundKeys) - 1
	output := ciphertext.Uint64() ^ roundKeys[last].Uint64()
	for i := 1; i <= last; i++ {
		output = c.linearLayerInv64(output)
		tmp := applyNibbleSbox(output, c.isb, 16)
		output = tmp ^ roundKeys[last-i].Uint64()
	}
	return mask128.FromUint64(output), nil
}

func (c *boron) SboxMaskTransform(input, output mask128.Mask, _ property.Type) (mask128.Mask, mask128.Mask) {
	return input, c.LinearLayer(output)
}
