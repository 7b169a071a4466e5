package ciphers

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

// stub registers a cipher name with accurate metadata (block/key size,
// structure) but no encrypt path or key schedule. Spec §6.3 is explicit
// that "not every cipher supplies both encrypt and a full key schedule";
// these are the names this module does not carry a tested table for.
// They still participate in search (the engine only needs LAT/DDT
// shapes and the linear layer) but refuse the dist sub-tool, which
// requires Encrypt/KeySchedule per spec §6.1.
type stub struct {
	name      string
	structure cipher.Structure
	blockBits uint
	keyBits   uint
	numSboxes int
	sb        *sbox.Sbox
}

// identitySbox is a placeholder 4-bit S-box for ciphers this module
// does not carry a real substitution table for. No test hands these
// ciphers to the search engine; a search run on one of them builds its
// property maps from this identity table. Sbox() must return a non-nil
// value to satisfy cipher.Cipher.
var identitySbox = sbox.New(4, 4, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})

var stubDefs = []struct {
	name      string
	structure cipher.Structure
	blockBits uint
	keyBits   uint
	numSboxes int
}{
	{"gift64", cipher.SPN, 64, 128, 16},
	{"gift128", cipher.SPN, 128, 128, 32},
	{"puffin", cipher.SPN, 64, 128, 16},
	{"skinny128", cipher.SPN, 128, 128, 32},
	{"midori", cipher.SPN, 64, 128, 16},
	{"led", cipher.SPN, 64, 64, 16},
	{"rectangle", cipher.SPN, 64, 80, 16},
	{"epcbc48", cipher.SPN, 48, 96, 12},
	{"epcbc96", cipher.SPN, 96, 96, 24},
	{"fly", cipher.SPN, 64, 80, 16},
	{"iceberg", cipher.SPN, 64, 128, 16},
	{"khazad", cipher.SPN, 64, 128, 16},
	{"klein", cipher.SPN, 64, 80, 16},
	{"mantis", cipher.Prince, 64, 128, 16},
	{"mcrypton", cipher.SPN, 64, 128, 16},
	{"mibs", cipher.Feistel, 64, 80, 8},
	{"pride", cipher.SPN, 64, 128, 16},
	{"qarma", cipher.Prince, 64, 128, 16},
	{"aes", cipher.SPN, 128, 128, 16},
}

func init() {
	for _, d := range stubDefs {
		d := d
		cipher.Register(d.name, func() cipher.Cipher {
			return &stub{
				name:      d.name,
				structure: d.structure,
				blockBits: d.blockBits,
				keyBits:   d.keyBits,
				numSboxes: d.numSboxes,
				sb:        identitySbox,
			}
		})
	}
}

func (c *stub) Name() string               { return c.name }
func (c *stub) Structure() cipher.Structure { return c.structure }
func (c *stub) BlockBits() uint             { return c.blockBits }
func (c *stub) KeyBits() uint               { return c.keyBits }
func (c *stub) NumSboxes() int              { return c.numSboxes }
func (c *stub) Sbox(i int) *sbox.Sbox       { return c.sb }
func (c *stub) Whitening() bool             { return false }

func (c *stub) LinearLayer(x mask128.Mask) mask128.Mask    { return x }
func (c *stub) LinearLayerInv(x mask128.Mask) mask128.Mask { return x }

func (c *stub) ReflectionLayer(mask128.Mask) mask128.Mask {
	panic(cipher.ErrNotImplemented)
}

func (c *stub) KeySchedule(int, []byte) ([]mask128.Mask, error) {
	return nil, cipher.ErrNotImplemented
}

func (c *stub) Encrypt(mask128.Mask, []mask128.Mask) (mask128.Mask, error) {
	return mask128.Zero, cipher.ErrNotImplemented
}

func (c *stub) Decrypt(mask128.Mask, []mask128.Mask) (mask128.Mask, error) {
	return mask128.Zero, cipher.ErrNotImplemented
}

func (c *stub) SboxMaskTransform(input, output mask128.Mask, _ property.Type) (mask128.Mask, mask128.Mask) {
	return input, output
}
