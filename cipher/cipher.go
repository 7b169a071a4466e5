// Package cipher defines the uniform interface every block cipher
// implements so the search engine can treat SPN, Feistel and
// reflection-structured ciphers identically (spec §4.1).
package cipher

import (
	"errors"
	"fmt"

	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

// Structure tags the structural family of a cipher, dispatched in one
// place (the graph builder) rather than via virtual methods scattered
// across cipher implementations (spec §9 "Tagged variants").
type Structure int

const (
	SPN Structure = iota
	Feistel
	Prince
)

func (s Structure) String() string {
	switch s {
	case SPN:
		return "SPN"
	case Feistel:
		return "Feistel"
	case Prince:
		return "Prince"
	default:
		return "Invalid"
	}
}

// ErrNotImplemented is returned by ciphers registered only as metadata
// (name, block size, key size, structure) without a working encrypt path
// or key schedule -- spec §6.3's "not every cipher supplies both".
var ErrNotImplemented = errors.New("cipher: not implemented for this cipher")

// Cipher is the interface the search engine consumes (spec §4.1). Every
// mask/difference argument and return value is assumed already masked to
// BlockBits.
type Cipher interface {
	Name() string
	Structure() Structure
	BlockBits() uint
	KeyBits() uint
	NumSboxes() int

	// Sbox returns the i'th S-box of the non-linear layer. Implementations
	// with a single S-box ignore i.
	Sbox(i int) *sbox.Sbox

	LinearLayer(x mask128.Mask) mask128.Mask
	LinearLayerInv(x mask128.Mask) mask128.Mask

	// ReflectionLayer is only meaningful for Structure() == Prince; other
	// ciphers may panic if called.
	ReflectionLayer(x mask128.Mask) mask128.Mask

	// KeySchedule returns round keys for the given key material. The
	// length of the result is rounds, or rounds+1 if Whitening() is true.
	KeySchedule(rounds int, key []byte) ([]mask128.Mask, error)

	Encrypt(plaintext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error)
	Decrypt(ciphertext mask128.Mask, roundKeys []mask128.Mask) (mask128.Mask, error)

	// SboxMaskTransform maps an S-box-layer (input,output) mask pair to
	// the pair observed across a full round, which may depend on
	// propType for Feistel ciphers (spec §9).
	SboxMaskTransform(input, output mask128.Mask, propType property.Type) (mask128.Mask, mask128.Mask)

	Whitening() bool
}

// Factory constructs a fresh Cipher instance.
type Factory func() Cipher

var registry = map[string]Factory{}

// Register adds a cipher factory under name. Called from each cipher
// implementation's package init.
func Register(name string, f Factory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("cipher: duplicate registration for %q", name))
	}
	registry[name] = f
}

// New looks up a cipher by name (spec §6.3).
func New(name string) (Cipher, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("cipher: unknown cipher %q", name)
	}
	return f(), nil
}

// Names returns every registered cipher name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
