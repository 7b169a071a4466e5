package ciphers

import (
	"testing"

	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/stretchr/testify/require"
)

func TestSkinny64EncryptVector(t *testing.T) {
	c := newSkinny64()
	key := []byte{0x45, 0x84, 0xf9, 0xd7, 0x08, 0x97, 0x76, 0x4d}
	rk, err := c.KeySchedule(32, key)
	require.NoError(t, err)

	pt := mask128.FromUint64(0x74aba08aa527f88a)
	ct, err := c.Encrypt(pt, rk)
	require.NoError(t, err)
	require.Equal(t, uint64(0xfa2848282ab1f696), ct.Uint64())

	back, err := c.Decrypt(ct, rk)
	require.NoError(t, err)
	require.Equal(t, pt.Uint64(), back.Uint64())
}

func TestBoronEncryptVectors(t *testing.T) {
	c := newBoron()
	key := make([]byte, 10)
	rk, err := c.KeySchedule(25, key)
	require.NoError(t, err)

	cases := []struct{ pt, ct uint64 }{
		{0x0000000000000000, 0x3cf72a8b7518e6f7},
		{0x0123456789abcdef, 0x5a664928b961c619},
	}
	for _, tc := range cases {
		ct, err := c.Encrypt(mask128.FromUint64(tc.pt), rk)
		require.NoError(t, err)
		require.Equal(t, tc.ct, ct.Uint64())

		back, err := c.Decrypt(ct, rk)
		require.NoError(t, err)
		require.Equal(t, tc.pt, back.Uint64())
	}
}

// roundTripCiphers is every fully implemented cipher, used for the
// shared encrypt/decrypt and linear-layer-bijection invariant checks
// (spec §8 invariants 4 and 6).
var roundTripCiphers = []string{"present", "skinny64", "boron", "twine", "prince"}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, name := range roundTripCiphers {
		t.Run(name, func(t *testing.T) {
			c, err := cipher.New(name)
			require.NoError(t, err)

			key := make([]byte, c.KeyBits()/8)
			for i := range key {
				key[i] = byte(i*7 + 1)
			}
			rounds := 8
			if c.Structure() == cipher.Prince {
				rounds = 12
			}
			rk, err := c.KeySchedule(rounds, key)
			require.NoError(t, err)

			pt := mask128.FromUint64(0x0123456789abcdef).MaskTo(c.BlockBits())
			ct, err := c.Encrypt(pt, rk)
			require.NoError(t, err)
			back, err := c.Decrypt(ct, rk)
			require.NoError(t, err)
			require.True(t, pt.Equal(back), "decrypt(encrypt(p)) != p for %s", name)
		})
	}
}

func TestLinearLayerBijection(t *testing.T) {
	for _, name := range roundTripCiphers {
		t.Run(name, func(t *testing.T) {
			c, err := cipher.New(name)
			require.NoError(t, err)

			for _, x := range []uint64{0, 1, 0xdeadbeef, 0xffffffffffffffff} {
				m := mask128.FromUint64(x).MaskTo(c.BlockBits())
				require.True(t, m.Equal(c.LinearLayerInv(c.LinearLayer(m))))
				require.True(t, m.Equal(c.LinearLayer(c.LinearLayerInv(m))))
			}
		})
	}
}

func TestPrinceReflectionInvolution(t *testing.T) {
	c, err := cipher.New("prince")
	require.NoError(t, err)

	for _, x := range []uint64{0, 1, 0xabcdef0123456789, 0xffffffffffffffff} {
		m := mask128.FromUint64(x)
		require.True(t, m.Equal(c.ReflectionLayer(c.ReflectionLayer(m))))
	}
}

// TestTwineSboxMaskTransform checks that the packed per-S-box masks land
// at the real F-input/partner nibble positions and that the shuffle is
// applied to produce the round-output mask.
func TestTwineSboxMaskTransform(t *testing.T) {
	c := newTwine().(*twine)

	var packedIn, packedOut uint64
	packedIn = nibbleSet(packedIn, 0, 0x3)   // S-box 0 input mask
	packedOut = nibbleSet(packedOut, 0, 0x5) // S-box 0 output mask
	packedIn = nibbleSet(packedIn, 3, 0x7)   // S-box 3 input mask
	packedOut = nibbleSet(packedOut, 3, 0x2) // S-box 3 output mask

	in, out := c.SboxMaskTransform(mask128.FromUint64(packedIn), mask128.FromUint64(packedOut), 0)

	wantFull := nibbleSet(nibbleSet(uint64(0), 0, 0x3), 1, 0x5)
	wantFull = nibbleSet(nibbleSet(wantFull, 6, 0x7), 7, 0x2)
	require.Equal(t, wantFull, in.Uint64(), "round-input mask must place packed nibbles at real F-input/partner positions")

	require.Equal(t, c.shufflePermute(wantFull, c.nibblePerm), out.Uint64(), "round-output mask must be the shuffled round-input mask")
}

func TestStubCiphersReturnNotImplemented(t *testing.T) {
	c, err := cipher.New("gift64")
	require.NoError(t, err)
	_, err = c.KeySchedule(10, make([]byte, int(c.KeyBits())/8))
	require.ErrorIs(t, err, cipher.ErrNotImplemented)
}
