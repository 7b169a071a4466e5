package mask128

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShlShr(t *testing.T) {
	m := Mask{Hi: 0, Lo: 1}
	require.Equal(t, Mask{Hi: 1, Lo: 0}, m.Shl(64))
	require.Equal(t, Mask{Hi: 0, Lo: 1 << 63}, m.Shl(63))
	require.Equal(t, m, m.Shl(64).Shr(64))
}

func TestMaskTo(t *testing.T) {
	m := Mask{Hi: 0xffffffffffffffff, Lo: 0xffffffffffffffff}
	require.Equal(t, Mask{Lo: 0xffff}, m.MaskTo(16))
	require.Equal(t, Mask{Hi: 1, Lo: 0xffffffffffffffff}, m.MaskTo(65))
	require.Equal(t, m, m.MaskTo(128))
}

func TestParity(t *testing.T) {
	require.Equal(t, uint64(0), FromUint64(0).Parity())
	require.Equal(t, uint64(1), FromUint64(1).Parity())
	require.Equal(t, uint64(0), FromUint64(0b11).Parity())
	require.Equal(t, uint64(1), FromUint64(0b111).Parity())
}

func TestHexRoundTrip(t *testing.T) {
	m := Mask{Hi: 0x0123456789abcdef, Lo: 0xfedcba9876543210}
	s := m.Hex(32)
	parsed, err := Parse(s)
	require.NoError(t, err)
	require.True(t, m.Equal(parsed))
}

func TestParseShort(t *testing.T) {
	m, err := Parse("ff")
	require.NoError(t, err)
	require.Equal(t, Mask{Lo: 0xff}, m)
}

func TestLess(t *testing.T) {
	require.True(t, FromUint64(1).Less(FromUint64(2)))
	require.False(t, FromUint64(2).Less(FromUint64(1)))
	require.True(t, Mask{Hi: 0, Lo: 1}.Less(Mask{Hi: 1, Lo: 0}))
}
