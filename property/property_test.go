package property

import (
	"testing"

	"github.com/psve/cryptagraph-sub001/sbox"
	"github.com/stretchr/testify/require"
)

var presentTable = []uint64{0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2}

func TestMapBucketsDescendingByValue(t *testing.T) {
	sb := sbox.New(4, 4, presentTable)
	m := NewMap(sb, Linear)

	require.True(t, m.NumBuckets() > 0)
	var prev float64 = 1.1
	for i := 0; i < m.NumBuckets(); i++ {
		b := m.Bucket(i)
		require.LessOrEqual(t, b.Value, prev)
		prev = b.Value
	}
}

func TestMapExcludesBaseline(t *testing.T) {
	sb := sbox.New(4, 4, presentTable)
	m := NewMap(sb, Linear)
	for i := 0; i < m.NumBuckets(); i++ {
		for _, p := range m.Bucket(i).Pairs {
			require.False(t, p.Input.IsZero() && p.Output.IsZero(), "baseline (0,0) should never appear in a bucket")
		}
	}
}

func TestMapDifferentialExcludesImpossible(t *testing.T) {
	sb := sbox.New(4, 4, presentTable)
	m := NewMap(sb, Differential)
	for i := 0; i < m.NumBuckets(); i++ {
		for _, p := range m.Bucket(i).Pairs {
			require.False(t, p.Input.IsZero(), "zero input difference should never appear in a bucket")
		}
	}
}

func TestProjectionsDeduped(t *testing.T) {
	sb := sbox.New(4, 4, presentTable)
	m := NewMap(sb, Linear)
	for i := 0; i < m.NumBuckets(); i++ {
		b := m.Bucket(i)
		seen := make(map[Key]struct{})
		for _, p := range b.InputOnly {
			_, dup := seen[p.Key()]
			require.False(t, dup)
			seen[p.Key()] = struct{}{}
		}
	}
}

// TestPresentTopLinearBucketMatchesReference is spec §8 E3: PRESENT's
// 4-bit S-box has a maximum |bias| of 4 at input mask 1, giving squared
// correlation (4/8)^2 = 1/4.
func TestPresentTopLinearBucketMatchesReference(t *testing.T) {
	sb := sbox.New(4, 4, presentTable)
	m := NewMap(sb, Linear)

	top := m.Bucket(0)
	require.InDelta(t, 0.25, top.Value, 1e-12)

	found := false
	for _, p := range top.Pairs {
		if p.Input.Uint64() == 1 {
			found = true
		}
	}
	require.True(t, found, "input mask 1 should appear in the top linear bucket")
}

func TestParseType(t *testing.T) {
	tp, err := ParseType("linear")
	require.NoError(t, err)
	require.Equal(t, Linear, tp)

	tp, err = ParseType("differential")
	require.NoError(t, err)
	require.Equal(t, Differential, tp)

	_, err = ParseType("bogus")
	require.Error(t, err)
}
