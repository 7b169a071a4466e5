package pattern

import (
	"testing"

	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
	"github.com/stretchr/testify/require"
)

var presentTable = []uint64{0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2}

func presentMaps(numSboxes int) []*property.Map {
	sb := sbox.New(4, 4, presentTable)
	m := property.NewMap(sb, property.Linear)
	maps := make([]*property.Map, numSboxes)
	for i := range maps {
		maps[i] = m
	}
	return maps
}

func TestEnumeratorNonIncreasingOrder(t *testing.T) {
	maps := presentMaps(16)
	e := NewEnumerator(maps, DefaultAnchorBits)
	results := Take(e, 10)
	require.Len(t, results, 10)

	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i].Value, results[i-1].Value)
	}
}

func TestEnumeratorRespectsAnchorCap(t *testing.T) {
	maps := presentMaps(16)
	const anchorBits = 4
	e := NewEnumerator(maps, anchorBits)
	Take(e, 200)
	require.LessOrEqual(t, e.AnchorsUsed(), uint64(1)<<anchorBits)
}

func TestEnumeratorRootIsAllInactive(t *testing.T) {
	maps := presentMaps(4)
	e := NewEnumerator(maps, DefaultAnchorBits)
	r, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, 1.0, r.Value)
	for _, idx := range r.Pattern.Indices {
		require.Equal(t, -1, idx)
	}
}
