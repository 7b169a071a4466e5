package dist

import (
	"testing"

	_ "github.com/psve/cryptagraph-sub001/cipher/ciphers"

	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/stretchr/testify/require"
)

// TestDistSanitySingleKeySingleRound is spec §8 E6: with an all-zero
// key (so every round-key parity is 0, forcing a positive sign) and a
// single round, the distribution tool's empirical correlation for a
// hull reachable in one step must equal the independently computed
// bricklayer correlation for that (alpha, beta) pair.
func TestDistSanitySingleKeySingleRound(t *testing.T) {
	c, err := cipher.New("present")
	require.NoError(t, err)

	alpha := mask128.FromUint64(1)
	lat := NewMaskLAT(c, []mask128.Mask{alpha})
	approxList := lat.Lookup(alpha)
	require.NotEmpty(t, approxList, "alpha=1 should have at least one non-negligible bricklayer approximation")
	beta := approxList[0].Beta
	wantCorr := approxList[0].Corr

	sb := c.Sbox(0)
	corrTable, balancedTable := sboxCorrelations(sb)
	betaBeforeL := c.LinearLayerInv(beta)
	independentCorr, ok := bricklayerCorrelation(corrTable, balancedTable, sb.Size(), c.NumSboxes(), alpha, betaBeforeL)
	require.True(t, ok)
	require.InDelta(t, wantCorr, independentCorr, 1e-12)

	samples, err := Correlations(c, lat, []mask128.Mask{alpha}, []mask128.Mask{beta}, 1, 1)
	require.NoError(t, err)

	got := samples[PairKey{Alpha: alpha, Beta: beta}]
	require.Len(t, got, 1)
	require.InDelta(t, wantCorr, got[0], 1e-12)
	require.Greater(t, got[0], 0.0, "zero round key should force a positive sign")
}

func TestMaskPoolStepAccumulates(t *testing.T) {
	c, err := cipher.New("present")
	require.NoError(t, err)

	alpha := mask128.FromUint64(1)
	lat := NewMaskLAT(c, []mask128.Mask{alpha})

	a, b := NewMaskPool(), NewMaskPool()
	a.Add(alpha)
	require.Equal(t, 1.0, a.Get(alpha))

	Step(lat, b, a, mask128.Zero)
	require.Equal(t, 1, a.Size()) // Step must not mutate poolOld
	require.Greater(t, b.Size(), 0)
}

func TestSummarizeBasicStats(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, 5, s.N)
	require.InDelta(t, 3.0, s.Mean, 1e-9)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 5.0, s.Max)
}
