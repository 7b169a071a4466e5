package sbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// presentTable is the PRESENT cipher's 4-bit S-box, used here purely as
// a concrete non-trivial bijective table to exercise LAT/DDT invariants.
var presentTable = []uint64{0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2}

func TestLATBalance(t *testing.T) {
	sb := New(4, 4, presentTable)
	require.Equal(t, int64(8), sb.LAT()[0][0])
	require.Equal(t, sb.LinearBalance(), sb.LAT()[0][0])
}

func TestLATRowSum(t *testing.T) {
	sb := New(4, 4, presentTable)
	for alpha, row := range sb.LAT() {
		var sum int64
		for _, v := range row {
			sum += v
		}
		require.Equalf(t, int64(16), sum, "alpha=%d", alpha)
	}
}

func TestDDTRowSum(t *testing.T) {
	sb := New(4, 4, presentTable)
	for deltaIn, row := range sb.DDT() {
		var sum int64
		for _, v := range row {
			sum += v
		}
		require.Equalf(t, int64(16), sum, "deltaIn=%d", deltaIn)

		if deltaIn == 0 {
			require.Equal(t, int64(16), row[0])
			for deltaOut := 1; deltaOut < len(row); deltaOut++ {
				require.Zerof(t, row[deltaOut], "DDT[0][%d] should be 0", deltaOut)
			}
		}
	}
}

func TestApplyMatchesTable(t *testing.T) {
	sb := New(4, 4, presentTable)
	for x, want := range presentTable {
		require.Equal(t, want, sb.Apply(uint64(x)))
	}
}
