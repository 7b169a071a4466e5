package ioformat

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/psve/cryptagraph-sub001/dist"
	g "github.com/psve/cryptagraph-sub001/graph"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/search"
	"github.com/stretchr/testify/require"
)

func TestMaskRoundTrip(t *testing.T) {
	masks := []mask128.Mask{mask128.FromUint64(0), mask128.FromUint64(0xdeadbeef), {Hi: 1, Lo: 2}}

	var buf bytes.Buffer
	require.NoError(t, WriteMasks(&buf, masks, 32))

	got, err := ReadMasks(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(masks))
	for i, m := range masks {
		require.True(t, m.Equal(got[i]))
	}
}

func TestAllowedPairsRoundTrip(t *testing.T) {
	pairs := map[search.AllowedPair]struct{}{
		{Input: mask128.FromUint64(1), Output: mask128.FromUint64(2)}: {},
		{Input: mask128.FromUint64(3), Output: mask128.FromUint64(4)}: {},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAllowedPairs(&buf, pairs, 16))

	got, err := ReadAllowedPairs(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(pairs, got); diff != "" {
		t.Errorf("allowed pairs round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAllowedPairsMalformedLine(t *testing.T) {
	_, err := ReadAllowedPairs(bytes.NewBufferString("not,a,valid,line\n"))
	require.Error(t, err)
}

func TestResultsRoundTrip(t *testing.T) {
	results := []search.HullResult{
		{Input: mask128.FromUint64(1), Output: mask128.FromUint64(2), Value: 0.25, Trails: 3},
		{Input: mask128.FromUint64(5), Output: mask128.FromUint64(6), Value: 0.0625, Trails: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, results, 16))

	got, err := ReadResults(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(results))
	for i, r := range results {
		require.True(t, r.Input.Equal(got[i].Input))
		require.True(t, r.Output.Equal(got[i].Output))
		require.Equal(t, r.Trails, got[i].Trails)
		require.InDelta(t, r.Value, got[i].Value, 1e-9)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	graph := g.New(3)
	graph.AddVertex(0, mask128.FromUint64(1))
	graph.AddVertex(1, mask128.FromUint64(2))
	graph.AddVertex(2, mask128.FromUint64(3))
	graph.AddEdge(0, mask128.FromUint64(1), mask128.FromUint64(2), 0.5)
	graph.AddEdge(1, mask128.FromUint64(2), mask128.FromUint64(3), 0.5)

	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, graph))

	got, err := ReadGraph(&buf, 3)
	require.NoError(t, err)
	require.Equal(t, graph.NumVertices(), got.NumVertices())
	require.Equal(t, graph.NumEdges(), got.NumEdges())
}

func TestWriteCorrelations(t *testing.T) {
	pairs := []dist.PairKey{
		{Alpha: mask128.FromUint64(1), Beta: mask128.FromUint64(2)},
	}
	samples := map[dist.PairKey][]float64{
		pairs[0]: {0.1, 0.2, 0.3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCorrelations(&buf, pairs, samples))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4) // header + 3 rows
}
