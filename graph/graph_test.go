package graph

import (
	"testing"

	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/stretchr/testify/require"
)

func m(x uint64) mask128.Mask { return mask128.FromUint64(x) }

// TestPruneRemovesOrphan builds a 3-stage graph with a deliberately
// orphaned middle vertex (no predecessor) and checks it is the only
// vertex pruned (spec §8 E5).
func TestPruneRemovesOrphan(t *testing.T) {
	g := New(3)
	g.AddVertex(0, m(0))
	g.AddVertex(1, m(1))
	g.AddVertex(1, m(99)) // orphan: never gets an edge from stage 0
	g.AddVertex(2, m(2))
	g.AddEdge(0, m(0), m(1), 0.5)
	g.AddEdge(1, m(1), m(2), 0.5)

	before := g.NumVertices()
	g.Prune(0, 3)
	after := g.NumVertices()

	require.Equal(t, before-1, after)
	_, ok := g.GetVertex(1, m(99))
	require.False(t, ok)
}

func TestPruneFixpointInvariant(t *testing.T) {
	g := New(4)
	g.AddVertex(0, m(0))
	g.AddVertex(1, m(1))
	g.AddVertex(2, m(2))
	g.AddVertex(3, m(3))
	g.AddEdge(0, m(0), m(1), 1.0)
	g.AddEdge(1, m(1), m(2), 1.0)
	// stage 2->3 edge missing: should cascade-prune stages 2 and 1 too.
	g.Prune(0, 4)

	for stage := 0; stage < g.Stages(); stage++ {
		for label, v := range g.GetStage(stage) {
			if stage != 0 {
				require.NotZerof(t, len(v.Predecessors), "stage %d vertex %v missing predecessor after prune", stage, label)
			}
			if stage != g.Stages()-1 {
				require.NotZerof(t, len(v.Successors), "stage %d vertex %v missing successor after prune", stage, label)
			}
		}
	}
	require.Equal(t, 0, g.NumVertices())
}

func TestReversedFlipsEdges(t *testing.T) {
	g := New(3)
	g.AddVertex(0, m(0))
	g.AddVertex(1, m(1))
	g.AddVertex(2, m(2))
	g.AddEdge(0, m(0), m(1), 0.25)
	g.AddEdge(1, m(1), m(2), 0.5)

	r := g.Reversed()
	require.Equal(t, 3, r.Stages())

	v, ok := r.GetVertex(0, m(2))
	require.True(t, ok)
	require.Contains(t, v.Successors, m(1))

	v, ok = r.GetVertex(1, m(1))
	require.True(t, ok)
	require.Contains(t, v.Successors, m(0))
}

func TestSplice(t *testing.T) {
	src := New(2)
	src.AddVertex(0, m(5))
	src.AddVertex(1, m(6))
	src.AddEdge(0, m(5), m(6), 1.0)

	dst := New(4)
	dst.Splice(1, src)

	_, ok := dst.GetVertex(1, m(5))
	require.True(t, ok)
	_, ok = dst.GetVertex(2, m(6))
	require.True(t, ok)
}
