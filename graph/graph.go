// Package graph implements the multistage mask graph that the builder
// in package search assembles from single-round S-box patterns: one
// stage per round, one vertex per mask value reachable at that round,
// one edge per observed (input, output) transition with its
// correlation/probability as edge length.
package graph

import "github.com/psve/cryptagraph-sub001/mask128"

// Vertex tracks, for one mask value at one stage, the edge lengths to
// and from its neighbors in the adjacent stages.
type Vertex struct {
	Predecessors map[mask128.Mask]float64
	Successors   map[mask128.Mask]float64
}

func newVertex() *Vertex {
	return &Vertex{
		Predecessors: make(map[mask128.Mask]float64),
		Successors:   make(map[mask128.Mask]float64),
	}
}

// MultistageGraph is a DAG laid out in stages, edges only ever running
// from stage i to stage i+1.
type MultistageGraph struct {
	stages []map[mask128.Mask]*Vertex
}

// New allocates an empty graph with the given number of stages.
func New(stages int) *MultistageGraph {
	g := &MultistageGraph{stages: make([]map[mask128.Mask]*Vertex, stages)}
	for i := range g.stages {
		g.stages[i] = make(map[mask128.Mask]*Vertex)
	}
	return g
}

// Stages returns the number of stages in the graph.
func (g *MultistageGraph) Stages() int { return len(g.stages) }

// AddVertex inserts label at stage if not already present.
func (g *MultistageGraph) AddVertex(stage int, label mask128.Mask) {
	if _, ok := g.stages[stage][label]; !ok {
		g.stages[stage][label] = newVertex()
	}
}

// AddEdge records an edge from `from` at stage to `to` at stage+1,
// provided both endpoints already exist. length accumulates if an
// edge already exists between the same pair of vertices (it does not
// overwrite, matching the "or_insert + accumulate" shape used
// throughout this engine).
func (g *MultistageGraph) AddEdge(stage int, from, to mask128.Mask, length float64) {
	fromVertex, ok := g.stages[stage][from]
	if !ok {
		return
	}
	toVertex, ok := g.stages[stage+1][to]
	if !ok {
		return
	}
	fromVertex.Successors[to] += length
	toVertex.Predecessors[from] += length
}

// RemoveVertex deletes label from stage and severs every edge that
// touched it in the adjacent stages.
func (g *MultistageGraph) RemoveVertex(stage int, label mask128.Mask) {
	vertex, ok := g.stages[stage][label]
	if !ok {
		return
	}
	if stage > 0 {
		prevStage := g.stages[stage-1]
		for pred := range vertex.Predecessors {
			if other, ok := prevStage[pred]; ok {
				delete(other.Successors, label)
			}
		}
	}
	if stage < len(g.stages)-1 {
		nextStage := g.stages[stage+1]
		for succ := range vertex.Successors {
			if other, ok := nextStage[succ]; ok {
				delete(other.Predecessors, label)
			}
		}
	}
	delete(g.stages[stage], label)
}

// Prune iteratively removes every vertex in [start, stop) that cannot
// lie on any source-to-sink path: boundary stages lose vertices
// missing the relevant side, interior stages lose vertices missing
// either side. Repeats to a fixpoint.
func (g *MultistageGraph) Prune(start, stop int) {
	for {
		pruned := false
		for stage := start; stage < stop; stage++ {
			var remove []mask128.Mask
			for label, vertex := range g.stages[stage] {
				switch {
				case stage == start && len(vertex.Successors) == 0:
					remove = append(remove, label)
				case stage == stop-1 && len(vertex.Predecessors) == 0:
					remove = append(remove, label)
				case stage != start && stage != stop-1 &&
					(len(vertex.Successors) == 0 || len(vertex.Predecessors) == 0):
					remove = append(remove, label)
				}
			}
			for _, label := range remove {
				g.RemoveVertex(stage, label)
				pruned = true
			}
		}
		if !pruned {
			return
		}
	}
}

// GetVertex returns the vertex at (stage, label), if present.
func (g *MultistageGraph) GetVertex(stage int, label mask128.Mask) (*Vertex, bool) {
	v, ok := g.stages[stage][label]
	return v, ok
}

// GetStage returns the vertex map for a stage.
func (g *MultistageGraph) GetStage(stage int) map[mask128.Mask]*Vertex {
	return g.stages[stage]
}

// NumVertices returns the total vertex count across all stages.
func (g *MultistageGraph) NumVertices() int {
	n := 0
	for _, stage := range g.stages {
		n += len(stage)
	}
	return n
}

// NumEdges returns the total edge count across all stages.
func (g *MultistageGraph) NumEdges() int {
	n := 0
	for _, stage := range g.stages {
		for _, vertex := range stage {
			n += len(vertex.Successors)
		}
	}
	return n
}

// Reversed returns a copy of g with stage order reversed and every
// edge flipped (successors become predecessors and vice versa). Used
// to build the mirror half of a Prince-reflection graph.
func (g *MultistageGraph) Reversed() *MultistageGraph {
	n := len(g.stages)
	out := New(n)
	for i, stage := range g.stages {
		dst := n - 1 - i
		for label, vertex := range stage {
			out.AddVertex(dst, label)
			_ = vertex
		}
	}
	for i, stage := range g.stages {
		dst := n - 1 - i
		for from, vertex := range stage {
			for to, length := range vertex.Successors {
				// original edge stage i -> i+1, from -> to
				// reversed: stage (n-1-(i+1)) -> (n-1-i), to -> from
				out.AddEdge(dst-1, to, from, length)
			}
		}
	}
	return out
}

// Splice overwrites the vertex maps for stages [offset, offset+len(src.stages))
// with src's stages, used to assemble a larger graph out of pre-built halves.
func (g *MultistageGraph) Splice(offset int, src *MultistageGraph) {
	for i, stage := range src.stages {
		g.stages[offset+i] = stage
	}
}
