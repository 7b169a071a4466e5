package search

import (
	"runtime"
	"sort"
	"sync"

	"github.com/psve/cryptagraph-sub001/graph"
	"github.com/psve/cryptagraph-sub001/mask128"
)

// HullResult is one (input, output) property accumulated across every
// round of the graph (spec §4.6).
type HullResult struct {
	Input, Output mask128.Mask
	Value         float64
	Trails        uint64
}

// findProperties runs the single-input edge-map propagation of spec
// §4.6 across every stage of g, returning the final edge map keyed by
// output value.
func findProperties(g *graph.MultistageGraph, input mask128.Mask) map[mask128.Mask]HullResult {
	rounds := g.Stages() - 1
	edgeMap := map[mask128.Mask]HullResult{
		input: {Input: input, Output: input, Value: 1.0, Trails: 1},
	}

	for r := 0; r < rounds; r++ {
		next := make(map[mask128.Mask]HullResult)
		for output, prop := range edgeMap {
			vertex, ok := g.GetVertex(r, output)
			if !ok {
				continue
			}
			for succ, length := range vertex.Successors {
				acc := next[succ]
				acc.Input = prop.Input
				acc.Output = succ
				acc.Trails += prop.Trails
				acc.Value += prop.Value * length
				next[succ] = acc
			}
		}
		edgeMap = next
	}
	return edgeMap
}

// lessResult orders results by the spec §4.6 tie-break: value
// descending, then trails descending, then (input, output) ascending.
func lessResult(a, b HullResult) bool {
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	if a.Trails != b.Trails {
		return a.Trails > b.Trails
	}
	if !a.Input.Equal(b.Input) {
		return a.Input.Less(b.Input)
	}
	return a.Output.Less(b.Output)
}

func insertTopK(list []HullResult, r HullResult, k int) []HullResult {
	list = append(list, r)
	sort.Slice(list, func(i, j int) bool { return lessResult(list[i], list[j]) })
	if k > 0 && len(list) > k {
		list = list[:k]
	}
	return list
}

// AggregateHulls runs the hull aggregator over every input mask at
// g's first stage, in parallel across workers goroutines (0 means
// runtime.NumCPU()), keeping the global top-K by value (spec §4.6,
// §5's "partition by round-robin index, local top-K, merge").
func AggregateHulls(g *graph.MultistageGraph, allowed map[AllowedPair]struct{}, topK, workers int) []HullResult {
	stage0 := g.GetStage(0)
	inputs := make([]mask128.Mask, 0, len(stage0))
	for label := range stage0 {
		inputs = append(inputs, label)
	}
	if len(inputs) == 0 {
		return nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	restrict := len(allowed) > 0
	resultsCh := make(chan []HullResult, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			var local []HullResult
			for i := start; i < len(inputs); i += workers {
				for _, prop := range findProperties(g, inputs[i]) {
					if restrict {
						if _, ok := allowed[AllowedPair{Input: prop.Input, Output: prop.Output}]; !ok {
							continue
						}
					}
					local = insertTopK(local, prop, topK)
				}
			}
			resultsCh <- local
		}(w)
	}

	wg.Wait()
	close(resultsCh)

	var merged []HullResult
	for local := range resultsCh {
		for _, r := range local {
			merged = insertTopK(merged, r, topK)
		}
	}
	return merged
}
