// Package search builds a MultistageGraph from a cipher's best S-box
// activity patterns and runs the parallel hull aggregator over it
// (spec §4.4-§4.6).
package search

import (
	"fmt"

	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/graph"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/pattern"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
)

// AllowedPair is one entry of a `--mask_in` allowed-pair file (spec §6.2).
type AllowedPair struct {
	Input, Output mask128.Mask
}

// buildPropertyMaps returns one PropertyMap per S-box position, sharing
// a single Map instance across positions whose Sbox pointer is
// identical (the common case of a single repeated S-box table).
func buildPropertyMaps(c cipher.Cipher, t property.Type) []*property.Map {
	n := c.NumSboxes()
	maps := make([]*property.Map, n)
	cache := make(map[*sbox.Sbox]*property.Map, n)
	for i := 0; i < n; i++ {
		sb := c.Sbox(i)
		m, ok := cache[sb]
		if !ok {
			m = property.NewMap(sb, t)
			cache[sb] = m
		}
		maps[i] = m
	}
	return maps
}

type combo struct{ alpha, beta mask128.Mask }

// expandPattern takes the Cartesian product of the property lists of a
// pattern's active S-box positions, assembling the concatenated
// per-position (α,β) into full-width values (spec §4.4.1).
func expandPattern(p pattern.Pattern, maps []*property.Map, inShift, outShift []uint) []combo {
	combos := []combo{{}}
	for i, idx := range p.Indices {
		if idx < 0 {
			continue
		}
		bucket := maps[i].Bucket(idx)
		next := make([]combo, 0, len(combos)*len(bucket.Pairs))
		for _, c := range combos {
			for _, pr := range bucket.Pairs {
				next = append(next, combo{
					alpha: c.alpha.Or(pr.Input.Shl(inShift[i])),
					beta:  c.beta.Or(pr.Output.Shl(outShift[i])),
				})
			}
		}
		combos = next
	}
	return combos
}

type roundEdge struct {
	alpha, beta mask128.Mask
	length      float64
}

// singleRoundEdges runs the pattern enumerator and expands every
// accepted pattern into concrete round-boundary edges via the cipher's
// sbox_mask_transform (spec §4.3-§4.4.1).
func singleRoundEdges(c cipher.Cipher, t property.Type, patternLimit int, anchorBits uint) []roundEdge {
	maps := buildPropertyMaps(c, t)

	inShift := make([]uint, len(maps))
	outShift := make([]uint, len(maps))
	var accIn, accOut uint
	for i := range maps {
		sb := c.Sbox(i)
		inShift[i], outShift[i] = accIn, accOut
		accIn += sb.SizeIn()
		accOut += sb.SizeOut()
	}

	enumerator := pattern.NewEnumerator(maps, anchorBits)
	results := pattern.Take(enumerator, patternLimit)

	var edges []roundEdge
	for _, r := range results {
		for _, cb := range expandPattern(r.Pattern, maps, inShift, outShift) {
			alpha, beta := c.SboxMaskTransform(cb.alpha, cb.beta, t)
			edges = append(edges, roundEdge{
				alpha:  alpha.MaskTo(c.BlockBits()),
				beta:   beta.MaskTo(c.BlockBits()),
				length: r.Value,
			})
		}
	}
	return edges
}

func allowedProjections(allowed map[AllowedPair]struct{}) (in, out map[mask128.Mask]struct{}) {
	in = make(map[mask128.Mask]struct{}, len(allowed))
	out = make(map[mask128.Mask]struct{}, len(allowed))
	for pair := range allowed {
		in[pair.Input] = struct{}{}
		out[pair.Output] = struct{}{}
	}
	return in, out
}

// buildCore assembles the R-stage graph of single-round edges,
// replicated across every stage, restricted at the boundary stages by
// allowed, then pruned to a fixpoint (spec §4.4.2-§4.4.4).
func buildCore(edges []roundEdge, rounds int, allowed map[AllowedPair]struct{}) *graph.MultistageGraph {
	allowedIn, allowedOut := allowedProjections(allowed)
	restrict := len(allowed) > 0

	g := graph.New(rounds + 1)
	for stage := 0; stage < rounds; stage++ {
		for _, e := range edges {
			if restrict && stage == 0 {
				if _, ok := allowedIn[e.alpha]; !ok {
					continue
				}
			}
			if restrict && stage == rounds-1 {
				if _, ok := allowedOut[e.beta]; !ok {
					continue
				}
			}
			g.AddVertex(stage, e.alpha)
			g.AddVertex(stage+1, e.beta)
			g.AddEdge(stage, e.alpha, e.beta, e.length)
		}
	}
	g.Prune(0, rounds+1)
	return g
}

// addWhitening wraps g with an extra identity stage at each end
// (length-1 self edges) when the cipher's key schedule produces a
// pre/post whitening key (spec §4.4.5).
func addWhitening(g *graph.MultistageGraph) *graph.MultistageGraph {
	inner := g.Stages()
	total := inner + 2
	wrapped := graph.New(total)
	wrapped.Splice(1, g)

	for label := range wrapped.GetStage(1) {
		wrapped.AddVertex(0, label)
		wrapped.AddEdge(0, label, label, 1.0)
	}
	for label := range wrapped.GetStage(total - 2) {
		wrapped.AddVertex(total-1, label)
		wrapped.AddEdge(total-2, label, label, 1.0)
	}
	wrapped.Prune(0, total)
	return wrapped
}

// Build constructs the multistage mask graph for a non-reflection
// cipher over the given number of rounds.
func Build(c cipher.Cipher, t property.Type, rounds, patternLimit int, anchorBits uint, allowed map[AllowedPair]struct{}) *graph.MultistageGraph {
	edges := singleRoundEdges(c, t, patternLimit, anchorBits)
	g := buildCore(edges, rounds, allowed)
	if c.Whitening() {
		g = addWhitening(g)
	}
	return g
}

// BuildReflection constructs a Prince-style graph: rounds must be even,
// and is split into two mirrored halves of rounds/2 each, stitched
// through the cipher's reflection_layer at the midpoint (spec §4.5).
func BuildReflection(c cipher.Cipher, t property.Type, rounds, patternLimit int, anchorBits uint, allowed map[AllowedPair]struct{}) (*graph.MultistageGraph, error) {
	if rounds%2 != 0 {
		return nil, fmt.Errorf("search: reflection graph requires an even round count, got %d", rounds)
	}
	half := rounds / 2

	edges := singleRoundEdges(c, t, patternLimit, anchorBits)
	first := buildCore(edges, half, allowed)
	if c.Whitening() {
		first = addWhitening(first)
	}

	second := first.Reversed()
	halfStages := first.Stages()

	combined := graph.New(halfStages * 2)
	combined.Splice(0, first)
	combined.Splice(halfStages, second)

	mid := halfStages - 1
	for label := range combined.GetStage(mid) {
		refl := c.ReflectionLayer(label)
		combined.AddVertex(mid+1, refl)
		combined.AddEdge(mid, label, refl, 1.0)
	}
	combined.Prune(0, combined.Stages())
	return combined, nil
}

// BuildCipherGraph dispatches to Build or BuildReflection based on the
// cipher's structural family.
func BuildCipherGraph(c cipher.Cipher, t property.Type, rounds, patternLimit int, anchorBits uint, allowed map[AllowedPair]struct{}) (*graph.MultistageGraph, error) {
	if c.Structure() == cipher.Prince {
		return BuildReflection(c, t, rounds, patternLimit, anchorBits, allowed)
	}
	return Build(c, t, rounds, patternLimit, anchorBits, allowed), nil
}
