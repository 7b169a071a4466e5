// Package pattern implements the best-first S-box activity pattern
// enumerator of spec §4.3: patterns are produced in non-increasing
// value order via a max-heap, bounded by a caller-supplied anchor cap.
package pattern

import (
	"container/heap"
	"encoding/binary"
	"fmt"

	"github.com/psve/cryptagraph-sub001/internal/kprng"
	"github.com/psve/cryptagraph-sub001/property"
)

// Pattern fixes, for each S-box position, which property-map bucket to
// draw from; -1 means the position is inactive (baseline, contributes a
// multiplicative factor of 1 and expands to a single trivial (0,0) pair).
type Pattern struct {
	Indices []int
}

func (p Pattern) clone() Pattern {
	idx := make([]int, len(p.Indices))
	copy(idx, p.Indices)
	return Pattern{Indices: idx}
}

func (p Pattern) key() string {
	return fmt.Sprint(p.Indices)
}

// hashKey condenses the pattern's indices into a single uint64 via the
// engine's fast non-cryptographic hash, used as the visited-set key so
// membership checks don't allocate and compare a string per successor.
func (p Pattern) hashKey() uint64 {
	buf := make([]byte, len(p.Indices)*8)
	for i, v := range p.Indices {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(int64(v)))
	}
	return kprng.FastHash64(buf)
}

// Result is one accepted pattern together with its product value and the
// number of concrete (alpha, beta) pairs it expands into.
type Result struct {
	Pattern       Pattern
	Value         float64
	ExpansionSize uint64
}

// state is a heap entry: a pattern plus its precomputed value.
type state struct {
	pattern Pattern
	value   float64
}

type maxHeap []state

func (h maxHeap) Len() int { return len(h) }
func (h maxHeap) Less(i, j int) bool {
	if h[i].value != h[j].value {
		return h[i].value > h[j].value
	}
	return h[i].pattern.key() < h[j].pattern.key()
}
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(state)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Enumerator produces patterns over numSboxes positions, each drawing
// from maps[i]'s bucket list (maps may alias the same *property.Map for
// homogeneous S-box layers, per spec §4.2/§9 "Heterogeneous S-boxes").
type Enumerator struct {
	maps        []*property.Map
	heap        maxHeap
	visited     map[uint64]struct{}
	anchorCap   uint64
	anchorsUsed uint64
}

// DefaultAnchorBits is the default `a` in the 2^a anchor cap (spec §4.3).
const DefaultAnchorBits = 17

// NewEnumerator builds the enumerator's initial heap (the root pattern,
// all positions inactive, value 1.0) with an anchor budget of 2^anchorBits.
func NewEnumerator(maps []*property.Map, anchorBits uint) *Enumerator {
	root := Pattern{Indices: make([]int, len(maps))}
	for i := range root.Indices {
		root.Indices[i] = -1
	}
	e := &Enumerator{
		maps:      maps,
		visited:   map[uint64]struct{}{root.hashKey(): {}},
		anchorCap: uint64(1) << anchorBits,
	}
	heap.Init(&e.heap)
	heap.Push(&e.heap, state{pattern: root, value: 1.0})
	return e
}

func (e *Enumerator) valueOf(p Pattern) (float64, uint64) {
	value := 1.0
	var expansion uint64 = 1
	for i, idx := range p.Indices {
		if idx < 0 {
			continue
		}
		b := e.maps[i].Bucket(idx)
		value *= b.Value
		expansion *= uint64(len(b.Pairs))
	}
	return value, expansion
}

func (e *Enumerator) pushSuccessors(p Pattern) {
	for i := range p.Indices {
		next := p.clone()
		next.Indices[i]++
		if next.Indices[i] >= e.maps[i].NumBuckets() {
			continue
		}
		hk := next.hashKey()
		if _, ok := e.visited[hk]; ok {
			continue
		}
		e.visited[hk] = struct{}{}
		value, _ := e.valueOf(next)
		heap.Push(&e.heap, state{pattern: next, value: value})
	}
}

// Next pops the next-highest-value pattern whose expansion fits within
// the remaining anchor budget, skipping (but still expanding the
// successors of) patterns that would overflow it. It returns ok=false
// once the heap is exhausted.
func (e *Enumerator) Next() (Result, bool) {
	for e.heap.Len() > 0 {
		top := heap.Pop(&e.heap).(state)
		e.pushSuccessors(top.pattern)

		value, expansion := e.valueOf(top.pattern)
		if e.anchorsUsed+expansion > e.anchorCap {
			continue
		}
		e.anchorsUsed += expansion
		return Result{Pattern: top.pattern, Value: value, ExpansionSize: expansion}, true
	}
	return Result{}, false
}

// AnchorsUsed returns the running total of expanded anchors accepted so far.
func (e *Enumerator) AnchorsUsed() uint64 { return e.anchorsUsed }

// Take drains up to n accepted patterns in non-increasing value order
// (spec §4.3's "Enumeration contract").
func Take(e *Enumerator, n int) []Result {
	out := make([]Result, 0, n)
	for len(out) < n {
		r, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}
