// Package property implements single S-box properties (linear
// approximations or differentials) and the PropertyMap that buckets them
// by magnitude for the pattern enumerator (spec §3, §4.2).
package property

import "github.com/psve/cryptagraph-sub001/mask128"

// Type selects whether a PropertyMap is built from an S-box's LAT or DDT.
type Type int

const (
	Linear Type = iota
	Differential
)

func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Differential:
		return "differential"
	default:
		return "unknown"
	}
}

// ParseType parses the --type flag value.
func ParseType(s string) (Type, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "differential":
		return Differential, nil
	default:
		return Linear, errUnknownType(s)
	}
}

type errUnknownType string

func (e errUnknownType) Error() string { return "property: unknown property type " + string(e) }

// Property is a single-round (input, output) pair together with its
// squared correlation or probability and the number of trails it
// aggregates. Equality and hashing use only (Input, Output), per spec §3.
type Property struct {
	Input, Output mask128.Mask
	Value         float64
	Trails        uint64
}

// Key returns the (Input, Output) pair used for equality/deduplication.
type Key struct {
	Input, Output mask128.Mask
}

func (p Property) Key() Key {
	return Key{p.Input, p.Output}
}

// Bucket groups every concrete S-box property sharing one magnitude,
// along with deduplicated input-only and output-only projections used
// when one endpoint of a pattern is pinned (spec §4.2).
type Bucket struct {
	// Value is the per-S-box linear squared correlation or differential
	// probability shared by every property in Pairs.
	Value float64
	Pairs []Property

	// InputOnly and OutputOnly record, for every distinct input
	// (respectively output), that it appears with this magnitude at all.
	// Output (respectively Input) is collapsed to 0/1 to signal presence.
	InputOnly  []Property
	OutputOnly []Property
}

// Map buckets an S-box's non-trivial LAT or DDT entries by magnitude,
// descending, so the pattern enumerator can walk buckets in decreasing
// value order (spec §4.2, §4.3).
type Map struct {
	propType Type
	nIn      uint
	keys     []int64 // magnitudes, descending
	buckets  map[int64]*Bucket
}

// lattable is the minimal S-box surface the property map needs.
type lattable interface {
	LAT() [][]int64
	DDT() [][]int64
	Size() uint
	LinearBalance() int64
	DifferentialZero() int64
}

// NewMap builds the PropertyMap for the given property type over sb.
func NewMap(sb lattable, t Type) *Map {
	var table [][]int64
	var baseline int64
	switch t {
	case Linear:
		table = sb.LAT()
		baseline = sb.LinearBalance()
	case Differential:
		table = sb.DDT()
		baseline = sb.DifferentialZero()
	default:
		panic("property: unknown property type")
	}

	n := sb.Size()
	balance := float64(int64(1) << (n - 1))

	buckets := make(map[int64]*Bucket)
	for in, row := range table {
		for out, entry := range row {
			// The trivial (0,0) pair is what an inactive pattern position
			// stands for, so it is never bucketed as an active property.
			if entry == baseline || (in == 0 && out == 0) {
				continue
			}
			key := entry - baseline
			if key < 0 {
				key = -key
			}
			b, ok := buckets[key]
			if !ok {
				var value float64
				switch t {
				case Linear:
					bias := float64(key)
					corr := bias / balance
					value = corr * corr
				case Differential:
					value = float64(entry) / float64(int64(1)<<n)
				}
				b = &Bucket{Value: value}
				buckets[key] = b
			}
			in64 := mask128.FromUint64(uint64(in))
			out64 := mask128.FromUint64(uint64(out))
			b.Pairs = append(b.Pairs, Property{Input: in64, Output: out64, Value: 1.0, Trails: 1})
			b.InputOnly = append(b.InputOnly, Property{Input: in64, Output: presence(out != 0), Value: 1.0, Trails: 1})
			b.OutputOnly = append(b.OutputOnly, Property{Input: presence(in != 0), Output: out64, Value: 1.0, Trails: 1})
		}
	}

	for _, b := range buckets {
		b.InputOnly = dedup(b.InputOnly)
		b.OutputOnly = dedup(b.OutputOnly)
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sortDescByValue(keys, buckets)

	return &Map{propType: t, nIn: n, keys: keys, buckets: buckets}
}

func presence(nonZero bool) mask128.Mask {
	if nonZero {
		return mask128.FromUint64(1)
	}
	return mask128.Zero
}

func dedup(props []Property) []Property {
	seen := make(map[Key]struct{}, len(props))
	out := props[:0]
	for _, p := range props {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func sortDescByValue(keys []int64, buckets map[int64]*Bucket) {
	// Simple insertion sort: the number of distinct bias/probability
	// magnitudes is at most 2^n, tiny for the 3-8 bit S-boxes in scope.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && buckets[keys[j]].Value > buckets[keys[j-1]].Value; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

// Keys returns the bucket magnitudes in descending value order.
func (m *Map) Keys() []int64 { return m.keys }

// Bucket returns the bucket for the i'th key in descending order.
func (m *Map) Bucket(i int) *Bucket { return m.buckets[m.keys[i]] }

// NumBuckets returns the number of distinct non-trivial magnitudes.
func (m *Map) NumBuckets() int { return len(m.keys) }

// Type returns the property type this map was built for.
func (m *Map) Type() Type { return m.propType }
