package dist

import "github.com/psve/cryptagraph-sub001/mask128"

// MaskPool is a signed correlation accumulator over a mask set for one
// round, one random key (spec §4.7 step 2).
type MaskPool struct {
	masks map[mask128.Mask]float64
}

// NewMaskPool returns an empty pool.
func NewMaskPool() *MaskPool {
	return &MaskPool{masks: make(map[mask128.Mask]float64)}
}

// Clear empties the pool in place.
func (p *MaskPool) Clear() {
	p.masks = make(map[mask128.Mask]float64)
}

// Add seeds the pool with mask at correlation 1.0.
func (p *MaskPool) Add(m mask128.Mask) {
	p.masks[m] = 1.0
}

// Size returns the number of masks currently tracked.
func (p *MaskPool) Size() int { return len(p.masks) }

// Get returns the accumulated correlation for m, or 0 if untracked.
func (p *MaskPool) Get(m mask128.Mask) float64 {
	return p.masks[m]
}

// Step propagates poolOld one round forward into poolNew under lat and
// the given round key, flipping the sign of each contribution by the
// parity of alpha & key (spec §4.7 step 2's "key-dependent sign").
func Step(lat *MaskLAT, poolNew, poolOld *MaskPool, key mask128.Mask) {
	poolNew.Clear()
	for alpha, corr := range poolOld.masks {
		sign := 1.0
		if alpha.And(key).Parity() == 1 {
			sign = -1.0
		}
		for _, approx := range lat.Lookup(alpha) {
			poolNew.masks[approx.Beta] += sign * approx.Corr * corr
		}
	}
}
