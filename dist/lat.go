// Package dist implements the distribution enumeration sub-tool: for a
// fixed set of "hull masks" it builds a per-round bricklayer
// correlation table over the cipher's repeated S-box, then propagates
// a signed correlation pool across R rounds for K random keys (spec
// §4.7, §6.1 "dist").
package dist

import (
	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/mask128"
)

// floatTiny is the squared-correlation underflow floor below which an
// approximation is dropped rather than carried forward, matching the
// original implementation's FLOAT_TINY.
const floatTiny = 1e-35

// MaskApproximation is one entry of a MaskLAT row: the full-width β
// (already mapped through the cipher's linear layer, so MaskLAT stays
// in "α space" across rounds) and the bricklayer correlation for α↔β.
type MaskApproximation struct {
	Beta mask128.Mask
	Corr float64
}

// MaskLAT is the full-width correlation table over a bricklayer of
// repeated S-boxes, restricted to a caller-supplied candidate mask set
// (spec §4.7 step 1). It assumes a single repeated S-box across every
// position, the same assumption the distribution sub-tool's original
// implementation makes.
type MaskLAT struct {
	byAlpha map[mask128.Mask][]MaskApproximation
}

func sboxCorrelations(sb interface {
	LAT() [][]int64
	Size() uint
}) ([][]float64, [][]bool) {
	n := sb.Size()
	size := 1 << n
	balance := int64(1) << (n - 1)
	corr := make([][]float64, size)
	balanced := make([][]bool, size)
	for a, row := range sb.LAT() {
		corr[a] = make([]float64, size)
		balanced[a] = make([]bool, size)
		for b, hits := range row {
			corr[a][b] = 2.0*float64(hits)/float64(size) - 1.0
			balanced[a][b] = hits == balance
		}
	}
	return corr, balanced
}

func bricklayerCorrelation(corr [][]float64, balanced [][]bool, w uint, numSboxes int, alpha, beta mask128.Mask) (float64, bool) {
	total := 1.0
	m := (uint64(1) << w) - 1
	for i := 0; i < numSboxes; i++ {
		shift := uint(i) * w
		a := alpha.Shr(shift).Uint64() & m
		b := beta.Shr(shift).Uint64() & m
		if balanced[a][b] {
			return 0, false
		}
		total *= corr[a][b]
	}
	return total, true
}

// NewMaskLAT builds the bricklayer correlation table restricted to
// masks: for every α in masks, the candidate β values are masks run
// backward through the linear layer (cipher.linear_layer_inv), so that
// corr(α,β) is exactly the full-round correlation reachable from α
// while staying inside the caller's mask set (spec §4.7 step 1).
func NewMaskLAT(c cipher.Cipher, masks []mask128.Mask) *MaskLAT {
	sb := c.Sbox(0)
	w := sb.Size()
	numSboxes := c.NumSboxes()
	corr, balanced := sboxCorrelations(sb)

	betaCandidates := make([]mask128.Mask, len(masks))
	for i, a := range masks {
		betaCandidates[i] = c.LinearLayerInv(a)
	}

	byAlpha := make(map[mask128.Mask][]MaskApproximation, len(masks))
	for _, alpha := range masks {
		var list []MaskApproximation
		for _, beta := range betaCandidates {
			corrVal, ok := bricklayerCorrelation(corr, balanced, w, numSboxes, alpha, beta)
			if !ok || corrVal*corrVal < floatTiny {
				continue
			}
			// Reapply the linear layer to beta so MaskLAT entries stay in
			// "alpha space": the next round's pool lookup keys on this value.
			list = append(list, MaskApproximation{Beta: c.LinearLayer(beta), Corr: corrVal})
		}
		byAlpha[alpha] = list
	}
	return &MaskLAT{byAlpha: byAlpha}
}

// Lookup returns every approximation rooted at alpha.
func (m *MaskLAT) Lookup(alpha mask128.Mask) []MaskApproximation {
	return m.byAlpha[alpha]
}
