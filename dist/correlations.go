package dist

import (
	"crypto/rand"
	"fmt"

	"github.com/psve/cryptagraph-sub001/cipher"
	"github.com/psve/cryptagraph-sub001/internal/kprng"
	"github.com/psve/cryptagraph-sub001/mask128"
)

// PairKey identifies one (alpha, beta) hull tracked across keys.
type PairKey struct {
	Alpha, Beta mask128.Mask
}

// Correlations runs the dist sub-tool: for each of keys independently
// sampled round-key schedules, seed a pool at every alpha in alphas and
// step it forward rounds times against lat, recording the correlation
// landing on every beta in betas. The result maps each observed
// (alpha, beta) pair to one empirical correlation sample per key (spec
// §4.7 steps 2-3, §6.1 "dist").
func Correlations(c cipher.Cipher, lat *MaskLAT, alphas, betas []mask128.Mask, rounds, keys int) (map[PairKey][]float64, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("dist: rounds must be >= 1, got %d", rounds)
	}
	if keys < 1 {
		return nil, fmt.Errorf("dist: keys must be >= 1, got %d", keys)
	}

	betaSet := make(map[mask128.Mask]struct{}, len(betas))
	for _, b := range betas {
		betaSet[b] = struct{}{}
	}

	out := make(map[PairKey][]float64)
	keyBytes := make([]byte, (c.KeyBits()+7)/8)
	poolA, poolB := NewMaskPool(), NewMaskPool()

	// Seed a keyed PRNG from a single crypto/rand draw, then pull every
	// trial's key material from that stream: one entropy-backed seed
	// yields a reproducible sequence if the caller logs it, instead of
	// making a fresh syscall per trial.
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("dist: seeding key stream: %w", err)
	}
	keyStream, err := kprng.New(seed)
	if err != nil {
		return nil, fmt.Errorf("dist: starting key stream: %w", err)
	}

	for k := 0; k < keys; k++ {
		if _, err := keyStream.Read(keyBytes); err != nil {
			return nil, fmt.Errorf("dist: sampling key material: %w", err)
		}
		roundKeys, err := c.KeySchedule(rounds, keyBytes)
		if err != nil {
			return nil, fmt.Errorf("dist: key schedule: %w", err)
		}

		for _, alpha := range alphas {
			poolA.Clear()
			poolA.Add(alpha)
			cur, next := poolA, poolB
			for r := 0; r < rounds; r++ {
				Step(lat, next, cur, roundKeys[r])
				cur, next = next, cur
			}
			for beta := range betaSet {
				pk := PairKey{Alpha: alpha, Beta: beta}
				out[pk] = append(out[pk], cur.Get(beta))
			}
		}
	}
	return out, nil
}
