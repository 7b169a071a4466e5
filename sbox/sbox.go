// Package sbox implements the S-box table type shared by every cipher:
// the lookup table itself plus its precomputed Linear Approximation Table
// and Differential Distribution Table (spec §3, §4.2).
package sbox

import "github.com/psve/cryptagraph-sub001/internal/xmath"

// Sbox is an immutable nIn-bit to nOut-bit substitution table, with its
// LAT and DDT computed once at construction (spec §4.2).
type Sbox struct {
	nIn, nOut uint
	table     []uint64
	lat       [][]int64
	ddt       [][]int64
}

// New builds an Sbox from its table description. len(table) must equal
// 2^nIn, and every entry must fit in nOut bits.
func New(nIn, nOut uint, table []uint64) *Sbox {
	if len(table) != 1<<nIn {
		panic("sbox: table length does not match 2^nIn")
	}
	s := &Sbox{nIn: nIn, nOut: nOut, table: append([]uint64(nil), table...)}
	s.lat = generateLAT(table, nIn, nOut)
	s.ddt = generateDDT(table, nIn, nOut)
	return s
}

// generateLAT computes LAT[alpha][beta] = #{x : <alpha,x> = <beta,S(x)>}.
func generateLAT(table []uint64, nIn, nOut uint) [][]int64 {
	inSize, outSize := 1<<nIn, 1<<nOut
	lat := make([][]int64, inSize)
	for a := range lat {
		lat[a] = make([]int64, outSize)
	}
	for x, y := range table {
		for alpha := 0; alpha < inSize; alpha++ {
			pIn := xmath.InnerParity(uint64(x), uint64(alpha))
			for beta := 0; beta < outSize; beta++ {
				pOut := xmath.InnerParity(y, uint64(beta))
				if pIn == pOut {
					lat[alpha][beta]++
				}
			}
		}
	}
	return lat
}

// generateDDT computes DDT[deltaIn][deltaOut] = #{x : S(x^deltaIn)^S(x) == deltaOut}.
func generateDDT(table []uint64, nIn, nOut uint) [][]int64 {
	inSize, outSize := 1<<nIn, 1<<nOut
	ddt := make([][]int64, inSize)
	for d := range ddt {
		ddt[d] = make([]int64, outSize)
	}
	for x0, y0 := range table {
		for deltaIn := 0; deltaIn < inSize; deltaIn++ {
			x1 := x0 ^ deltaIn
			y1 := table[x1]
			ddt[deltaIn][y0^y1]++
		}
	}
	return ddt
}

// Apply evaluates the S-box on x.
func (s *Sbox) Apply(x uint64) uint64 {
	return s.table[x&s.Mask()]
}

// LAT returns the S-box's Linear Approximation Table.
func (s *Sbox) LAT() [][]int64 { return s.lat }

// DDT returns the S-box's Differential Distribution Table.
func (s *Sbox) DDT() [][]int64 { return s.ddt }

// Mask returns the input bitmask, 2^nIn - 1.
func (s *Sbox) Mask() uint64 { return (1 << s.nIn) - 1 }

// OutMask returns the output bitmask, 2^nOut - 1.
func (s *Sbox) OutMask() uint64 { return (1 << s.nOut) - 1 }

// SizeIn returns the input size in bits.
func (s *Sbox) SizeIn() uint { return s.nIn }

// SizeOut returns the output size in bits.
func (s *Sbox) SizeOut() uint { return s.nOut }

// Size returns the input size in bits, matching the common case of a
// square S-box (nIn == nOut) used by every cipher this repository
// implements in full.
func (s *Sbox) Size() uint { return s.nIn }

// LinearBalance is the LAT baseline for a balanced approximation, 2^(nIn-1).
func (s *Sbox) LinearBalance() int64 { return 1 << (s.nIn - 1) }

// DifferentialZero is the DDT baseline for an impossible differential.
func (s *Sbox) DifferentialZero() int64 { return 0 }
