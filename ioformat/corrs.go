package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/psve/cryptagraph-sub001/dist"
)

// WriteCorrelations writes the `.corrs` format: a header row of
// `αhex_βhex` columns (32 hex chars each, zero-padded) followed by one
// row per key trial of comma-separated f64 correlations, columns in
// the order given by pairs (spec §6.1 "dist").
func WriteCorrelations(w io.Writer, pairs []dist.PairKey, samples map[dist.PairKey][]float64) error {
	bw := bufio.NewWriter(w)

	headers := make([]string, len(pairs))
	rows := 0
	for i, pk := range pairs {
		headers[i] = pk.Alpha.Hex(32) + "_" + pk.Beta.Hex(32)
		if n := len(samples[pk]); n > rows {
			rows = n
		}
	}
	if _, err := fmt.Fprintln(bw, strings.Join(headers, ",")); err != nil {
		return fmt.Errorf("ioformat: writing corrs header: %w", err)
	}

	for r := 0; r < rows; r++ {
		fields := make([]string, len(pairs))
		for i, pk := range pairs {
			col := samples[pk]
			if r < len(col) {
				fields[i] = strconv.FormatFloat(col[r], 'g', -1, 64)
			}
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("ioformat: writing corrs row %d: %w", r, err)
		}
	}
	return bw.Flush()
}
