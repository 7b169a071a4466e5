package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/search"
)

// WriteResults writes the `.app` format: one line per hull result,
// `((alphaHex,betaHex),trails,log2value)` (spec §6.2).
func WriteResults(w io.Writer, results []search.HullResult, nibbles int) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		log2v := math.Log2(r.Value)
		if _, err := fmt.Fprintf(bw, "((%s,%s),%d,%g)\n",
			r.Input.Hex(nibbles), r.Output.Hex(nibbles), r.Trails, log2v); err != nil {
			return fmt.Errorf("ioformat: writing results file: %w", err)
		}
	}
	return bw.Flush()
}

// ReadResults parses the `.app` format back into HullResults.
func ReadResults(r io.Reader) ([]search.HullResult, error) {
	scanner := bufio.NewScanner(r)
	var out []search.HullResult
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		text = strings.TrimPrefix(text, "((")
		text = strings.TrimSuffix(text, ")")
		parts := strings.SplitN(text, "),", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("ioformat: results file line %d: malformed entry %q", line, text)
		}
		maskParts := strings.SplitN(parts[0], ",", 2)
		if len(maskParts) != 2 {
			return nil, fmt.Errorf("ioformat: results file line %d: malformed mask pair %q", line, parts[0])
		}
		alpha, err := mask128.Parse(maskParts[0])
		if err != nil {
			return nil, fmt.Errorf("ioformat: results file line %d: %w", line, err)
		}
		beta, err := mask128.Parse(maskParts[1])
		if err != nil {
			return nil, fmt.Errorf("ioformat: results file line %d: %w", line, err)
		}

		rest := strings.SplitN(parts[1], ",", 2)
		if len(rest) != 2 {
			return nil, fmt.Errorf("ioformat: results file line %d: malformed trails/value %q", line, parts[1])
		}
		trails, err := strconv.ParseUint(rest[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: results file line %d: bad trails count: %w", line, err)
		}
		log2v, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: results file line %d: bad log2 value: %w", line, err)
		}

		out = append(out, search.HullResult{
			Input:  alpha,
			Output: beta,
			Trails: trails,
			Value:  math.Exp2(log2v),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading results file: %w", err)
	}
	return out, nil
}
