package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/search"
)

// ReadAllowedPairs reads lines `alphaHex,betaHex` into the allow-set the
// graph builder restricts boundary stages to (spec §6.2).
func ReadAllowedPairs(r io.Reader) (map[search.AllowedPair]struct{}, error) {
	scanner := bufio.NewScanner(r)
	out := make(map[search.AllowedPair]struct{})
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("ioformat: allowed-pair file line %d: expected \"alphaHex,betaHex\", got %q", line, text)
		}
		alpha, err := mask128.Parse(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("ioformat: allowed-pair file line %d: %w", line, err)
		}
		beta, err := mask128.Parse(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("ioformat: allowed-pair file line %d: %w", line, err)
		}
		out[search.AllowedPair{Input: alpha, Output: beta}] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading allowed-pair file: %w", err)
	}
	return out, nil
}

// WriteAllowedPairs writes the `alphaHex,betaHex` format back out.
func WriteAllowedPairs(w io.Writer, pairs map[search.AllowedPair]struct{}, nibbles int) error {
	bw := bufio.NewWriter(w)
	for pair := range pairs {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", pair.Input.Hex(nibbles), pair.Output.Hex(nibbles)); err != nil {
			return fmt.Errorf("ioformat: writing allowed-pair file: %w", err)
		}
	}
	return bw.Flush()
}
