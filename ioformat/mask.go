// Package ioformat implements the plain-text file formats the CLI
// reads and writes: mask lists, allowed-pair files, result dumps, and
// graph dumps (spec §6.2).
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/psve/cryptagraph-sub001/mask128"
)

// ReadMasks reads one zero-padded hex integer per line, no "0x" prefix,
// skipping blank lines.
func ReadMasks(r io.Reader) ([]mask128.Mask, error) {
	scanner := bufio.NewScanner(r)
	var masks []mask128.Mask
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		m, err := mask128.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("ioformat: mask file line %d: %w", line, err)
		}
		masks = append(masks, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading mask file: %w", err)
	}
	return masks, nil
}

// WriteMasks writes one zero-padded hex integer per line, nibbles wide.
func WriteMasks(w io.Writer, masks []mask128.Mask, nibbles int) error {
	bw := bufio.NewWriter(w)
	for _, m := range masks {
		if _, err := fmt.Fprintln(bw, m.Hex(nibbles)); err != nil {
			return fmt.Errorf("ioformat: writing mask file: %w", err)
		}
	}
	return bw.Flush()
}
