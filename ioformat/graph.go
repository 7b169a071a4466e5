package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	g "github.com/psve/cryptagraph-sub001/graph"
	"github.com/psve/cryptagraph-sub001/mask128"
)

// WriteGraph writes the `.graph` format: vertex lines `stage,label`,
// edge lines `stage,from,stage+1,to`, labels in decimal (spec §6.2).
func WriteGraph(w io.Writer, graph *g.MultistageGraph) error {
	bw := bufio.NewWriter(w)
	for stage := 0; stage < graph.Stages(); stage++ {
		for label := range graph.GetStage(stage) {
			if _, err := fmt.Fprintf(bw, "%d,%d\n", stage, label.Uint64()); err != nil {
				return fmt.Errorf("ioformat: writing graph file: %w", err)
			}
		}
	}
	for stage := 0; stage < graph.Stages()-1; stage++ {
		for from, vertex := range graph.GetStage(stage) {
			for to := range vertex.Successors {
				if _, err := fmt.Fprintf(bw, "%d,%d,%d,%d\n", stage, from.Uint64(), stage+1, to.Uint64()); err != nil {
					return fmt.Errorf("ioformat: writing graph file: %w", err)
				}
			}
		}
	}
	return bw.Flush()
}

// ReadGraph parses the `.graph` format back into a MultistageGraph with
// the given number of stages. Edge lengths are not recorded in this
// format and are restored as 1.0.
func ReadGraph(r io.Reader, stages int) (*g.MultistageGraph, error) {
	graph := g.New(stages)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		switch len(fields) {
		case 2:
			stage, label, err := parseVertexLine(fields)
			if err != nil {
				return nil, fmt.Errorf("ioformat: graph file line %d: %w", line, err)
			}
			graph.AddVertex(stage, label)
		case 4:
			stage, from, to, err := parseEdgeLine(fields)
			if err != nil {
				return nil, fmt.Errorf("ioformat: graph file line %d: %w", line, err)
			}
			graph.AddEdge(stage, from, to, 1.0)
		default:
			return nil, fmt.Errorf("ioformat: graph file line %d: expected 2 or 4 fields, got %d", line, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading graph file: %w", err)
	}
	return graph, nil
}

func parseVertexLine(fields []string) (int, mask128.Mask, error) {
	stage, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, mask128.Zero, fmt.Errorf("bad stage: %w", err)
	}
	label, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return 0, mask128.Zero, fmt.Errorf("bad label: %w", err)
	}
	return stage, mask128.FromUint64(label), nil
}

func parseEdgeLine(fields []string) (stage int, from, to mask128.Mask, err error) {
	stage, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, mask128.Zero, mask128.Zero, fmt.Errorf("bad stage: %w", err)
	}
	fromV, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return 0, mask128.Zero, mask128.Zero, fmt.Errorf("bad from label: %w", err)
	}
	toV, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return 0, mask128.Zero, mask128.Zero, fmt.Errorf("bad to label: %w", err)
	}
	return stage, mask128.FromUint64(fromV), mask128.FromUint64(toV), nil
}
