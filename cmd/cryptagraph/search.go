package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/psve/cryptagraph-sub001/cipher"
	_ "github.com/psve/cryptagraph-sub001/cipher/ciphers"
	"github.com/psve/cryptagraph-sub001/ioformat"
	"github.com/psve/cryptagraph-sub001/mask128"
	"github.com/psve/cryptagraph-sub001/pattern"
	"github.com/psve/cryptagraph-sub001/property"
	"github.com/psve/cryptagraph-sub001/sbox"
	"github.com/psve/cryptagraph-sub001/search"
)

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	cipherName := fs.String("cipher", "", "cipher name")
	typeName := fs.String("type", "linear", "linear or differential")
	rounds := fs.Int("rounds", 0, "number of rounds")
	patterns := fs.Int("patterns", 0, "number of patterns to enumerate")
	anchorBits := fs.Uint("anchors", pattern.DefaultAnchorBits, "log2 anchor cap")
	maskIn := fs.String("mask_in", "", "prefix of PREFIX.allowed, restricting boundary masks")
	maskOut := fs.String("mask_out", "", "prefix to write PREFIX.app and PREFIX.set")
	fileGraph := fs.String("file_graph", "", "prefix to write PREFIX.graph")
	top := fs.Int("top", 10000, "keep the top-K hull results by value")
	threads := fs.Int("threads", 0, "worker count (0 = runtime.NumCPU())")
	patternsOnly := fs.Bool("patterns-only", false, "enumerate patterns and exit, skipping graph construction")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cipherName == "" || *rounds <= 0 || *patterns <= 0 {
		return fmt.Errorf("search: --cipher, --rounds and --patterns are required")
	}
	propType, err := property.ParseType(*typeName)
	if err != nil {
		return err
	}
	c, err := cipher.New(*cipherName)
	if err != nil {
		return err
	}

	if *patternsOnly {
		return runPatternsOnly(c, propType, *patterns, *anchorBits)
	}

	var allowed map[search.AllowedPair]struct{}
	if *maskIn != "" {
		f, err := os.Open(*maskIn + ".allowed")
		if err != nil {
			return fmt.Errorf("search: opening allowed-pair file: %w", err)
		}
		defer f.Close()
		allowed, err = ioformat.ReadAllowedPairs(f)
		if err != nil {
			return err
		}
	}

	g, err := search.BuildCipherGraph(c, propType, *rounds, *patterns, *anchorBits, allowed)
	if err != nil {
		return err
	}
	logger.Printf("search: built graph: %d vertices, %d edges", g.NumVertices(), g.NumEdges())

	if *fileGraph != "" {
		f, err := os.Create(*fileGraph + ".graph")
		if err != nil {
			return fmt.Errorf("search: creating graph file: %w", err)
		}
		defer f.Close()
		if err := ioformat.WriteGraph(f, g); err != nil {
			return err
		}
	}

	results := search.AggregateHulls(g, allowed, *top, *threads)
	logger.Printf("search: found %d hull results", len(results))

	if *maskOut != "" {
		nibbles := int((c.BlockBits() + 3) / 4)
		appFile, err := os.Create(*maskOut + ".app")
		if err != nil {
			return fmt.Errorf("search: creating results file: %w", err)
		}
		defer appFile.Close()
		if err := ioformat.WriteResults(appFile, results, nibbles); err != nil {
			return err
		}

		setFile, err := os.Create(*maskOut + ".set")
		if err != nil {
			return fmt.Errorf("search: creating mask set file: %w", err)
		}
		defer setFile.Close()
		if err := ioformat.WriteMasks(setFile, outputMasks(results), nibbles); err != nil {
			return err
		}
	}
	return nil
}

// runPatternsOnly is the bin_enumerate-equivalent standalone dump: run
// the pattern enumerator alone and report value/expansion per pattern,
// without building a graph.
func runPatternsOnly(c cipher.Cipher, t property.Type, limit int, anchorBits uint) error {
	n := c.NumSboxes()
	maps := make([]*property.Map, n)
	cache := make(map[*sbox.Sbox]*property.Map, n)
	for i := 0; i < n; i++ {
		sb := c.Sbox(i)
		m, ok := cache[sb]
		if !ok {
			m = property.NewMap(sb, t)
			cache[sb] = m
		}
		maps[i] = m
	}

	enumerator := pattern.NewEnumerator(maps, anchorBits)
	for _, r := range pattern.Take(enumerator, limit) {
		fmt.Printf("%v\t%g\t%d\n", r.Pattern.Indices, r.Value, r.ExpansionSize)
	}
	return nil
}

func outputMasks(results []search.HullResult) []mask128.Mask {
	seen := make(map[mask128.Mask]struct{}, len(results))
	out := make([]mask128.Mask, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Output]; ok {
			continue
		}
		seen[r.Output] = struct{}{}
		out = append(out, r.Output)
	}
	return out
}
