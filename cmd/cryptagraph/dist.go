package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/psve/cryptagraph-sub001/cipher"
	_ "github.com/psve/cryptagraph-sub001/cipher/ciphers"
	"github.com/psve/cryptagraph-sub001/dist"
	"github.com/psve/cryptagraph-sub001/ioformat"
	"github.com/psve/cryptagraph-sub001/mask128"
)

func runDist(args []string) error {
	fs := flag.NewFlagSet("dist", flag.ContinueOnError)
	cipherName := fs.String("cipher", "", "cipher name")
	alphaFile := fs.String("alpha", "", "file of alpha masks, one hex value per line")
	betaFile := fs.String("beta", "", "file of beta masks, one hex value per line")
	rounds := fs.Int("rounds", 0, "number of rounds")
	keys := fs.Int("keys", 0, "number of random keys to sample")
	masksFile := fs.String("masks", "", "file of candidate hull masks for the bricklayer LAT")
	output := fs.String("output", "", "output name; writes NAME_r{R}_{output}.corrs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cipherName == "" || *alphaFile == "" || *betaFile == "" || *masksFile == "" || *rounds <= 0 || *keys <= 0 || *output == "" {
		return fmt.Errorf("dist: --cipher, --alpha, --beta, --masks, --rounds, --keys and --output are required")
	}

	c, err := cipher.New(*cipherName)
	if err != nil {
		return err
	}

	alphas, err := readMaskFile(*alphaFile)
	if err != nil {
		return err
	}
	betas, err := readMaskFile(*betaFile)
	if err != nil {
		return err
	}
	hullMasks, err := readMaskFile(*masksFile)
	if err != nil {
		return err
	}

	lat := dist.NewMaskLAT(c, hullMasks)
	samples, err := dist.Correlations(c, lat, alphas, betas, *rounds, *keys)
	if err != nil {
		return err
	}

	var pairs []dist.PairKey
	for _, a := range alphas {
		for _, b := range betas {
			pairs = append(pairs, dist.PairKey{Alpha: a, Beta: b})
		}
	}

	outPath := fmt.Sprintf("%s_r%d_%s.corrs", *cipherName, *rounds, *output)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("dist: creating correlations file: %w", err)
	}
	defer f.Close()
	if err := ioformat.WriteCorrelations(f, pairs, samples); err != nil {
		return err
	}
	logger.Printf("dist: wrote %s (%d pairs, %d keys)", outPath, len(pairs), *keys)
	return nil
}

func readMaskFile(path string) ([]mask128.Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dist: opening %s: %w", path, err)
	}
	defer f.Close()
	return ioformat.ReadMasks(f)
}
