// Command cryptagraph runs the linear/differential cryptanalysis
// search engine and its distribution sub-tool (spec §6.1).
package main

import (
	"fmt"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", 0)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "search":
		err = runSearch(os.Args[2:])
	case "dist":
		err = runDist(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Printf("cryptagraph: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cryptagraph <search|dist> [flags]")
}
