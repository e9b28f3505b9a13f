// Command ghcngaps reports interior gaps in GHCN-M v3 temperature series.
// For every station/element series with one or more runs of missing months
// strictly inside its data span, it prints one line per run:
//
//	ID ELEMENT LENGTH
//
// Usage:
//
//	go run ./cmd/ghcngaps [-data-dir input] [ghcnm.v3.dat]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/ghcn-station-etl/internal/datafile"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
)

func main() {
	dataDir := flag.String("data-dir", "input", "directory searched for .dat files when no path is given")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "ghcngaps: %v\n", err)
		os.Exit(1)
	}
}

func run(arg, dataDir string) error {
	path, err := datafile.Resolve(arg, dataDir, ".dat")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return domain.ScanSeries(f, func(s domain.Series) error {
		for _, gap := range s.Gaps() {
			fmt.Printf("%s %s %d\n", s.ID, s.Element, gap)
		}
		return nil
	})
}
