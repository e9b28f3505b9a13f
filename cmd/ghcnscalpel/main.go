// Command ghcnscalpel cuts station temperature series at long gaps. Each cut
// spawns a child station carrying the earlier segment under a mutated id;
// the newest segment keeps the parent id. It writes a new .dat file and a
// matching .inv whose child rows reuse the parent's metadata columns.
//
// Usage:
//
//	go run ./cmd/ghcnscalpel -o cut.dat [-gap 18] [-data-dir input] [ghcnm.v3.dat]
//
// The inventory is read from the input path with .dat replaced by .inv, and
// the output inventory is the -o path with .dat replaced by .inv.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/ghcn-station-etl/internal/datafile"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
)

func main() {
	out := flag.String("o", "", "output .dat path (required)")
	gap := flag.Int("gap", domain.DefaultScalpelGap, "minimum gap in months that triggers a cut")
	dataDir := flag.String("data-dir", "input", "directory searched for .dat files when no path is given")
	flag.Parse()

	if *out == "" || flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *dataDir, *out, *gap); err != nil {
		fmt.Fprintf(os.Stderr, "ghcnscalpel: %v\n", err)
		os.Exit(1)
	}
}

func invPath(datPath string) string {
	return strings.TrimSuffix(datPath, ".dat") + ".inv"
}

func run(arg, dataDir, out string, gap int) error {
	datIn, err := datafile.Resolve(arg, dataDir, ".dat")
	if err != nil {
		return err
	}

	dat, err := os.Open(datIn)
	if err != nil {
		return err
	}
	defer dat.Close()

	inv, err := os.Open(invPath(datIn))
	if err != nil {
		return err
	}
	defer inv.Close()

	outDat, err := os.Create(out)
	if err != nil {
		return err
	}
	defer outDat.Close()

	outInv, err := os.Create(invPath(out))
	if err != nil {
		return err
	}
	defer outInv.Close()

	if err := domain.Scalpel(dat, inv, outDat, outInv, gap); err != nil {
		return fmt.Errorf("scalpel %s: %w", datIn, err)
	}
	return nil
}
