// Command ghcnsplit divides a .dat file into two by reporting year. Stations
// whose newest record falls in or after the split year go to the "post" file,
// everything else to the "pre" file.
//
// Usage:
//
//	go run ./cmd/ghcnsplit [-in ghcnm.v3.dat] [-data-dir input] YEAR
//
// Output files are named ghcnm-preYEAR.dat and ghcnm-postYEAR.dat in the
// current directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/couchcryptid/ghcn-station-etl/internal/datafile"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
)

func main() {
	in := flag.String("in", "", "input .dat path, discovered under -data-dir when empty")
	dataDir := flag.String("data-dir", "input", "directory searched for .dat files")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	year, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghcnsplit: invalid year %q\n", flag.Arg(0))
		os.Exit(2)
	}

	if err := run(*in, *dataDir, year); err != nil {
		fmt.Fprintf(os.Stderr, "ghcnsplit: %v\n", err)
		os.Exit(1)
	}
}

func run(in, dataDir string, year int) error {
	path, err := datafile.Resolve(in, dataDir, ".dat")
	if err != nil {
		return err
	}

	dat, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dat.Close()

	pre, err := os.Create(fmt.Sprintf("ghcnm-pre%d.dat", year))
	if err != nil {
		return err
	}
	defer pre.Close()

	post, err := os.Create(fmt.Sprintf("ghcnm-post%d.dat", year))
	if err != nil {
		return err
	}
	defer post.Close()

	if err := domain.SplitByYear(dat, pre, post, year); err != nil {
		return fmt.Errorf("split %s: %w", path, err)
	}
	return nil
}
