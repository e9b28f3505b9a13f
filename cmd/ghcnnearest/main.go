// Command ghcnnearest lists the stations closest to a target coordinate.
// The target is given as a signed latitude/longitude pair with no separator,
// for example +51.4-0.3 for south-west London.
//
// Usage:
//
//	go run ./cmd/ghcnnearest [-n 10] [-data-dir input] [-inv ghcnm.v3.inv] ±LAT±LON
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
	n := flag.Int("n", 10, "number of stations to list")
	inv := flag.String("inv", "", "inventory path, discovered under -data-dir when empty")
	dataDir := flag.String("data-dir", "input", "directory searched for .inv files")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *inv, *dataDir, *n); err != nil {
		fmt.Fprintf(os.Stderr, "ghcnnearest: %v\n", err)
		os.Exit(1)
	}
}

func run(target, invPath, dataDir string, n int) error {
	lat, lon, err := domain.ParseTarget(target)
	if err != nil {
		return err
	}

	path, err := datafile.Resolve(invPath, dataDir, ".inv")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	inventory, err := domain.ParseInventory(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for _, s := range inventory.Nearest(lat, lon, n) {
		row := fmt.Sprintf("%-11s %8.4f %9.4f %6.1f %s", s.ID, s.Lat, s.Lon, s.Elevation, s.Name)
		fmt.Println(strings.TrimRight(row, " "))
	}
	return nil
}
