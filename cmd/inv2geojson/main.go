// Command inv2geojson converts a GHCN-M v3 station inventory (.inv) file
// into a GeoJSON FeatureCollection.
//
// Usage:
//
//	go run ./cmd/inv2geojson [-o stations.geojson] [-pretty] [ghcnm.v3.inv]
//
// With no positional argument the newest inventory under -data-dir is used.
// Output goes to stdout when -o is empty or "-".
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/ghcn-station-etl/internal/datafile"
	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
)

func main() {
	out := flag.String("o", "", "output path, empty or \"-\" for stdout")
	pretty := flag.Bool("pretty", false, "indent the GeoJSON output")
	dataDir := flag.String("data-dir", "input", "directory searched for .inv files when no path is given")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *dataDir, *out, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "inv2geojson: %v\n", err)
		os.Exit(1)
	}
}

func run(arg, dataDir, out string, pretty bool) error {
	path, err := datafile.Resolve(arg, dataDir, ".inv")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	inv, err := domain.ParseInventory(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	var w io.Writer = os.Stdout
	if out != "" && out != "-" {
		outFile, err := os.Create(out)
		if err != nil {
			return err
		}
		defer outFile.Close()
		w = outFile
	}

	return domain.BuildFeatureCollection(inv).Encode(w, pretty)
}
