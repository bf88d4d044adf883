// Command normalize reads a raw spreadsheet export (CSV or Google
// Visualization JSON) from a file and writes the normalized observations as
// JSON, using the same decode/normalize path as the service. Useful for
// generating test fixtures and for inspecting how a sheet's cells actually
// parse.
//
// Usage:
//
//	go run ./cmd/normalize -in export.csv -out observations.json
//	go run ./cmd/normalize -in export.csv -require-date
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/ice-report-service/internal/adapter/sheets"
	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// record is the fixture shape: the canonical fields plus the thickness in
// both units, derived where the sheet only carried one.
type record struct {
	DateKey     string   `json:"date_key,omitempty"`
	Lake        string   `json:"lake,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	ThicknessIn *float64 `json:"thickness_in,omitempty"`
	ThicknessCm *float64 `json:"thickness_cm,omitempty"`
	Info        string   `json:"info,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inPath := flag.String("in", "", "raw export file (CSV or GViz JSON)")
	outPath := flag.String("out", "", "output file (default stdout)")
	requireDate := flag.Bool("require-date", false, "drop observations without a parsed date")
	flag.Parse()

	if *inPath == "" {
		return fmt.Errorf("-in is required")
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	rows, err := sheets.DecodeExport(string(raw))
	if err != nil {
		return fmt.Errorf("decode export: %w", err)
	}

	records := make([]record, 0, len(rows))
	for _, row := range rows {
		obs := domain.Normalize(row)
		if obs.Blank() {
			continue
		}
		if *requireDate && obs.Date == nil {
			continue
		}
		rec := record{
			DateKey:     obs.DateKey,
			Lake:        obs.Lake,
			ThicknessIn: obs.ValueInches(),
			ThicknessCm: obs.ValueCm(),
			Info:        obs.Info,
		}
		if obs.Coords != nil {
			rec.Lat = &obs.Coords.Lat
			rec.Lon = &obs.Coords.Lon
		}
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal observations: %w", err)
	}
	data = append(data, '\n')

	if *outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d observations to %s\n", len(records), *outPath)
	return nil
}
