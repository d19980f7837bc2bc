package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/greenroi/internal/logging"
)

// CloudEmissions is the total of the carbon column of a provider export.
type CloudEmissions struct {
	Column  string  `json:"column"`
	TotalKg float64 `json:"total_kg"`

	// Rows counts summed cells; Skipped counts unparseable ones.
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// CarbonColumn returns the index of the first header containing both "kg"
// and "co2" (case-insensitive, "CO₂" accepted).
func CarbonColumn(header []string) (int, bool) {
	for i, h := range header {
		n := strings.ToLower(strings.ReplaceAll(h, "₂", "2"))
		if strings.Contains(n, "kg") && strings.Contains(n, "co2") {
			return i, true
		}
	}
	return 0, false
}

// ReadCloudEmissions sums the carbon column of a CSV export (AWS, Azure,
// Alibaba and similar). Empty or unparseable cells are skipped.
func ReadCloudEmissions(r io.Reader) (CloudEmissions, error) {
	rows, err := readCSVRows(r)
	if err != nil {
		return CloudEmissions{}, err
	}
	return sumCarbon(rows)
}

// LoadCloudFile reads a CSV or XLSX cloud export from path.
func LoadCloudFile(ctx context.Context, path string) (CloudEmissions, error) {
	f, err := os.Open(path)
	if err != nil {
		return CloudEmissions{}, fmt.Errorf("opening cloud export: %w", err)
	}
	defer f.Close()

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCSV, ".txt":
		rows, err = readCSVRows(f)
	case ExtXLSX, ExtXLSM:
		rows, err = readXLSXRows(f, "")
	default:
		return CloudEmissions{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return CloudEmissions{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	ce, err := sumCarbon(rows)
	if err != nil {
		return CloudEmissions{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Str("column", ce.Column).
		Float64("total_kg", ce.TotalKg).
		Int("skipped", ce.Skipped).
		Msg("cloud emissions loaded")
	return ce, nil
}

func sumCarbon(rows [][]string) (CloudEmissions, error) {
	if len(rows) == 0 {
		return CloudEmissions{}, ErrNoRows
	}
	idx, ok := CarbonColumn(rows[0])
	if !ok {
		return CloudEmissions{}, ErrNoCarbonColumn
	}

	ce := CloudEmissions{Column: strings.TrimSpace(rows[0][idx])}
	for _, row := range rows[1:] {
		if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			continue
		}
		v, defaulted := ParseFloat(row[idx], 0)
		if defaulted {
			ce.Skipped++
			continue
		}
		ce.TotalKg += v
		ce.Rows++
	}
	return ce, nil
}
