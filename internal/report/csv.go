package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
)

// ErrBadHeader is returned when a CSV does not carry the exported columns.
var ErrBadHeader = errors.New("unexpected report header")

// WriteCSV writes one header line and one line per row.
func WriteCSV(w io.Writer, rows []engine.RowResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			record[i] = c.format(r)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", r.Label, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a WriteCSV export. Values come back at export precision.
func ReadCSV(r io.Reader) ([]engine.RowResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(header, Headers()) {
		return nil, fmt.Errorf("%w: %s", ErrBadHeader, strings.Join(header, ","))
	}
	cr.FieldsPerRecord = len(columns)

	var rows []engine.RowResult
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func parseRow(rec []string) (engine.RowResult, error) {
	cells := make(map[string]string, len(columns))
	for i, c := range columns {
		cells[c.header] = rec[i]
	}

	var firstErr error
	num := func(header string) float64 {
		d, err := decimal.NewFromString(cells[header])
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %s: %w", header, err)
		}
		return d.InexactFloat64()
	}
	action := func(header string) engine.Action {
		a, err := engine.ParseAction(cells[header])
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %s: %w", header, err)
		}
		return a
	}

	category, err := greenops.ParseCategory(cells["category"])
	if err != nil {
		return engine.RowResult{}, err
	}

	row := engine.RowResult{
		Label:            cells["label"],
		Category:         category,
		Quantity:         int(num("quantity")),
		AnnualKWh:        num("annual_kwh"),
		UsageCO2Kg:       num("usage_co2_kg"),
		FabricationCO2Kg: num("fabrication_co2_kg"),
		EnergyCost:       num("energy_cost_eur"),
		CarbonCost:       num("carbon_cost_eur"),
		TCOKeep:          num("tco_keep_eur"),
		TCOBuy:           num("tco_buy_eur"),
		TCOLease:         num("tco_lease_eur"),
		OrgCostDesigner:  num("org_cost_designer_eur"),
		OrgCostOffice:    num("org_cost_office_eur"),
		Action:           action("action"),
		Votes: engine.VoteDetail{
			Financial:      action("vote_financial"),
			Ecological:     action("vote_ecological"),
			Organizational: action("vote_organizational"),
		},
	}
	if firstErr != nil {
		return engine.RowResult{}, firstErr
	}
	return row, nil
}
