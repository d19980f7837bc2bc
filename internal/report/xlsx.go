package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/greenroi/internal/engine"
)

// Worksheet names.
const (
	SheetResults = "Results"
	SheetFleet   = "Fleet"
)

// FleetMetric is one line of the Fleet worksheet.
type FleetMetric struct {
	Name  string
	Value float64
}

// FleetMetrics lists the fleet KPIs in display order. cloud may be nil.
func FleetMetrics(s engine.FleetSummary, cloud *engine.CloudCarbon) []FleetMetric {
	metrics := []FleetMetric{
		{"rows", float64(s.Rows)},
		{"units", float64(s.Units)},
		{"total_kwh", s.TotalKWh},
		{"total_energy_cost_eur", s.TotalEnergyCost},
		{"total_carbon_cost_eur", s.TotalCarbonCost},
		{"total_co2_kg", s.TotalCO2Kg},
		{"total_tco_keep_eur", s.TotalTCOKeep},
		{"total_tco_buy_eur", s.TotalTCOBuy},
		{"total_tco_lease_eur", s.TotalTCOLease},
		{"total_tco_recommended_eur", s.TotalTCORecommended},
	}
	for _, a := range engine.AllActions() {
		metrics = append(metrics, FleetMetric{"rows_" + string(a), float64(s.ActionCounts[a])})
	}
	if cloud != nil {
		metrics = append(metrics,
			FleetMetric{"cloud_co2_kg", cloud.TotalKg},
			FleetMetric{"cloud_carbon_cost_eur", cloud.CarbonCost},
		)
	}
	return metrics
}

// WriteXLSX writes a workbook with a Results sheet (one row per result,
// same columns as WriteCSV) and a Fleet sheet of totals.
func WriteXLSX(w io.Writer, rep *engine.Report, cloud *engine.CloudCarbon) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return fmt.Errorf("naming results sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetFleet); err != nil {
		return fmt.Errorf("creating fleet sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeResults(f, rep.Rows, bold); err != nil {
		return err
	}
	if err := writeFleet(f, FleetMetrics(rep.Summary, cloud), bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, rows []engine.RowResult, headerStyle int) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	if err := f.SetSheetRow(SheetResults, "A1", &header); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetResults, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling results header: %w", err)
	}

	for i, r := range rows {
		values := make([]any, len(columns))
		for j, c := range columns {
			values[j] = c.value(r)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetResults, cell, &values); err != nil {
			return fmt.Errorf("writing result %q: %w", r.Label, err)
		}
	}
	return f.SetPanes(SheetResults, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeFleet(f *excelize.File, metrics []FleetMetric, headerStyle int) error {
	if err := f.SetSheetRow(SheetFleet, "A1", &[]any{"metric", "value"}); err != nil {
		return fmt.Errorf("writing fleet header: %w", err)
	}
	if err := f.SetCellStyle(SheetFleet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling fleet header: %w", err)
	}
	for i, m := range metrics {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{m.Name, Round(m.Value, DefaultPlaces).InexactFloat64()}
		if err := f.SetSheetRow(SheetFleet, cell, &row); err != nil {
			return fmt.Errorf("writing fleet metric %s: %w", m.Name, err)
		}
	}
	return nil
}
