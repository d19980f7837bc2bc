package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/logging"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtXLSM = ".xlsm"
)

// LoadFile reads an inventory from path, choosing the reader by extension.
// sheet selects the XLSX worksheet; empty means the first one.
func LoadFile(ctx context.Context, path, sheet string) ([]engine.EquipmentRecord, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_inventory").
		Str("path", path).
		Msg("loading inventory")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening inventory: %w", err)
	}
	defer f.Close()

	var records []engine.EquipmentRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCSV, ".txt":
		records, err = ReadCSV(ctx, f)
	case ExtXLSX, ExtXLSM:
		records, err = ReadXLSX(ctx, f, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Int("rows", len(records)).
		Msg("inventory loaded")
	return records, nil
}

// ReadCSV reads a comma or semicolon separated inventory. The separator is
// the one that appears more often in the header line.
func ReadCSV(ctx context.Context, r io.Reader) ([]engine.EquipmentRecord, error) {
	rows, err := readCSVRows(r)
	if err != nil {
		return nil, err
	}
	return buildRecords(ctx, rows)
}

// ReadXLSX reads an inventory worksheet. An empty sheet name selects the
// first worksheet.
func ReadXLSX(ctx context.Context, r io.Reader, sheet string) ([]engine.EquipmentRecord, error) {
	rows, err := readXLSXRows(r, sheet)
	if err != nil {
		return nil, err
	}
	return buildRecords(ctx, rows)
}

func readCSVRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(head)) == 0 {
		return nil, ErrNoRows
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func sniffDelimiter(head []byte) rune {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func readXLSXRows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoRows
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// buildRecords turns a header row plus data rows into records. Blank rows
// are skipped.
func buildRecords(ctx context.Context, rows [][]string) ([]engine.EquipmentRecord, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	cols, err := ResolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	records := make([]engine.EquipmentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := parseRecord(cols, row)
		rec.Line = i + 1
		if len(rec.Defaulted) > 0 {
			log.Debug().
				Ctx(ctx).
				Str("component", "ingest").
				Int("line", rec.Line).
				Strs("defaulted", rec.Defaulted).
				Msg("inventory row uses default values")
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

func parseRecord(cols ColumnMap, row []string) engine.EquipmentRecord {
	rec := engine.EquipmentRecord{Label: cols.Cell(row, FieldLabel)}

	// Optional columns that are absent altogether are not reported.
	intField := func(f Field, def int, positive bool) int {
		v, defaulted := ParseInt(cols.Cell(row, f), def)
		if !defaulted && (v < 0 || (positive && v == 0)) {
			v, defaulted = def, true
		}
		if defaulted && (cols.Has(f) || f == FieldQuantity || f == FieldLifespan) {
			rec.Defaulted = append(rec.Defaulted, string(f))
		}
		return v
	}
	floatField := func(f Field) float64 {
		v, defaulted := ParseFloat(cols.Cell(row, f), 0)
		if !defaulted && v < 0 {
			v, defaulted = 0, true
		}
		if defaulted && cols.Has(f) {
			rec.Defaulted = append(rec.Defaulted, string(f))
		}
		return v
	}
	overrideField := func(f Field) *float64 {
		cell := cols.Cell(row, f)
		if cell == "" {
			return nil
		}
		v, defaulted := ParseFloat(cell, 0)
		if defaulted || v < 0 {
			rec.Defaulted = append(rec.Defaulted, string(f))
			return nil
		}
		return &v
	}

	rec.Quantity = intField(FieldQuantity, engine.DefaultQuantity, false)
	rec.LifespanMonths = intField(FieldLifespan, engine.DefaultLifespanMonths, true)
	rec.UnitPrice = floatField(FieldUnitPrice)
	rec.LeaseMonthlyFee = floatField(FieldLeaseFee)
	rec.MaintenancePerYear = floatField(FieldMaintenance)
	rec.EndOfLifeFee = floatField(FieldEndOfLife)
	rec.LeaseEndFees = floatField(FieldLeaseEnd)
	rec.Power = engine.PowerOverride{
		OnWatts:      overrideField(FieldOnWatts),
		StandbyWatts: overrideField(FieldStandbyWatts),
		OnHours:      overrideField(FieldOnHours),
		StandbyHours: overrideField(FieldStandbyHours),
	}
	return rec
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
