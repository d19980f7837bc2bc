package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/greenroi/internal/engine"
)

// Structural errors.
var (
	ErrNoRows            = errors.New("inventory has no data rows")
	ErrMissingColumns    = errors.New("inventory is missing required columns")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoCarbonColumn    = errors.New("no kg CO2 column found")
)

// Field is a normalized inventory field.
type Field string

// Inventory fields. Only FieldLabel is required.
const (
	FieldLabel        Field = engine.FieldLabel
	FieldQuantity     Field = engine.FieldQuantity
	FieldLifespan     Field = engine.FieldLifespan
	FieldUnitPrice    Field = engine.FieldUnitPrice
	FieldLeaseFee     Field = engine.FieldLeaseFee
	FieldOnWatts      Field = engine.FieldOnWatts
	FieldStandbyWatts Field = engine.FieldStandbyWatts
	FieldOnHours      Field = engine.FieldOnHours
	FieldStandbyHours Field = engine.FieldStandbyHours
	FieldMaintenance  Field = "maintenance_fee_year"
	FieldEndOfLife    Field = "eol_fee"
	FieldLeaseEnd     Field = "lease_end_fees"
)

// fieldSynonyms lists accepted header names per field, in priority order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldSynonyms = []struct {
	field    Field
	synonyms []string
}{
	{FieldLabel, []string{"Equipement", "Equipment", "type"}},
	{FieldQuantity, []string{"Current number of equipment", "count", "Quantité"}},
	{FieldLifespan, []string{"Initial lifespan", "lifespan_months", "Durée de vie (mois)"}},
	{FieldUnitPrice, []string{"Unit price", "unit_price", "Prix unitaire"}},
	{FieldLeaseFee, []string{"lease_fee_month", "Loyer mensuel"}},
	{FieldOnWatts, []string{"on_watts", "Puissance (W)"}},
	{FieldStandbyWatts, []string{"standby_watts", "Veille (W)"}},
	{FieldOnHours, []string{"on_hours", "Heures allumé"}},
	{FieldStandbyHours, []string{"standby_hours", "Heures veille"}},
	{FieldMaintenance, []string{"maintenance_fee_year", "Maintenance annuelle"}},
	{FieldEndOfLife, []string{"eol_fee", "Frais fin de vie"}},
	{FieldLeaseEnd, []string{"lease_end_fees", "Frais fin de leasing"}},
}

// ColumnMap maps each resolved field to its column index.
type ColumnMap map[Field]int

// Has reports whether f was found in the header.
func (m ColumnMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

// Cell returns the trimmed value of f in row, or "" when the field or cell
// is missing.
func (m ColumnMap) Cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ResolveColumns matches header names to fields. For each field the
// synonyms are tried in order, first as exact names and then ignoring case,
// surrounding spaces and repeated inner spaces. The label column is required.
func ResolveColumns(header []string) (ColumnMap, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	m := make(ColumnMap, len(fieldSynonyms))
	for _, fs := range fieldSynonyms {
		if idx, ok := findColumn(header, normalized, fs.synonyms); ok {
			m[fs.field] = idx
		}
	}

	if !m.Has(FieldLabel) {
		return nil, fmt.Errorf("%w: one of %s", ErrMissingColumns, strings.Join(synonymsOf(FieldLabel), ", "))
	}
	return m, nil
}

func findColumn(header, normalized, synonyms []string) (int, bool) {
	for _, name := range synonyms {
		for i, h := range header {
			if h == name {
				return i, true
			}
		}
	}
	for _, name := range synonyms {
		want := normalizeHeader(name)
		for i, h := range normalized {
			if h == want {
				return i, true
			}
		}
	}
	return 0, false
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func synonymsOf(f Field) []string {
	for _, fs := range fieldSynonyms {
		if fs.field == f {
			return fs.synonyms
		}
	}
	return nil
}
