package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/greenroi/internal/engine"
)

// rowKeys maps each sort field to a comparable key. Numeric fields use num,
// text fields use text.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var rowKeys = map[string]struct {
	num  func(engine.RowResult) float64
	text func(engine.RowResult) string
}{
	"label":     {text: func(r engine.RowResult) string { return strings.ToLower(r.Label) }},
	"category":  {text: func(r engine.RowResult) string { return r.Category.String() }},
	"action":    {text: func(r engine.RowResult) string { return string(r.Action) }},
	"quantity":  {num: func(r engine.RowResult) float64 { return float64(r.Quantity) }},
	"kwh":       {num: func(r engine.RowResult) float64 { return r.AnnualKWh }},
	"co2":       {num: func(r engine.RowResult) float64 { return r.AnnualCO2Kg() }},
	"tco_keep":  {num: func(r engine.RowResult) float64 { return r.TCOKeep }},
	"tco_buy":   {num: func(r engine.RowResult) float64 { return r.TCOBuy }},
	"tco_lease": {num: func(r engine.RowResult) float64 { return r.TCOLease }},
	"tco":       {num: func(r engine.RowResult) float64 { return r.TCO(r.Action) }},
	"fleet_tco": {num: func(r engine.RowResult) float64 { return r.TCO(r.Action) * float64(r.Quantity) }},
}

// SortFields lists the accepted --sort fields.
func SortFields() []string {
	fields := make([]string, 0, len(rowKeys))
	for f := range rowKeys {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// SortRows returns a stably sorted copy of rows. An empty expression returns
// rows unchanged.
func SortRows(rows []engine.RowResult, expr string) ([]engine.RowResult, error) {
	if expr == "" {
		return rows, nil
	}
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	key, ok := rowKeys[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}

	sorted := make([]engine.RowResult, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		if key.num != nil {
			return key.num(sorted[i]) < key.num(sorted[j])
		}
		return key.text(sorted[i]) < key.text(sorted[j])
	})
	return sorted, nil
}
