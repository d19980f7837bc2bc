package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenroi/internal/engine"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "valid sort", params: Params{Sort: "tco_keep:desc"}},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: ErrInvalidLimit},
		{name: "limit too large", params: Params{Limit: MaxLimit + 1}, wantErr: ErrInvalidLimit},
		{name: "negative offset", params: Params{Offset: -1}, wantErr: ErrNegativeOffset},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrNegativePage},
		{name: "page size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
		{name: "mixed modes", params: Params{Page: 1, PageSize: 5, Offset: 3}, wantErr: ErrMixedModes},
		{name: "page size without page", params: Params{PageSize: 5}, wantErr: ErrPageSizeNoPage},
		{name: "page without page size", params: Params{Page: 2}, wantErr: ErrPageNoPageSize},
		{name: "bad sort order", params: Params{Sort: "label:up"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{expr: "label", wantField: "label", wantOrder: SortOrderAsc},
		{expr: "tco_keep:desc", wantField: "tco_keep", wantOrder: SortOrderDesc},
		{expr: " co2 : ASC ", wantField: "co2", wantOrder: SortOrderAsc},
		{expr: "", wantErr: ErrEmptySortField},
		{expr: ":desc", wantErr: ErrEmptySortField},
		{expr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{expr: "label:sideways", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := ParseSort(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name   string
		params Params
		want   []int
	}{
		{name: "disabled", params: Params{}, want: items},
		{name: "limit", params: Params{Limit: 3}, want: []int{0, 1, 2}},
		{name: "offset and limit", params: Params{Offset: 8, Limit: 5}, want: []int{8, 9}},
		{name: "offset past end", params: Params{Offset: 10}, want: []int{}},
		{name: "second page", params: Params{Page: 2, PageSize: 4}, want: []int{4, 5, 6, 7}},
		{name: "page past end clamps", params: Params{Page: 9, PageSize: 4}, want: []int{8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.params, items))
		})
	}

	assert.Empty(t, Apply(Params{Limit: 2}, []int{}))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PageSize: 4}, 10)
	assert.Equal(t, Meta{
		CurrentPage: 2, PageSize: 4, TotalPages: 3, TotalItems: 10,
		HasPrevious: true, HasNext: true,
	}, meta)

	meta = NewMeta(Params{Offset: 6, Limit: 3}, 7)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)

	meta = NewMeta(Params{}, 5)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasPrevious)
}

func TestSortRows(t *testing.T) {
	rows := []engine.RowResult{
		{Label: "b laptop", TCOKeep: 30, Quantity: 1, Action: engine.ActionKeep},
		{Label: "A screen", TCOKeep: 10, Quantity: 5, Action: engine.ActionKeep},
		{Label: "c phone", TCOKeep: 20, Quantity: 2, Action: engine.ActionKeep},
	}

	labels := func(rs []engine.RowResult) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Label
		}
		return out
	}

	sorted, err := SortRows(rows, "label")
	require.NoError(t, err)
	assert.Equal(t, []string{"A screen", "b laptop", "c phone"}, labels(sorted))

	sorted, err = SortRows(rows, "tco_keep:desc")
	require.NoError(t, err)
	assert.Equal(t, []string{"b laptop", "c phone", "A screen"}, labels(sorted))

	sorted, err = SortRows(rows, "fleet_tco:desc")
	require.NoError(t, err)
	assert.Equal(t, []string{"A screen", "c phone", "b laptop"}, labels(sorted))

	// Input order is untouched.
	assert.Equal(t, "b laptop", rows[0].Label)

	unchanged, err := SortRows(rows, "")
	require.NoError(t, err)
	assert.Equal(t, rows, unchanged)

	_, err = SortRows(rows, "color")
	require.ErrorIs(t, err, ErrInvalidSortField)
}

func TestSortFields(t *testing.T) {
	fields := SortFields()
	assert.Contains(t, fields, "label")
	assert.Contains(t, fields, "tco_lease")
	assert.IsIncreasing(t, fields)
}
