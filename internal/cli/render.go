package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/greenroi/internal/cli/pagination"
	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/report"
	"github.com/rshade/greenroi/internal/tui"
)

// analyzeView is what analyze prints. Summary always covers every row,
// whatever window Rows holds.
type analyzeView struct {
	Rows        []engine.RowResult  `json:"rows"`
	Summary     engine.FleetSummary `json:"summary"`
	Assumptions engine.Assumptions  `json:"assumptions"`
	Fabrication string              `json:"fabrication_source"`
	Cloud       *engine.CloudCarbon `json:"cloud,omitempty"`
	Pagination  *pagination.Meta    `json:"pagination,omitempty"`
}

// render writes v in format.
func render(w io.Writer, format string, v analyzeView) error {
	switch format {
	case outputJSON:
		return renderJSON(w, v)
	case outputNDJSON:
		return renderNDJSON(w, v.Rows)
	case outputCSV:
		return report.WriteCSV(w, v.Rows)
	case outputTable, "":
		return renderTable(w, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderJSON(w io.Writer, v analyzeView) error {
	return renderJSONValue(w, v)
}

func renderJSONValue(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderNDJSON writes one row per line.
func renderNDJSON(w io.Writer, rows []engine.RowResult) error {
	enc := json.NewEncoder(w)
	for i, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
	}
	return nil
}

// renderTable prints the row table followed by the fleet summary box.
func renderTable(w io.Writer, v analyzeView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "LABEL\tCATEGORY\tQTY\tKWH/YR\tCO2 KG/YR\tKEEP €\tBUY €\tLEASE €\tACTION\tFIN/ECO/ORG\t")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s/%s/%s\t\n",
			r.Label,
			r.Category,
			r.Quantity,
			greenops.FormatFloat(r.AnnualKWh, 1),
			greenops.FormatFloat(r.AnnualCO2Kg(), 1),
			greenops.FormatFloat(r.TCOKeep, 2),
			greenops.FormatFloat(r.TCOBuy, 2),
			greenops.FormatFloat(r.TCOLease, 2),
			r.Action,
			r.Votes.Financial, r.Votes.Ecological, r.Votes.Organizational,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if v.Pagination != nil {
		fmt.Fprintf(w, "\nPage %d of %d (%d rows)\n",
			v.Pagination.CurrentPage, v.Pagination.TotalPages, v.Pagination.TotalItems)
	}
	fmt.Fprintf(w, "\nEmbodied CO2 source: %s\n", v.Fabrication)
	fmt.Fprintln(w, tui.RenderFleetSummary(v.Summary, v.Cloud))
	return nil
}
