package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
)

// Column widths of the per-action comparison.
const (
	detailColAction = 8
	detailColMoney  = 14
	detailColCO2    = 14
	detailColVotes  = 40

	// detailHeaderLines is the header row plus its bottom border.
	detailHeaderLines = 2
)

// RenderRowDetail shows how one row's recommendation was reached: the three
// criteria per action, which action won each, and the weighted tally.
func RenderRowDetail(r engine.RowResult, a engine.Assumptions) string {
	tco := engine.Scores{Keep: r.TCOKeep, Buy: r.TCOBuy, Lease: r.TCOLease}
	eco := engine.Uniform(r.AnnualCO2Kg())
	org := a.OrgScores()
	rec := engine.Recommend(tco, eco, org, a.Weights)

	columns := []table.Column{
		{Title: "Action", Width: detailColAction},
		{Title: "TCO €/yr", Width: detailColMoney},
		{Title: "CO2 kg/yr", Width: detailColCO2},
		{Title: "Org €/yr", Width: detailColMoney},
		{Title: "Votes", Width: detailColVotes},
	}
	rows := make([]table.Row, 0, len(engine.AllActions()))
	for _, act := range engine.AllActions() {
		rows = append(rows, table.Row{
			string(act),
			greenops.FormatFloat(tco.Get(act), 2),
			greenops.FormatFloat(eco.Get(act), 1),
			greenops.FormatFloat(org.Get(act), 0),
			votesFor(act, rec.Votes, a.Weights, rec.Tally.Get(act)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+detailHeaderLines),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	var sb strings.Builder
	_, _ = sb.WriteString(TitleStyle.Render(r.Label) + "\n\n")
	_, _ = sb.WriteString(detailLine("Category", r.Category.String()))
	_, _ = sb.WriteString(detailLine("Quantity", greenops.FormatNumber(int64(r.Quantity))))
	_, _ = sb.WriteString(detailLine("Energy", greenops.FormatFloat(r.AnnualKWh, 1)+" kWh/yr"))
	_, _ = sb.WriteString(detailLine("Usage CO2", greenops.FormatKg(r.UsageCO2Kg)))
	_, _ = sb.WriteString(detailLine("Fabrication CO2", greenops.FormatKg(r.FabricationCO2Kg)))
	_, _ = sb.WriteString(detailLine("Energy cost", greenops.FormatEuro(r.EnergyCost)))
	_, _ = sb.WriteString(detailLine("Carbon cost", greenops.FormatEuro(r.CarbonCost)))
	_, _ = sb.WriteString(detailLine("Office org cost", greenops.FormatEuro(r.OrgCostOffice)))
	if len(r.Defaulted) > 0 {
		_, _ = sb.WriteString(detailLine("Defaulted", strings.Join(r.Defaulted, ", ")))
	}
	_, _ = sb.WriteString("\n" + t.View() + "\n\n")
	_, _ = sb.WriteString("Recommendation: " + ActionStyle(r.Action).Render(string(r.Action)) + "\n")
	_, _ = sb.WriteString(HelpStyle.Render("\n[Esc] Back to list  [q] Quit"))

	return sb.String()
}

func detailLine(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-16s", label)) + " " + value + "\n"
}

// votesFor lists the criteria won by act and its total weight.
func votesFor(act engine.Action, v engine.VoteDetail, w engine.Weights, total float64) string {
	var won []string
	if v.Financial == act {
		won = append(won, fmt.Sprintf("fin %.2f", w.Financial))
	}
	if v.Ecological == act {
		won = append(won, fmt.Sprintf("eco %.2f", w.Ecological))
	}
	if v.Organizational == act {
		won = append(won, fmt.Sprintf("org %.2f", w.Organizational))
	}
	if len(won) == 0 {
		return "-"
	}
	return fmt.Sprintf("%s = %.2f", strings.Join(won, " + "), total)
}
