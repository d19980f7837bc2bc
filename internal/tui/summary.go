package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
)

// kpi is one label/value line of the fleet box.
type kpi struct {
	label string
	value string
}

// RenderFleetSummary renders the fleet totals as a bordered KPI box.
// cloud is optional.
func RenderFleetSummary(s engine.FleetSummary, cloud *engine.CloudCarbon) string {
	kpis := []kpi{
		{"Lines / units", fmt.Sprintf("%s / %s", greenops.FormatNumber(int64(s.Rows)), greenops.FormatNumber(int64(s.Units)))},
		{"Energy", greenops.FormatFloat(s.TotalKWh, 1) + " kWh/yr"},
		{"Footprint", greenops.FormatKg(s.TotalCO2Kg) + "/yr"},
		{"Energy cost", greenops.FormatEuro(s.TotalEnergyCost)},
		{"Carbon cost", greenops.FormatEuro(s.TotalCarbonCost)},
		{"TCO keep", greenops.FormatEuro(s.TotalTCOKeep)},
		{"TCO buy", greenops.FormatEuro(s.TotalTCOBuy)},
		{"TCO lease", greenops.FormatEuro(s.TotalTCOLease)},
		{"TCO recommended", greenops.FormatEuro(s.TotalTCORecommended)},
		{"Savings vs keep", greenops.FormatEuro(s.Savings())},
	}
	if cloud != nil {
		kpis = append(kpis,
			kpi{"Cloud footprint", greenops.FormatKg(cloud.TotalKg)},
			kpi{"Cloud carbon cost", greenops.FormatEuro(cloud.CarbonCost)},
		)
	}

	width := 0
	for _, k := range kpis {
		width = max(width, len(k.label))
	}

	lines := make([]string, 0, len(kpis)+3)
	lines = append(lines, TitleStyle.Render("FLEET SUMMARY"))
	for _, k := range kpis {
		lines = append(lines, LabelStyle.Render(fmt.Sprintf("%-*s", width, k.label))+"  "+ValueStyle.Render(k.value))
	}
	lines = append(lines, "", renderActionCounts(s))
	if eq, err := greenops.Calculate(s.TotalCO2Kg); err == nil && !eq.IsEmpty {
		lines = append(lines, LabelStyle.Render(eq.DisplayText))
	}

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderActionCounts(s engine.FleetSummary) string {
	parts := make([]string, 0, len(engine.AllActions()))
	for _, a := range engine.AllActions() {
		parts = append(parts, ActionStyle(a).Render(string(a))+fmt.Sprintf(" %d", s.ActionCounts[a]))
	}
	return strings.Join(parts, "   ")
}
