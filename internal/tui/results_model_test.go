package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenroi/internal/engine"
)

func testReport(t *testing.T) *engine.Report {
	t.Helper()
	a := engine.DefaultAssumptions()
	records := []engine.EquipmentRecord{
		{Label: "Ecran Dell 27", Quantity: 10, LifespanMonths: 60, UnitPrice: 250},
		{Label: "MacBook Pro", Quantity: 2, LifespanMonths: 48, UnitPrice: 2400, LeaseMonthlyFee: 60},
		{Label: "iPhone 13", Quantity: 5, LifespanMonths: 36, UnitPrice: 800, LeaseMonthlyFee: 1},
	}
	rows := make([]engine.RowResult, len(records))
	for i, rec := range records {
		rows[i] = engine.EvaluateRow(rec, a, nil)
	}
	return &engine.Report{Rows: rows, Summary: engine.Aggregate(rows), Assumptions: a}
}

func key(s string) tea.KeyMsg {
	switch s {
	case keyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case keyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case keyCtrlC:
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m ResultsModel, msg tea.Msg) (ResultsModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ResultsModel)
	require.True(t, ok)
	return rm, cmd
}

func TestNewResultsModel(t *testing.T) {
	rep := testReport(t)
	m := NewResultsModel(rep, nil)

	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.Rows(), 3)
	assert.Nil(t, m.Init())

	// Default order is fleet TCO, descending.
	for i := 1; i < len(m.Rows()); i++ {
		assert.GreaterOrEqual(t, fleetTCO(m.Rows()[i-1]), fleetTCO(m.Rows()[i]))
	}
	// The report itself is not reordered.
	assert.Equal(t, "Ecran Dell 27", rep.Rows[0].Label)
}

func TestResultsModel_StateTransitions(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)

	m, _ = update(t, m, key(keyEnter))
	assert.Equal(t, ViewStateDetail, m.State())
	assert.Contains(t, m.View(), "Recommendation:")

	m, _ = update(t, m, key(keyEsc))
	assert.Equal(t, ViewStateList, m.State())

	m, cmd := update(t, m, key(keyQuit))
	assert.Equal(t, ViewStateQuitting, m.State())
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestResultsModel_DetailQuit(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)
	m, _ = update(t, m, key(keyEnter))
	m, cmd := update(t, m, key(keyCtrlC))
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.NotNil(t, cmd)
}

func TestResultsModel_Filter(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)

	m, _ = update(t, m, key(keySlash))
	for _, r := range "macbook" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = update(t, m, key(keyEnter))

	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "MacBook Pro", m.Rows()[0].Label)
	assert.Equal(t, 2, m.summary.Units)

	// Esc in the list clears the filter.
	m, _ = update(t, m, key(keyEsc))
	assert.Len(t, m.Rows(), 3)
	assert.Equal(t, 17, m.summary.Units)
}

func TestResultsModel_FilterByCategory(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)
	m.applyFilter("smartphone")
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "iPhone 13", m.Rows()[0].Label)
}

func TestResultsModel_CycleSort(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)
	assert.Equal(t, SortByFleetTCO, m.sortBy)

	m, _ = update(t, m, key(keyS))
	assert.Equal(t, SortByCO2, m.sortBy)

	m, _ = update(t, m, key(keyS))
	assert.Equal(t, SortByLabel, m.sortBy)
	labels := []string{m.Rows()[0].Label, m.Rows()[1].Label, m.Rows()[2].Label}
	assert.Equal(t, []string{"Ecran Dell 27", "iPhone 13", "MacBook Pro"}, labels)

	m, _ = update(t, m, key(keyS))
	assert.Equal(t, SortByAction, m.sortBy)

	m, _ = update(t, m, key(keyS))
	assert.Equal(t, SortByFleetTCO, m.sortBy)
}

func TestResultsModel_WindowResize(t *testing.T) {
	m := NewResultsModel(testReport(t), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, 200, m.width)
	assert.Equal(t, 50, m.height)
}

func TestResultsModel_ListView(t *testing.T) {
	cloud := engine.NewCloudCarbon("carbon_kg", 1200, engine.DefaultAssumptions())
	m := NewResultsModel(testReport(t), &cloud)

	view := m.View()
	assert.Contains(t, view, "GREEN ROI")
	assert.Contains(t, view, "3 lines, 17 units")
	assert.Contains(t, view, "cloud 1,200.0 kg CO2e")
	assert.Contains(t, view, "Sort (fleet tco)")
}

func TestResultsModel_EmptyReport(t *testing.T) {
	rep := &engine.Report{Summary: engine.Aggregate(nil), Assumptions: engine.DefaultAssumptions()}
	m := NewResultsModel(rep, nil)

	m, _ = update(t, m, key(keyEnter))
	assert.Equal(t, ViewStateList, m.State())
	assert.Contains(t, m.View(), "0 lines, 0 units")
}

func TestSortField_String(t *testing.T) {
	assert.Equal(t, "fleet tco", SortByFleetTCO.String())
	assert.Equal(t, "co2", SortByCO2.String())
	assert.Equal(t, "label", SortByLabel.String())
	assert.Equal(t, "action", SortByAction.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "écran 2...", truncate("écran 27 pouces", 10))
}
