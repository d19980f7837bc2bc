package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
)

// SortField is the column the results list is ordered by.
type SortField int

// Sort fields, cycled with the s key.
const (
	SortByFleetTCO SortField = iota
	SortByCO2
	SortByLabel
	SortByAction
	numSortFields
)

// String returns the sort field name shown in the help line.
func (f SortField) String() string {
	switch f {
	case SortByCO2:
		return "co2"
	case SortByLabel:
		return "label"
	case SortByAction:
		return "action"
	default:
		return "fleet tco"
	}
}

// ResultsModel is the Bubble Tea model behind analyze --interactive.
type ResultsModel struct {
	state ViewState

	allRows []engine.RowResult
	rows    []engine.RowResult

	assumptions engine.Assumptions
	summary     engine.FleetSummary
	cloud       *engine.CloudCarbon

	table      table.Model
	textInput  textinput.Model
	showFilter bool
	sortBy     SortField
	selected   int

	width  int
	height int
}

// NewResultsModel builds a model over an evaluated report. cloud is optional.
func NewResultsModel(rep *engine.Report, cloud *engine.CloudCarbon) ResultsModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by label, category or action..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	rows := make([]engine.RowResult, len(rep.Rows))
	copy(rows, rep.Rows)

	m := ResultsModel{
		state:       ViewStateList,
		allRows:     rep.Rows,
		rows:        rows,
		assumptions: rep.Assumptions,
		summary:     rep.Summary,
		cloud:       cloud,
		textInput:   ti,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.refreshTable()
	return m
}

// Init implements tea.Model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m ResultsModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m ResultsModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if len(m.rows) > 0 {
			m.selected = m.table.Cursor()
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.sortBy = (m.sortBy + 1) % numSortFields
		m.refreshTable()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

func (m ResultsModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

// applyFilter keeps rows whose label, category or action contains text.
func (m *ResultsModel) applyFilter(text string) {
	query := strings.ToLower(strings.TrimSpace(text))
	filtered := make([]engine.RowResult, 0, len(m.allRows))
	for _, r := range m.allRows {
		if query == "" ||
			strings.Contains(strings.ToLower(r.Label), query) ||
			strings.Contains(r.Category.String(), query) ||
			strings.Contains(strings.ToLower(string(r.Action)), query) {
			filtered = append(filtered, r)
		}
	}
	m.rows = filtered
	m.summary = engine.Aggregate(m.rows)
	m.refreshTable()
}

// refreshTable re-sorts the visible rows and rebuilds the table.
func (m *ResultsModel) refreshTable() {
	rows := m.rows
	sort.SliceStable(rows, func(i, j int) bool {
		switch m.sortBy {
		case SortByCO2:
			return rows[i].AnnualCO2Kg()*float64(rows[i].Quantity) > rows[j].AnnualCO2Kg()*float64(rows[j].Quantity)
		case SortByLabel:
			return strings.ToLower(rows[i].Label) < strings.ToLower(rows[j].Label)
		case SortByAction:
			return rows[i].Action < rows[j].Action
		default:
			return fleetTCO(rows[i]) > fleetTCO(rows[j])
		}
	})
	m.rebuildTable()
}

func fleetTCO(r engine.RowResult) float64 {
	return r.TCO(r.Action) * float64(r.Quantity)
}

func (m *ResultsModel) rebuildTable() {
	columns := []table.Column{
		{Title: "Label", Width: 28},     //nolint:mnd // Column width.
		{Title: "Category", Width: 14},  //nolint:mnd // Column width.
		{Title: "Qty", Width: 5},        //nolint:mnd // Column width.
		{Title: "CO2 kg/yr", Width: 10}, //nolint:mnd // Column width.
		{Title: "Keep €", Width: 10},    //nolint:mnd // Column width.
		{Title: "Buy €", Width: 10},     //nolint:mnd // Column width.
		{Title: "Lease €", Width: 10},   //nolint:mnd // Column width.
		{Title: "Action", Width: 6},     //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			truncate(r.Label, 28), //nolint:mnd // Matches the column width.
			r.Category.String(),
			greenops.FormatNumber(int64(r.Quantity)),
			greenops.FormatFloat(r.AnnualCO2Kg(), 1),
			greenops.FormatFloat(r.TCOKeep, 2),
			greenops.FormatFloat(r.TCOBuy, 2),
			greenops.FormatFloat(r.TCOLease, 2),
			string(r.Action),
		}
	}

	height := m.height - summaryHeight - 1
	if height < minHeight {
		height = minHeight
	}

	cursor := m.table.Cursor()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.state == ViewStateList),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	if cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
	m.table = t
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Rows returns the visible rows in display order.
func (m ResultsModel) Rows() []engine.RowResult {
	return m.rows
}

// State returns the current view state.
func (m ResultsModel) State() ViewState {
	return m.state
}

// View implements tea.Model.
func (m ResultsModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		if m.selected >= 0 && m.selected < len(m.rows) {
			return RenderRowDetail(m.rows[m.selected], m.assumptions)
		}
		return "no row selected"
	default:
		return m.renderList()
	}
}

func (m ResultsModel) renderList() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TitleStyle.Render("GREEN ROI"),
		"  ",
		LabelStyle.Render(fmt.Sprintf("%d lines, %d units, TCO %s, savings %s",
			m.summary.Rows, m.summary.Units,
			greenops.FormatEuro(m.summary.TotalTCORecommended),
			greenops.FormatEuro(m.summary.Savings()))),
	)
	if m.cloud != nil {
		header += LabelStyle.Render(fmt.Sprintf("  cloud %s", greenops.FormatKg(m.cloud.TotalKg)))
	}

	help := HelpStyle.Render(fmt.Sprintf(
		"[/] Filter  [s] Sort (%s)  [↑↓/jk] Navigate  [Enter] Votes  [q] Quit", m.sortBy))

	parts := []string{header, "", m.table.View()}
	if m.showFilter {
		parts = append(parts, "Filter: "+m.textInput.View())
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run starts the interactive browser and blocks until the user quits.
func Run(rep *engine.Report, cloud *engine.CloudCarbon) error {
	p := tea.NewProgram(NewResultsModel(rep, cloud), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive view: %w", err)
	}
	return nil
}
