// Package tui renders evaluated inventories in the terminal: lipgloss
// summaries for plain output and a Bubble Tea browser for --interactive.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/greenroi/internal/engine"
)

// ViewState is the screen a model is showing.
type ViewState int

// View states.
const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
)

// Layout defaults used before the first WindowSizeMsg.
const (
	defaultWidth         = 120
	defaultHeight        = 30
	minHeight            = 5
	summaryHeight        = 8
	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// Palette.
//
//nolint:gochecknoglobals // Styles are immutable after init.
var (
	ColorKeep   = lipgloss.Color("39")
	ColorBuy    = lipgloss.Color("214")
	ColorLease  = lipgloss.Color("141")
	ColorMuted  = lipgloss.Color("240")
	ColorAccent = lipgloss.Color("42")

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle = lipgloss.NewStyle().Bold(true)
	HelpStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)
)

// ActionStyle colors an action name.
func ActionStyle(a engine.Action) lipgloss.Style {
	switch a {
	case engine.ActionBuy:
		return lipgloss.NewStyle().Foreground(ColorBuy).Bold(true)
	case engine.ActionLease:
		return lipgloss.NewStyle().Foreground(ColorLease).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorKeep).Bold(true)
	}
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
