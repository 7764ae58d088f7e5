package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/adithyanak/fuelbook/internal/daterange"
)

// theme holds every style the screens render with, built once per palette so
// a toggle swaps the whole set atomically.
type theme struct {
	dark bool

	Title     lipgloss.Style
	Frame     lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Hint      lipgloss.Style

	TableHeader lipgloss.Style
	Row         lipgloss.Style
	RowCursor   lipgloss.Style
	Totals      lipgloss.Style

	Label    lipgloss.Style
	Value    lipgloss.Style
	Focused  lipgloss.Style
	ErrText  lipgloss.Style
	OKText   lipgloss.Style
	Muted    lipgloss.Style
	Bar      lipgloss.Style
	BarLabel lipgloss.Style

	Dialog lipgloss.Style
	Badge  lipgloss.Style
}

func darkTheme() theme {
	return theme{
		dark:      true,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F47A60")),
		Frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#F47A60")).Padding(1, 2),
		Nav:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		NavActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A")).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")),
		RowCursor:   lipgloss.NewStyle().Reverse(true),
		Totals:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")).Bold(true),

		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A")).Bold(true),
		ErrText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B")),
		OKText:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Bar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6CBFE6")),
		BarLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#D4CDE9")),

		Dialog: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FFD54A")).Padding(1, 2),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(1, 3),
	}
}

func lightTheme() theme {
	return theme{
		dark:      false,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C2410C")),
		Frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#C2410C")).Padding(1, 2),
		Nav:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		NavActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309")).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1D4ED8")),
		Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")),
		RowCursor:   lipgloss.NewStyle().Reverse(true),
		Totals:      lipgloss.NewStyle().Foreground(lipgloss.Color("#15803D")).Bold(true),

		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1D4ED8")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309")).Bold(true),
		ErrText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#B91C1C")),
		OKText:   lipgloss.NewStyle().Foreground(lipgloss.Color("#15803D")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Bar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0E7490")),
		BarLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),

		Dialog: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#B45309")).Padding(1, 2),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(1, 3),
	}
}

func themeFor(dark bool) theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}

func (t theme) pickerStyles() daterange.Styles {
	s := daterange.DefaultStyles()
	if !t.dark {
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1D4ED8"))
		s.Day = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937"))
		s.Endpoint = lipgloss.NewStyle().Background(lipgloss.Color("#1D4ED8")).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
		s.InRange = lipgloss.NewStyle().Background(lipgloss.Color("#BFDBFE")).Foreground(lipgloss.Color("#1E3A5F"))
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	}
	return s
}
