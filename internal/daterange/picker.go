package daterange

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickedMsg is emitted when the picker commits a range. The range is always
// ordered Start <= End.
type PickedMsg struct {
	Range Range
}

// CancelledMsg is emitted when the picker is dismissed without committing.
type CancelledMsg struct{}

// Styles carries the picker's lipgloss styles so the hosting screen can theme
// it for light and dark palettes.
type Styles struct {
	Header   lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Cursor   lipgloss.Style
	Endpoint lipgloss.Style
	InRange  lipgloss.Style
	Today    lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		Weekday:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Day:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")),
		Cursor:   lipgloss.NewStyle().Reverse(true).Bold(true),
		Endpoint: lipgloss.NewStyle().Background(lipgloss.Color("#2563EB")).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		InRange:  lipgloss.NewStyle().Background(lipgloss.Color("#1E3A5F")).Foreground(lipgloss.Color("#BFDBFE")),
		Today:    lipgloss.NewStyle().Underline(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1),
	}
}

// Model is the date-range picker. The draft pair is distinct from the
// committed range handed in by the caller; nothing is emitted until a second
// click or an explicit apply.
type Model struct {
	committed Range

	draftStart   Date
	draftEnd     Date
	selectingEnd bool

	viewYear  int
	viewMonth time.Month
	cursor    Date

	monthPickerOpen bool
	yearPickerOpen  bool
	monthCursor     int
	yearCursor      int

	styles Styles
}

// New builds a picker seeded from the caller's committed range. The displayed
// month follows the committed start, or today when nothing is committed yet.
func New(committed Range) Model {
	m := Model{
		committed:  committed,
		draftStart: committed.Start,
		draftEnd:   committed.End,
		styles:     DefaultStyles(),
	}
	anchor := Today()
	if !committed.Start.IsZero() {
		anchor = committed.Start
	}
	m.viewYear, m.viewMonth = anchor.Year, anchor.Month
	m.cursor = anchor
	return m
}

func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// Draft exposes the in-progress pair for header rendering.
func (m Model) Draft() (Date, Date) {
	return m.draftStart, m.draftEnd
}

// click applies the two-click selection flow. A fresh selection pins both
// drafts to the clicked date; a second click earlier than the draft start
// swaps rather than producing an inverted range, and only the
// chronologically-ordered second click commits.
func (m Model) click(d Date) (Model, *Range) {
	if !m.selectingEnd {
		m.draftStart = d
		m.draftEnd = d
		m.selectingEnd = true
		return m, nil
	}
	if d.Before(m.draftStart) {
		m.draftEnd = m.draftStart
		m.draftStart = d
		return m, nil
	}
	m.draftEnd = d
	m.selectingEnd = false
	r := Range{Start: m.draftStart, End: d}
	m.committed = r
	return m, &r
}

// apply commits the current draft pair directly, bypassing the two-click
// flow, provided both drafts are set.
func (m Model) apply() (Model, *Range) {
	if m.draftStart.IsZero() || m.draftEnd.IsZero() {
		return m, nil
	}
	r := NewRange(m.draftStart, m.draftEnd)
	m.committed = r
	m.selectingEnd = false
	return m, &r
}

func (m Model) moveCursor(days int) Model {
	m.cursor = m.cursor.AddDays(days)
	m.viewYear, m.viewMonth = m.cursor.Year, m.cursor.Month
	return m
}

func (m Model) shiftMonth(n int) Model {
	m.cursor = m.cursor.AddMonths(n)
	m.viewYear, m.viewMonth = m.cursor.Year, m.cursor.Month
	return m
}

func pickedCmd(r Range) tea.Cmd {
	return func() tea.Msg { return PickedMsg{Range: r} }
}

func cancelledCmd() tea.Msg { return CancelledMsg{} }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.monthPickerOpen {
		return m.updateMonthPicker(key)
	}
	if m.yearPickerOpen {
		return m.updateYearPicker(key)
	}

	switch key.String() {
	case "esc", "q":
		return m, cancelledCmd
	case "left", "h":
		return m.moveCursor(-1), nil
	case "right", "l":
		return m.moveCursor(1), nil
	case "up", "k":
		return m.moveCursor(-7), nil
	case "down", "j":
		return m.moveCursor(7), nil
	case "[", "pgup":
		return m.shiftMonth(-1), nil
	case "]", "pgdown":
		return m.shiftMonth(1), nil
	case "m":
		m.monthPickerOpen = true
		m.yearPickerOpen = false
		m.monthCursor = int(m.viewMonth) - 1
		return m, nil
	case "y":
		m.yearPickerOpen = true
		m.monthPickerOpen = false
		m.yearCursor = 10 // centre of the window is the displayed year
		return m, nil
	case "enter", " ":
		next, committed := m.click(m.cursor)
		if committed != nil {
			return next, pickedCmd(*committed)
		}
		return next, nil
	case "a":
		next, committed := m.apply()
		if committed != nil {
			return next, pickedCmd(*committed)
		}
		return next, nil
	}
	return m, nil
}

func (m Model) updateMonthPicker(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc", "m":
		m.monthPickerOpen = false
	case "left", "h":
		if m.monthCursor > 0 {
			m.monthCursor--
		}
	case "right", "l":
		if m.monthCursor < 11 {
			m.monthCursor++
		}
	case "up", "k":
		if m.monthCursor >= 3 {
			m.monthCursor -= 3
		}
	case "down", "j":
		if m.monthCursor <= 8 {
			m.monthCursor += 3
		}
	case "enter", " ":
		m.viewMonth = time.Month(m.monthCursor + 1)
		m.cursor = clampToMonth(m.cursor, m.viewYear, m.viewMonth)
		m.monthPickerOpen = false
	}
	return m, nil
}

func (m Model) updateYearPicker(key tea.KeyMsg) (Model, tea.Cmd) {
	years := YearWindow(m.viewYear)
	switch key.String() {
	case "esc", "y":
		m.yearPickerOpen = false
	case "left", "h":
		if m.yearCursor > 0 {
			m.yearCursor--
		}
	case "right", "l":
		if m.yearCursor < len(years)-1 {
			m.yearCursor++
		}
	case "up", "k":
		if m.yearCursor >= 3 {
			m.yearCursor -= 3
		}
	case "down", "j":
		if m.yearCursor+3 < len(years) {
			m.yearCursor += 3
		}
	case "enter", " ":
		m.viewYear = years[m.yearCursor]
		m.cursor = clampToMonth(m.cursor, m.viewYear, m.viewMonth)
		m.yearPickerOpen = false
	}
	return m, nil
}

func clampToMonth(d Date, year int, month time.Month) Date {
	day := d.Day
	if max := DaysIn(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day}
}

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("◀ %s %d ▶", m.viewMonth.String(), m.viewYear)
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	rangeLine := "select start date"
	if m.selectingEnd {
		rangeLine = "select end date"
	}
	if !m.draftStart.IsZero() && !m.draftEnd.IsZero() {
		rangeLine += "  " + m.draftStart.String() + " → " + m.draftEnd.String()
	}
	b.WriteString(m.styles.Muted.Render(rangeLine))
	b.WriteString("\n\n")

	if m.monthPickerOpen {
		b.WriteString(m.viewMonthPicker())
	} else if m.yearPickerOpen {
		b.WriteString(m.viewYearPicker())
	} else {
		b.WriteString(m.viewCalendar())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter pick · a apply · m month · y year · [ ] page · esc close"))
	return m.styles.Border.Render(b.String())
}

func (m Model) viewCalendar() string {
	var b strings.Builder
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(m.styles.Weekday.Render(fmt.Sprintf("%3s", wd)))
	}
	b.WriteString("\n")

	today := Today()
	draft := Range{Start: m.draftStart, End: m.draftEnd}
	cells := MonthGrid(m.viewYear, m.viewMonth)
	for i, cell := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		if cell == nil {
			b.WriteString("   ")
			continue
		}
		label := fmt.Sprintf("%3d", cell.Day)
		style := m.styles.Day
		switch {
		case *cell == m.draftStart || *cell == m.draftEnd:
			style = m.styles.Endpoint
		case !m.draftStart.IsZero() && !m.draftEnd.IsZero() && draft.Contains(*cell):
			style = m.styles.InRange
		}
		if *cell == today {
			style = style.Underline(true)
		}
		if *cell == m.cursor {
			style = m.styles.Cursor
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}

func (m Model) viewMonthPicker() string {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		if i > 0 && i%3 == 0 {
			b.WriteString("\n")
		}
		label := " " + time.Month(i + 1).String()[:3] + " "
		style := m.styles.Day
		if i == int(m.viewMonth)-1 {
			style = m.styles.Endpoint
		}
		if i == m.monthCursor {
			style = m.styles.Cursor
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}

func (m Model) viewYearPicker() string {
	var b strings.Builder
	years := YearWindow(m.viewYear)
	for i, y := range years {
		if i > 0 && i%3 == 0 {
			b.WriteString("\n")
		}
		label := fmt.Sprintf(" %d ", y)
		style := m.styles.Day
		if y == m.viewYear {
			style = m.styles.Endpoint
		}
		if i == m.yearCursor {
			style = m.styles.Cursor
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}
