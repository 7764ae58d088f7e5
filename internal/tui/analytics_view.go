package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/format"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

type analyticsLoadedMsg struct {
	seq    int
	kind   fuelapi.AnalyticsKind
	points []fuelapi.AnalyticsPoint
	err    error
}

var analyticsKinds = []fuelapi.AnalyticsKind{
	fuelapi.AnalyticsVehicleCategory,
	fuelapi.AnalyticsFuelPrice,
	fuelapi.AnalyticsFuelType,
}

var analyticsTitles = map[fuelapi.AnalyticsKind]string{
	fuelapi.AnalyticsVehicleCategory: "spend by vehicle category",
	fuelapi.AnalyticsFuelPrice:       "fuel price over time",
	fuelapi.AnalyticsFuelType:        "spend by fuel type",
}

func (m model) enterAnalytics() (tea.Model, tea.Cmd) {
	m.screen = screenAnalytics
	return m.startAnalyticsFetch()
}

// startAnalyticsFetch dispatches all three series under one sequence token;
// a new fetch round invalidates every in-flight response from the old one.
func (m model) startAnalyticsFetch() (model, tea.Cmd) {
	seq := m.anlSeq.Next()
	m.analyticsPending = len(analyticsKinds)
	m.analyticsErr = ""
	m.analytics = map[fuelapi.AnalyticsKind][]fuelapi.AnalyticsPoint{}

	api := m.deps.API
	log := m.deps.Log
	rng := m.rng
	cmds := make([]tea.Cmd, 0, len(analyticsKinds))
	for _, kind := range analyticsKinds {
		kind := kind
		cmds = append(cmds, func() tea.Msg {
			points, err := api.Analytics(context.Background(), kind, rng)
			if err != nil {
				log.WithError(err).WithField("kind", string(kind)).Warn("fetch analytics")
			}
			return analyticsLoadedMsg{seq: seq, kind: kind, points: points, err: err}
		})
	}
	return m, tea.Batch(cmds...)
}

func (m model) updateAnalyticsMsg(msg analyticsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.anlSeq.IsLatest(msg.seq) {
		return m, nil
	}
	if m.analyticsPending > 0 {
		m.analyticsPending--
	}
	if msg.err != nil {
		m.analyticsErr = msg.err.Error()
		return m, nil
	}
	m.analytics[msg.kind] = msg.points
	return m, nil
}

func (m model) updateAnalyticsKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "r":
		return m.startAnalyticsFetch()
	}
	return m, nil
}

func (m model) renderAnalyticsScreen() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("range: "))
	b.WriteString(m.styles.Value.Render(m.rng.Start.String() + " → " + m.rng.End.String()))
	b.WriteString("  " + m.styles.Hint.Render("d change"))
	b.WriteString("\n\n")

	switch {
	case m.analyticsPending > 0:
		b.WriteString(m.styles.Muted.Render("loading analytics…"))
	case m.analyticsErr != "":
		b.WriteString(m.styles.ErrText.Render("error: " + m.analyticsErr))
		b.WriteString("\n" + m.styles.Hint.Render("r retry"))
	default:
		empty := true
		for _, kind := range analyticsKinds {
			points := m.analytics[kind]
			if len(points) == 0 {
				continue
			}
			empty = false
			b.WriteString(m.styles.TableHeader.Render(analyticsTitles[kind]))
			b.WriteString("\n")
			b.WriteString(m.renderBarChart(points))
			b.WriteString("\n")
		}
		if empty {
			b.WriteString(m.styles.Muted.Render("no analytics for this range"))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("d range · r refresh"))
	return b.String()
}

func (m model) renderBarChart(points []fuelapi.AnalyticsPoint) string {
	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	barWidth := max(10, min(48, m.width-44))
	var b strings.Builder
	for _, p := range points {
		label := truncate(format.ToTitleCase(p.Label), 18)
		b.WriteString(m.styles.BarLabel.Render(fmt.Sprintf("%-18s ", label)))
		b.WriteString(m.styles.Bar.Render(barFor(p.Value, maxValue, barWidth)))
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %.2f", p.Value)))
		b.WriteString("\n")
	}
	return b.String()
}

// barFor scales value against the series maximum; any non-zero value gets at
// least one cell so small bars stay visible.
func barFor(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}
