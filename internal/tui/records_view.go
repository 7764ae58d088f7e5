package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/format"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
	"github.com/adithyanak/fuelbook/internal/records"
)

type recordsLoadedMsg struct {
	seq  int
	recs []fuelapi.FuelRecord
	err  error
}

type vehiclesLoadedMsg struct {
	seq      int
	vehicles []fuelapi.Vehicle
	err      error
}

type categoriesLoadedMsg struct {
	seq        int
	categories []fuelapi.Category
	err        error
}

type recordSavedMsg struct {
	err error
}

type recordDeletedMsg struct {
	err error
}

func (m model) enterRecords() (tea.Model, tea.Cmd) {
	m.screen = screenRecords
	m.recordsLoading = true
	m.recordsErr = ""
	m.recordsNotice = ""
	m.filterActive = false
	m.form = nil
	if m.page <= 0 {
		m.page = 1
	}
	cmd := tea.Batch(m.fetchRecordsCmd(), m.fetchVehiclesCmd(), m.fetchCategoriesCmd())
	return m, cmd
}

func (m *model) fetchRecordsCmd() tea.Cmd {
	seq := m.recSeq.Next()
	api := m.deps.API
	log := m.deps.Log
	rng := m.rng
	return func() tea.Msg {
		recs, err := api.ListFuelRecords(context.Background(), rng)
		if err != nil {
			log.WithError(err).Warn("fetch fuel records")
		}
		return recordsLoadedMsg{seq: seq, recs: recs, err: err}
	}
}

func (m *model) fetchVehiclesCmd() tea.Cmd {
	seq := m.vehSeq.Next()
	api := m.deps.API
	log := m.deps.Log
	return func() tea.Msg {
		vehicles, err := api.ListVehicles(context.Background())
		if err != nil {
			log.WithError(err).Warn("fetch vehicles")
		}
		return vehiclesLoadedMsg{seq: seq, vehicles: vehicles, err: err}
	}
}

func (m *model) fetchCategoriesCmd() tea.Cmd {
	seq := m.catSeq.Next()
	api := m.deps.API
	log := m.deps.Log
	return func() tea.Msg {
		categories, err := api.ListCategories(context.Background())
		if err != nil {
			log.WithError(err).Warn("fetch vehicle categories")
		}
		return categoriesLoadedMsg{seq: seq, categories: categories, err: err}
	}
}

func (m model) deleteRecordCmd(id string) tea.Cmd {
	api := m.deps.API
	return func() tea.Msg {
		return recordDeletedMsg{err: api.DeleteFuelRecord(context.Background(), id)}
	}
}

func (m model) updateRecordsMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if !m.recSeq.IsLatest(msg.seq) {
			return m, nil
		}
		m.recordsLoading = false
		if msg.err != nil {
			m.recordsErr = msg.err.Error()
			return m, nil
		}
		m.recordsErr = ""
		m.recs = msg.recs
		m.rebuildRows()
		return m, nil

	case vehiclesLoadedMsg:
		if !m.vehSeq.IsLatest(msg.seq) {
			return m, nil
		}
		m.vehiclesLoading = false
		if msg.err != nil {
			m.vehiclesErr = msg.err.Error()
			return m, nil
		}
		m.vehiclesErr = ""
		m.vehicles = msg.vehicles
		m.rebuildRows()
		if m.vehiclesCursor >= len(m.vehicles) {
			m.vehiclesCursor = max(0, len(m.vehicles)-1)
		}
		return m, nil

	case categoriesLoadedMsg:
		if !m.catSeq.IsLatest(msg.seq) {
			return m, nil
		}
		m.categoriesLoading = false
		if msg.err != nil {
			m.categoriesErr = msg.err.Error()
			return m, nil
		}
		m.categoriesErr = ""
		m.categories = msg.categories
		m.rebuildRows()
		if m.categoriesCursor >= len(m.categories) {
			m.categoriesCursor = max(0, len(m.categories)-1)
		}
		return m, nil

	case recordSavedMsg:
		if m.form == nil {
			return m, nil
		}
		m.form.saving = false
		if msg.err != nil {
			m.form.errMsg = msg.err.Error()
			return m, nil
		}
		m.form = nil
		m.recordsLoading = true
		cmd := m.fetchRecordsCmd()
		return m, cmd

	case recordDeletedMsg:
		if msg.err != nil {
			m.recordsNotice = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.recordsNotice = ""
		m.recordsLoading = true
		cmd := m.fetchRecordsCmd()
		return m, cmd
	}
	return m, nil
}

// rebuildRows re-joins records with whatever reference data has arrived so
// far and reapplies the filter. Safe to call after any of the three fetches
// lands, in any order.
func (m *model) rebuildRows() {
	m.rows = records.Enrich(m.recs, m.vehicles, m.categories)
	m.applyFilter(false)
}

func (m *model) applyFilter(resetPage bool) {
	m.fuelOptions, m.paymentOptions = records.Options(m.rows)
	prevFiltered := len(m.filtered)
	m.filtered = records.Apply(m.rows, m.filter)
	// Any change in the filtered result size sends the user back to page 1,
	// whether it came from a filter edit or from refetched data.
	if resetPage || len(m.filtered) != prevFiltered {
		m.page = 1
	}
	size := records.PageSizes[m.pageSizeIdx]
	m.page = records.ClampPage(m.page, len(m.filtered), size)
	pageRows := records.Paginate(m.filtered, m.page, size)
	if m.recordsCursor >= len(pageRows) {
		m.recordsCursor = max(0, len(pageRows)-1)
	}
	m.recordsOffset = scrollOffset(m.recordsCursor, m.recordsOffset, m.recordsVisibleRows())
}

func (m model) pageRows() []records.Row {
	return records.Paginate(m.filtered, m.page, records.PageSizes[m.pageSizeIdx])
}

func (m model) recordsVisibleRows() int {
	return max(5, m.height-16)
}

func (m model) updateRecordsKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	pageRows := m.pageRows()
	switch key.String() {
	case "up", "k":
		if m.recordsCursor > 0 {
			m.recordsCursor--
		}
		m.recordsOffset = scrollOffset(m.recordsCursor, m.recordsOffset, m.recordsVisibleRows())
		return m, nil
	case "down", "j":
		if m.recordsCursor < len(pageRows)-1 {
			m.recordsCursor++
		}
		m.recordsOffset = scrollOffset(m.recordsCursor, m.recordsOffset, m.recordsVisibleRows())
		return m, nil
	case "[", "left", "h":
		if m.page > 1 {
			m.page--
			m.recordsCursor = 0
			m.recordsOffset = 0
		}
		return m, nil
	case "]", "right", "l":
		size := records.PageSizes[m.pageSizeIdx]
		if m.page < records.PageCount(len(m.filtered), size) {
			m.page++
			m.recordsCursor = 0
			m.recordsOffset = 0
		}
		return m, nil
	case "s":
		m.pageSizeIdx = (m.pageSizeIdx + 1) % len(records.PageSizes)
		m.page = 1
		m.recordsCursor = 0
		m.recordsOffset = 0
		m.applyFilter(false)
		return m, m.persistStateCmd()
	case "f":
		m.filterActive = true
		m.filterFocus = 0
		return m, nil
	case "r":
		m.recordsLoading = true
		m.recordsErr = ""
		m.recordsNotice = ""
		cmd := tea.Batch(m.fetchRecordsCmd(), m.fetchVehiclesCmd(), m.fetchCategoriesCmd())
		return m, cmd
	case "a":
		form := m.newRecordForm(nil)
		m.form = &form
		return m, m.fetchPrefsForFormCmd()
	case "e":
		if len(pageRows) > 0 && m.recordsCursor < len(pageRows) {
			row := pageRows[m.recordsCursor]
			form := m.newRecordForm(&row.FuelRecord)
			m.form = &form
		}
		return m, nil
	case "x":
		if len(pageRows) > 0 && m.recordsCursor < len(pageRows) {
			row := pageRows[m.recordsCursor]
			m.confirm = &confirmDialog{
				prompt: fmt.Sprintf("Delete the %s fill-up for %s (%s)?",
					format.Day(row.Date), orDash(row.VehicleName), format.Money(row.Amount)),
				run: m.deleteRecordCmd(row.ID),
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) updateFilterKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "f":
		m.filterActive = false
		return m, nil
	case "left", "h":
		if m.filterFocus > 0 {
			m.filterFocus--
		}
		return m, nil
	case "right", "l", "tab":
		if m.filterFocus < 3 {
			m.filterFocus++
		}
		return m, nil
	case "c":
		m.filter = records.Filter{}
		m.applyFilter(true)
		return m, m.persistStateCmd()
	case "up", "k":
		m.cycleFilterValue(-1)
		m.applyFilter(true)
		return m, m.persistStateCmd()
	case "down", "j", "enter", " ":
		m.cycleFilterValue(1)
		m.applyFilter(true)
		return m, m.persistStateCmd()
	}
	return m, nil
}

func (m *model) cycleFilterValue(delta int) {
	switch m.filterFocus {
	case 0:
		ids := make([]string, 0, len(m.vehicles))
		for _, v := range m.vehicles {
			ids = append(ids, v.ID)
		}
		m.filter.VehicleID = cycleValue(m.filter.VehicleID, ids, delta)
	case 1:
		ids := make([]string, 0, len(m.categories))
		for _, c := range m.categories {
			ids = append(ids, c.ID)
		}
		m.filter.CategoryID = cycleValue(m.filter.CategoryID, ids, delta)
	case 2:
		m.filter.FuelType = cycleValue(m.filter.FuelType, m.fuelOptions, delta)
	case 3:
		m.filter.PaymentType = cycleValue(m.filter.PaymentType, m.paymentOptions, delta)
	}
}

// cycleValue steps through "" followed by opts, wrapping at both ends. The
// empty string means no constraint.
func cycleValue(current string, opts []string, delta int) string {
	all := append([]string{""}, opts...)
	idx := 0
	for i, v := range all {
		if strings.EqualFold(v, current) {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(all)) % len(all)
	return all[idx]
}

func scrollOffset(cursor, offset, visible int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func (m model) renderRecordsScreen() string {
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("range: "))
	b.WriteString(m.styles.Value.Render(m.rng.Start.String() + " → " + m.rng.End.String()))
	b.WriteString("  " + m.styles.Hint.Render("d change"))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.renderRecordForm())
		return b.String()
	}

	switch {
	case m.recordsLoading:
		b.WriteString(m.styles.Muted.Render("loading fuel records…"))
	case m.recordsErr != "":
		b.WriteString(m.styles.ErrText.Render("error: " + m.recordsErr))
		b.WriteString("\n" + m.styles.Hint.Render("r retry"))
	case len(m.filtered) == 0:
		b.WriteString(m.styles.Muted.Render("no fuel records in this range"))
		b.WriteString("\n" + m.styles.Hint.Render("a add record · d change range · f filters"))
	default:
		b.WriteString(m.renderRecordsTable())
	}

	if m.recordsNotice != "" {
		b.WriteString("\n" + m.styles.ErrText.Render(m.recordsNotice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("j/k move · [ ] page · s size · f filters · a add · e edit · x delete · r refresh"))
	return b.String()
}

func (m model) renderFilterBar() string {
	vehicleLabel := "all"
	if m.filter.VehicleID != "" {
		vehicleLabel = orDash(m.vehicleNameByID(m.filter.VehicleID))
	}
	categoryLabel := "all"
	if m.filter.CategoryID != "" {
		categoryLabel = orDash(m.categoryNameByID(m.filter.CategoryID))
	}
	fuelLabel := "all"
	if m.filter.FuelType != "" {
		fuelLabel = format.ToTitleCase(m.filter.FuelType)
	}
	paymentLabel := "all"
	if m.filter.PaymentType != "" {
		paymentLabel = format.ToTitleCase(m.filter.PaymentType)
	}

	segments := []string{
		"vehicle: " + vehicleLabel,
		"category: " + categoryLabel,
		"fuel: " + fuelLabel,
		"payment: " + paymentLabel,
	}
	parts := make([]string, len(segments))
	for i, seg := range segments {
		style := m.styles.Muted
		if m.filterActive && i == m.filterFocus {
			style = m.styles.Focused
		} else if m.filterActive {
			style = m.styles.Value
		}
		parts[i] = style.Render(seg)
	}
	bar := strings.Join(parts, m.styles.Hint.Render(" · "))
	if m.filterActive {
		bar += "  " + m.styles.Hint.Render("←/→ field · ↑/↓ value · c clear · esc done")
	} else {
		bar += "  " + m.styles.Hint.Render("f edit filters")
	}
	return bar
}

func (m model) vehicleNameByID(id string) string {
	for _, v := range m.vehicles {
		if v.ID == id {
			return v.Name
		}
	}
	return ""
}

func (m model) categoryNameByID(id string) string {
	for _, c := range m.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (m model) renderRecordsTable() string {
	var b strings.Builder
	header := fmt.Sprintf("%-12s %-16s %-12s %-10s %-12s %10s %8s %8s",
		"date", "vehicle", "category", "fuel", "payment", "amount", "litres", "cost/L")
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	pageRows := m.pageRows()
	visible := m.recordsVisibleRows()
	end := min(len(pageRows), m.recordsOffset+visible)
	for i := m.recordsOffset; i < end; i++ {
		row := pageRows[i]
		line := fmt.Sprintf("%-12s %-16s %-12s %-10s %-12s %10s %8s %8s",
			format.Day(row.Date),
			truncate(orDash(row.VehicleName), 16),
			truncate(orDash(row.VehicleCategoryName), 12),
			format.ToTitleCase(row.FuelType),
			format.ToTitleCase(row.PaymentType),
			format.Money(row.Amount),
			format.Litres(row.Litres),
			format.CostPerLitre(row.Amount, row.Litres),
		)
		style := m.styles.Row
		if i == m.recordsCursor {
			style = m.styles.RowCursor
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	totals := records.Sum(m.filtered)
	size := records.PageSizes[m.pageSizeIdx]
	pages := records.PageCount(len(m.filtered), size)
	b.WriteString("\n")
	b.WriteString(m.styles.Totals.Render(fmt.Sprintf(
		"total spent %s · total volume %s L · %d records",
		format.Money(totals.Amount), format.Litres(totals.Litres), len(m.filtered),
	)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("page %d/%d · %d per page", m.page, pages, size)))
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
