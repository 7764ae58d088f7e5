package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

type vehicleSavedMsg struct {
	err error
}

type vehicleDeletedMsg struct {
	err error
}

func (m model) enterVehicles() (tea.Model, tea.Cmd) {
	m.screen = screenVehicles
	m.vehiclesLoading = true
	m.vehiclesErr = ""
	m.vehiclesNotice = ""
	m.vehicleForm = nil
	cmd := tea.Batch(m.fetchVehiclesCmd(), m.fetchCategoriesCmd())
	return m, cmd
}

func (m model) updateVehiclesMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case vehicleSavedMsg:
		if m.vehicleForm == nil {
			return m, nil
		}
		m.vehicleForm.saving = false
		if msg.err != nil {
			m.vehicleForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.vehicleForm = nil
		m.vehiclesLoading = true
		cmd := m.fetchVehiclesCmd()
		return m, cmd

	case vehicleDeletedMsg:
		if msg.err != nil {
			m.vehiclesNotice = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.vehiclesNotice = ""
		m.vehiclesLoading = true
		cmd := m.fetchVehiclesCmd()
		return m, cmd
	}
	return m, nil
}

func (m model) vehiclesVisibleRows() int {
	return max(5, m.height-12)
}

func (m model) updateVehiclesKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.vehiclesCursor > 0 {
			m.vehiclesCursor--
		}
		m.vehiclesOffset = scrollOffset(m.vehiclesCursor, m.vehiclesOffset, m.vehiclesVisibleRows())
		return m, nil
	case "down", "j":
		if m.vehiclesCursor < len(m.vehicles)-1 {
			m.vehiclesCursor++
		}
		m.vehiclesOffset = scrollOffset(m.vehiclesCursor, m.vehiclesOffset, m.vehiclesVisibleRows())
		return m, nil
	case "r":
		m.vehiclesLoading = true
		m.vehiclesErr = ""
		m.vehiclesNotice = ""
		cmd := tea.Batch(m.fetchVehiclesCmd(), m.fetchCategoriesCmd())
		return m, cmd
	case "a":
		form := newVehicleForm(nil)
		m.vehicleForm = &form
		return m, nil
	case "e":
		if len(m.vehicles) > 0 && m.vehiclesCursor < len(m.vehicles) {
			v := m.vehicles[m.vehiclesCursor]
			form := newVehicleForm(&v)
			m.vehicleForm = &form
		}
		return m, nil
	case "x":
		if len(m.vehicles) > 0 && m.vehiclesCursor < len(m.vehicles) {
			v := m.vehicles[m.vehiclesCursor]
			api := m.deps.API
			id := v.ID
			m.confirm = &confirmDialog{
				prompt: fmt.Sprintf("Delete vehicle %q? Its fuel records keep the id but lose the name.", v.Name),
				run: func() tea.Msg {
					return vehicleDeletedMsg{err: api.DeleteVehicle(context.Background(), id)}
				},
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) renderVehiclesScreen() string {
	if m.vehicleForm != nil {
		return m.renderVehicleForm()
	}

	var b strings.Builder
	switch {
	case m.vehiclesLoading:
		b.WriteString(m.styles.Muted.Render("loading vehicles…"))
	case m.vehiclesErr != "":
		b.WriteString(m.styles.ErrText.Render("error: " + m.vehiclesErr))
		b.WriteString("\n" + m.styles.Hint.Render("r retry"))
	case len(m.vehicles) == 0:
		b.WriteString(m.styles.Muted.Render("no vehicles yet"))
		b.WriteString("\n" + m.styles.Hint.Render("a add vehicle"))
	default:
		header := fmt.Sprintf("%-20s %-16s %-14s", "name", "category", "registration")
		b.WriteString(m.styles.TableHeader.Render(header))
		b.WriteString("\n")
		end := min(len(m.vehicles), m.vehiclesOffset+m.vehiclesVisibleRows())
		for i := m.vehiclesOffset; i < end; i++ {
			v := m.vehicles[i]
			line := fmt.Sprintf("%-20s %-16s %-14s",
				truncate(v.Name, 20),
				truncate(orDash(m.categoryNameByID(v.CategoryID)), 16),
				orDash(v.VehicleNumber),
			)
			style := m.styles.Row
			if i == m.vehiclesCursor {
				style = m.styles.RowCursor
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.vehiclesNotice != "" {
		b.WriteString("\n" + m.styles.ErrText.Render(m.vehiclesNotice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("j/k move · a add · e edit · x delete · r refresh"))
	return b.String()
}

// vehicle form

const (
	vehicleFocusName = iota
	vehicleFocusCategory
	vehicleFocusNumber
	vehicleFocusSubmit
)

type vehicleForm struct {
	id          string
	name        textinput.Model
	categoryIdx int // 0 = none, i>0 = categories[i-1]
	number      textinput.Model
	focus       int
	saving      bool
	errMsg      string
}

func newVehicleForm(existing *fuelapi.Vehicle) vehicleForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "e.g. Swift"
	name.Width = 24
	name.Focus()

	number := textinput.New()
	number.Prompt = ""
	number.Placeholder = "registration (optional)"
	number.Width = 24

	f := vehicleForm{name: name, number: number}
	if existing != nil {
		f.id = existing.ID
		f.name.SetValue(existing.Name)
		f.number.SetValue(existing.VehicleNumber)
	}
	return f
}

func (m model) updateVehicleFormKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.vehicleForm
	if f.saving {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.vehicleForm = nil
		return m, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % (vehicleFocusSubmit + 1))
		return m, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + vehicleFocusSubmit) % (vehicleFocusSubmit + 1))
		return m, nil
	case "left":
		if f.focus == vehicleFocusCategory {
			n := len(m.categories) + 1
			f.categoryIdx = (f.categoryIdx + n - 1) % n
			return m, nil
		}
	case "right":
		if f.focus == vehicleFocusCategory {
			n := len(m.categories) + 1
			f.categoryIdx = (f.categoryIdx + 1) % n
			return m, nil
		}
	case "enter":
		if f.focus == vehicleFocusSubmit {
			return m.submitVehicleForm()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case vehicleFocusName:
		f.name, cmd = f.name.Update(key)
	case vehicleFocusNumber:
		f.number, cmd = f.number.Update(key)
	}
	return m, cmd
}

func (f *vehicleForm) setFocus(focus int) {
	f.focus = focus
	f.name.Blur()
	f.number.Blur()
	switch focus {
	case vehicleFocusName:
		f.name.Focus()
	case vehicleFocusNumber:
		f.number.Focus()
	}
}

func (m model) submitVehicleForm() (tea.Model, tea.Cmd) {
	f := m.vehicleForm
	payload := fuelapi.VehiclePayload{
		Name:          strings.TrimSpace(f.name.Value()),
		VehicleNumber: strings.TrimSpace(f.number.Value()),
	}
	if f.categoryIdx > 0 && f.categoryIdx <= len(m.categories) {
		payload.CategoryID = m.categories[f.categoryIdx-1].ID
	}
	if err := fuelapi.ValidatePayload(payload); err != nil {
		f.errMsg = err.Error()
		return m, nil
	}

	f.errMsg = ""
	f.saving = true
	api := m.deps.API
	id := f.id
	return m, func() tea.Msg {
		if id == "" {
			return vehicleSavedMsg{err: api.CreateVehicle(context.Background(), payload)}
		}
		return vehicleSavedMsg{err: api.UpdateVehicle(context.Background(), id, payload)}
	}
}

func (m model) renderVehicleForm() string {
	f := m.vehicleForm
	title := "add vehicle"
	if f.id != "" {
		title = "edit vehicle"
	}

	categoryLabel := "none"
	if f.categoryIdx > 0 && f.categoryIdx <= len(m.categories) {
		categoryLabel = m.categories[f.categoryIdx-1].Name
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formRow(m.styles, "name", f.name.View(), f.focus == vehicleFocusName))
	b.WriteString(formRow(m.styles, "category", categoryLabel, f.focus == vehicleFocusCategory))
	b.WriteString(formRow(m.styles, "registration", f.number.View(), f.focus == vehicleFocusNumber))
	b.WriteString("\n")

	submit := "[ save ]"
	if f.saving {
		submit = "[ saving… ]"
	}
	if f.focus == vehicleFocusSubmit {
		b.WriteString(m.styles.Focused.Render(submit))
	} else {
		b.WriteString(m.styles.Value.Render(submit))
	}

	if f.errMsg != "" {
		b.WriteString("\n\n" + m.styles.ErrText.Render(f.errMsg))
	}
	b.WriteString("\n\n" + m.styles.Hint.Render("tab field · ←/→ category · enter save · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}

func formRow(t theme, label, value string, focused bool) string {
	rendered := t.Value.Render(value)
	if focused {
		rendered = t.Focused.Render("› " + value)
	}
	return t.Label.Render(fmt.Sprintf("%-16s", label)) + rendered + "\n"
}
