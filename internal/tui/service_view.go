package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/format"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

type servicesLoadedMsg struct {
	seq      int
	services []fuelapi.ServiceRecord
	err      error
}

type serviceSavedMsg struct {
	err error
}

type serviceDeletedMsg struct {
	err error
}

func (m model) enterService() (tea.Model, tea.Cmd) {
	m.screen = screenService
	m.serviceLoading = true
	m.serviceErr = ""
	m.serviceNotice = ""
	m.serviceForm = nil
	cmd := tea.Batch(m.fetchServicesCmd(), m.fetchVehiclesCmd())
	return m, cmd
}

func (m *model) fetchServicesCmd() tea.Cmd {
	seq := m.svcSeq.Next()
	api := m.deps.API
	log := m.deps.Log
	rng := m.rng
	return func() tea.Msg {
		services, err := api.ListServiceRecords(context.Background(), rng)
		if err != nil {
			log.WithError(err).Warn("fetch service records")
		}
		return servicesLoadedMsg{seq: seq, services: services, err: err}
	}
}

func (m model) updateServiceMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case servicesLoadedMsg:
		if !m.svcSeq.IsLatest(msg.seq) {
			return m, nil
		}
		m.serviceLoading = false
		if msg.err != nil {
			m.serviceErr = msg.err.Error()
			return m, nil
		}
		m.serviceErr = ""
		m.services = msg.services
		if m.serviceCursor >= len(m.services) {
			m.serviceCursor = max(0, len(m.services)-1)
		}
		m.serviceOffset = scrollOffset(m.serviceCursor, m.serviceOffset, m.serviceVisibleRows())
		return m, nil

	case serviceSavedMsg:
		if m.serviceForm == nil {
			return m, nil
		}
		m.serviceForm.saving = false
		if msg.err != nil {
			m.serviceForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.serviceForm = nil
		m.serviceLoading = true
		cmd := m.fetchServicesCmd()
		return m, cmd

	case serviceDeletedMsg:
		if msg.err != nil {
			m.serviceNotice = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.serviceNotice = ""
		m.serviceLoading = true
		cmd := m.fetchServicesCmd()
		return m, cmd
	}
	return m, nil
}

func (m model) serviceVisibleRows() int {
	return max(5, m.height-13)
}

func (m model) updateServiceKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.serviceCursor > 0 {
			m.serviceCursor--
		}
		m.serviceOffset = scrollOffset(m.serviceCursor, m.serviceOffset, m.serviceVisibleRows())
		return m, nil
	case "down", "j":
		if m.serviceCursor < len(m.services)-1 {
			m.serviceCursor++
		}
		m.serviceOffset = scrollOffset(m.serviceCursor, m.serviceOffset, m.serviceVisibleRows())
		return m, nil
	case "r":
		m.serviceLoading = true
		m.serviceErr = ""
		m.serviceNotice = ""
		cmd := tea.Batch(m.fetchServicesCmd(), m.fetchVehiclesCmd())
		return m, cmd
	case "a":
		form := m.newServiceForm(nil)
		m.serviceForm = &form
		return m, nil
	case "e":
		if len(m.services) > 0 && m.serviceCursor < len(m.services) {
			s := m.services[m.serviceCursor]
			form := m.newServiceForm(&s)
			m.serviceForm = &form
		}
		return m, nil
	case "x":
		if len(m.services) > 0 && m.serviceCursor < len(m.services) {
			s := m.services[m.serviceCursor]
			api := m.deps.API
			id := s.ID
			m.confirm = &confirmDialog{
				prompt: fmt.Sprintf("Delete the %s service record (%s)?",
					format.Day(s.Date), format.Money(s.Amount)),
				run: func() tea.Msg {
					return serviceDeletedMsg{err: api.DeleteServiceRecord(context.Background(), id)}
				},
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) renderServiceScreen() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("range: "))
	b.WriteString(m.styles.Value.Render(m.rng.Start.String() + " → " + m.rng.End.String()))
	b.WriteString("  " + m.styles.Hint.Render("d change"))
	b.WriteString("\n\n")

	if m.serviceForm != nil {
		b.WriteString(m.renderServiceForm())
		return b.String()
	}

	switch {
	case m.serviceLoading:
		b.WriteString(m.styles.Muted.Render("loading service records…"))
	case m.serviceErr != "":
		b.WriteString(m.styles.ErrText.Render("error: " + m.serviceErr))
		b.WriteString("\n" + m.styles.Hint.Render("r retry"))
	case len(m.services) == 0:
		b.WriteString(m.styles.Muted.Render("no service records in this range"))
		b.WriteString("\n" + m.styles.Hint.Render("a add record · d change range"))
	default:
		header := fmt.Sprintf("%-12s %-16s %10s  %-36s", "date", "vehicle", "amount", "description")
		b.WriteString(m.styles.TableHeader.Render(header))
		b.WriteString("\n")
		end := min(len(m.services), m.serviceOffset+m.serviceVisibleRows())
		for i := m.serviceOffset; i < end; i++ {
			s := m.services[i]
			line := fmt.Sprintf("%-12s %-16s %10s  %-36s",
				format.Day(s.Date),
				truncate(orDash(m.vehicleNameByID(s.VehicleID)), 16),
				format.Money(s.Amount),
				truncate(orDash(s.Description), 36),
			)
			style := m.styles.Row
			if i == m.serviceCursor {
				style = m.styles.RowCursor
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.serviceNotice != "" {
		b.WriteString("\n" + m.styles.ErrText.Render(m.serviceNotice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("j/k move · a add · e edit · x delete · d range · r refresh"))
	return b.String()
}

// service form

const (
	serviceFocusDate = iota
	serviceFocusVehicle
	serviceFocusAmount
	serviceFocusDescription
	serviceFocusSubmit
)

type serviceForm struct {
	id          string
	dateDigits  string
	vehicleIdx  int
	amount      textinput.Model
	description textinput.Model
	focus       int
	saving      bool
	errMsg      string
}

func (m model) newServiceForm(existing *fuelapi.ServiceRecord) serviceForm {
	amount := textinput.New()
	amount.Prompt = ""
	amount.Placeholder = "0.00"
	amount.Width = 12

	description := textinput.New()
	description.Prompt = ""
	description.Placeholder = "e.g. oil change"
	description.Width = 36

	f := serviceForm{
		dateDigits:  time.Now().Format("20060102"),
		amount:      amount,
		description: description,
	}
	if existing != nil {
		f.id = existing.ID
		if !existing.Date.IsZero() {
			f.dateDigits = existing.Date.Format("20060102")
		}
		f.amount.SetValue(fmt.Sprintf("%.2f", existing.Amount))
		f.description.SetValue(existing.Description)
		f.vehicleIdx = indexOfVehicle(m.vehicles, existing.VehicleID)
	}
	return f
}

func (m model) updateServiceFormKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.serviceForm
	if f.saving {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.serviceForm = nil
		return m, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % (serviceFocusSubmit + 1))
		return m, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + serviceFocusSubmit) % (serviceFocusSubmit + 1))
		return m, nil
	case "left":
		if f.focus == serviceFocusVehicle {
			if n := len(m.vehicles); n > 0 {
				f.vehicleIdx = (f.vehicleIdx + n - 1) % n
			}
			return m, nil
		}
	case "right":
		if f.focus == serviceFocusVehicle {
			if n := len(m.vehicles); n > 0 {
				f.vehicleIdx = (f.vehicleIdx + 1) % n
			}
			return m, nil
		}
	case "enter":
		if f.focus == serviceFocusSubmit {
			return m.submitServiceForm()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	case "backspace", "delete":
		if f.focus == serviceFocusDate {
			if len(f.dateDigits) > 0 {
				f.dateDigits = f.dateDigits[:len(f.dateDigits)-1]
			}
			f.errMsg = ""
			return m, nil
		}
	}

	switch f.focus {
	case serviceFocusDate:
		if key.Type == tea.KeyRunes {
			for _, ch := range key.Runes {
				if ch >= '0' && ch <= '9' && len(f.dateDigits) < 8 {
					f.dateDigits += string(ch)
				}
			}
			f.errMsg = ""
		}
		return m, nil
	case serviceFocusAmount:
		var cmd tea.Cmd
		f.amount, cmd = f.amount.Update(key)
		return m, cmd
	case serviceFocusDescription:
		var cmd tea.Cmd
		f.description, cmd = f.description.Update(key)
		return m, cmd
	}
	return m, nil
}

func (f *serviceForm) setFocus(focus int) {
	f.focus = focus
	f.amount.Blur()
	f.description.Blur()
	switch focus {
	case serviceFocusAmount:
		f.amount.Focus()
	case serviceFocusDescription:
		f.description.Focus()
	}
}

func (m model) submitServiceForm() (tea.Model, tea.Cmd) {
	f := m.serviceForm
	if len(m.vehicles) == 0 {
		f.errMsg = "add a vehicle before recording a service"
		return m, nil
	}

	day, err := time.ParseInLocation("20060102", f.dateDigits, time.Local)
	if err != nil {
		f.errMsg = "enter the date as YYYYMMDD"
		return m, nil
	}
	amount, _ := strconv.ParseFloat(strings.TrimSpace(f.amount.Value()), 64)

	payload := fuelapi.ServiceRecordPayload{
		VehicleID:   m.vehicles[f.vehicleIdx].ID,
		Amount:      amount,
		Date:        day.Format("2006-01-02"),
		Description: strings.TrimSpace(f.description.Value()),
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
			return serviceSavedMsg{err: api.CreateServiceRecord(context.Background(), payload)}
		}
		return serviceSavedMsg{err: api.UpdateServiceRecord(context.Background(), id, payload)}
	}
}

func (m model) renderServiceForm() string {
	f := m.serviceForm
	title := "add service record"
	if f.id != "" {
		title = "edit service record"
	}

	vehicleLabel := "no vehicles yet"
	if len(m.vehicles) > 0 {
		idx := min(f.vehicleIdx, len(m.vehicles)-1)
		vehicleLabel = m.vehicles[idx].Name
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formRow(m.styles, "date (YYYYMMDD)", f.dateDigits, f.focus == serviceFocusDate))
	b.WriteString(formRow(m.styles, "vehicle", vehicleLabel, f.focus == serviceFocusVehicle))
	b.WriteString(formRow(m.styles, "amount", f.amount.View(), f.focus == serviceFocusAmount))
	b.WriteString(formRow(m.styles, "description", f.description.View(), f.focus == serviceFocusDescription))
	b.WriteString("\n")

	submit := "[ save ]"
	if f.saving {
		submit = "[ saving… ]"
	}
	if f.focus == serviceFocusSubmit {
		b.WriteString(m.styles.Focused.Render(submit))
	} else {
		b.WriteString(m.styles.Value.Render(submit))
	}

	if f.errMsg != "" {
		b.WriteString("\n\n" + m.styles.ErrText.Render(f.errMsg))
	}
	b.WriteString("\n\n" + m.styles.Hint.Render("tab field · ←/→ vehicle · enter save · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}
