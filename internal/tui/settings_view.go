package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/format"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

type prefsLoadedMsg struct {
	prefs fuelapi.Preferences
	err   error
}

type prefsSavedMsg struct {
	prev fuelapi.Preferences
	err  error
}

const (
	settingsFocusVehicle = iota
	settingsFocusFuel
	settingsFocusPayment
)

func (m model) enterSettings() (tea.Model, tea.Cmd) {
	m.screen = screenSettings
	m.prefsLoading = true
	m.prefsErr = ""
	m.settingsFocus = settingsFocusVehicle
	api := m.deps.API
	cmd := tea.Batch(
		func() tea.Msg {
			prefs, err := api.GetPreferences(context.Background())
			return prefsLoadedMsg{prefs: prefs, err: err}
		},
		m.fetchVehiclesCmd(),
	)
	return m, cmd
}

func (m model) updateSettingsMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsLoadedMsg:
		m.prefsLoading = false
		if msg.err != nil {
			m.prefsErr = msg.err.Error()
			return m, nil
		}
		m.prefsErr = ""
		m.prefs = msg.prefs
		return m, nil

	case prefsSavedMsg:
		m.prefsSaving = false
		if msg.err != nil {
			// Roll the display back to what the server last accepted.
			m.prefs = msg.prev
			m.prefsErr = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.prefsErr = ""
		return m, nil
	}
	return m, nil
}

func (m model) updateSettingsKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prefsLoading || m.prefsSaving {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.settingsFocus > 0 {
			m.settingsFocus--
		}
		return m, nil
	case "down", "j", "tab":
		if m.settingsFocus < settingsFocusPayment {
			m.settingsFocus++
		}
		return m, nil
	case "left", "h":
		return m.changePref(-1)
	case "right", "l", "enter", " ":
		return m.changePref(1)
	case "r":
		return m.enterSettings()
	}
	return m, nil
}

// changePref cycles the focused preference and saves immediately, carrying
// the previous value so a failed save can revert.
func (m model) changePref(delta int) (tea.Model, tea.Cmd) {
	prev := m.prefs
	switch m.settingsFocus {
	case settingsFocusVehicle:
		ids := make([]string, 0, len(m.vehicles))
		for _, v := range m.vehicles {
			ids = append(ids, v.ID)
		}
		m.prefs.DefaultVehicleID = cycleValue(m.prefs.DefaultVehicleID, ids, delta)
	case settingsFocusFuel:
		m.prefs.DefaultFuelType = cycleValue(m.prefs.DefaultFuelType, fuelapi.FuelTypes, delta)
	case settingsFocusPayment:
		m.prefs.DefaultPaymentType = cycleValue(m.prefs.DefaultPaymentType, fuelapi.PaymentTypes, delta)
	}
	if m.prefs == prev {
		return m, nil
	}

	m.prefsSaving = true
	api := m.deps.API
	next := m.prefs
	return m, func() tea.Msg {
		return prefsSavedMsg{prev: prev, err: api.SavePreferences(context.Background(), next)}
	}
}

func (m model) renderSettingsScreen() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("defaults for new fuel records"))
	b.WriteString("\n\n")

	if m.prefsLoading {
		b.WriteString(m.styles.Muted.Render("loading preferences…"))
		return b.String()
	}

	vehicleLabel := "none"
	if m.prefs.DefaultVehicleID != "" {
		vehicleLabel = orDash(m.vehicleNameByID(m.prefs.DefaultVehicleID))
	}
	fuelLabel := "none"
	if m.prefs.DefaultFuelType != "" {
		fuelLabel = format.ToTitleCase(m.prefs.DefaultFuelType)
	}
	paymentLabel := "none"
	if m.prefs.DefaultPaymentType != "" {
		paymentLabel = format.ToTitleCase(m.prefs.DefaultPaymentType)
	}

	b.WriteString(formRow(m.styles, "vehicle", vehicleLabel, m.settingsFocus == settingsFocusVehicle))
	b.WriteString(formRow(m.styles, "fuel type", fuelLabel, m.settingsFocus == settingsFocusFuel))
	b.WriteString(formRow(m.styles, "payment", paymentLabel, m.settingsFocus == settingsFocusPayment))

	if m.prefsSaving {
		b.WriteString("\n" + m.styles.Muted.Render("saving…"))
	}
	if m.prefsErr != "" {
		b.WriteString("\n" + m.styles.ErrText.Render(m.prefsErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("j/k row · ←/→ change (saved immediately) · r reload"))
	return b.String()
}
