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

const (
	formFocusDate = iota
	formFocusVehicle
	formFocusAmount
	formFocusLitres
	formFocusFuel
	formFocusPayment
	formFocusSubmit
)

type formPrefsMsg struct {
	prefs fuelapi.Preferences
	err   error
}

// recordForm is the create/edit modal for one fill-up. An empty id means
// create.
type recordForm struct {
	id         string
	dateDigits string
	vehicleIdx int
	amount     textinput.Model
	litres     textinput.Model
	fuelIdx    int
	payIdx     int
	focus      int
	saving     bool
	errMsg     string
	touched    bool
}

func (m model) newRecordForm(existing *fuelapi.FuelRecord) recordForm {
	amount := textinput.New()
	amount.Prompt = ""
	amount.Placeholder = "0.00"
	amount.Width = 12

	litres := textinput.New()
	litres.Prompt = ""
	litres.Placeholder = "0.00"
	litres.Width = 12

	f := recordForm{
		dateDigits: time.Now().Format("20060102"),
		amount:     amount,
		litres:     litres,
	}
	if existing != nil {
		f.id = existing.ID
		if !existing.Date.IsZero() {
			f.dateDigits = existing.Date.Format("20060102")
		}
		f.amount.SetValue(fmt.Sprintf("%.2f", existing.Amount))
		f.litres.SetValue(fmt.Sprintf("%.2f", existing.Litres))
		f.vehicleIdx = indexOfVehicle(m.vehicles, existing.VehicleID)
		f.fuelIdx = indexOfFold(fuelapi.FuelTypes, existing.FuelType)
		f.payIdx = indexOfFold(fuelapi.PaymentTypes, existing.PaymentType)
		f.touched = true
	}
	return f
}

// fetchPrefsForFormCmd pre-populates a fresh create form with the saved
// defaults. Edits and forms the user has already touched are left alone.
func (m model) fetchPrefsForFormCmd() tea.Cmd {
	api := m.deps.API
	return func() tea.Msg {
		prefs, err := api.GetPreferences(context.Background())
		return formPrefsMsg{prefs: prefs, err: err}
	}
}

func (m model) applyFormPrefs(msg formPrefsMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form.id != "" || m.form.touched || msg.err != nil {
		return m, nil
	}
	if msg.prefs.DefaultVehicleID != "" {
		m.form.vehicleIdx = indexOfVehicle(m.vehicles, msg.prefs.DefaultVehicleID)
	}
	if msg.prefs.DefaultFuelType != "" {
		m.form.fuelIdx = indexOfFold(fuelapi.FuelTypes, msg.prefs.DefaultFuelType)
	}
	if msg.prefs.DefaultPaymentType != "" {
		m.form.payIdx = indexOfFold(fuelapi.PaymentTypes, msg.prefs.DefaultPaymentType)
	}
	return m, nil
}

func indexOfVehicle(vehicles []fuelapi.Vehicle, id string) int {
	for i, v := range vehicles {
		if v.ID == id {
			return i
		}
	}
	return 0
}

func indexOfFold(opts []string, value string) int {
	for i, v := range opts {
		if strings.EqualFold(v, value) {
			return i
		}
	}
	return 0
}

func (m model) updateRecordFormKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f.saving {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % (formFocusSubmit + 1))
		return m, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + formFocusSubmit) % (formFocusSubmit + 1))
		return m, nil
	case "left":
		if f.focus == formFocusVehicle || f.focus == formFocusFuel || f.focus == formFocusPayment {
			f.cycleSelect(m, -1)
			return m, nil
		}
	case "right":
		if f.focus == formFocusVehicle || f.focus == formFocusFuel || f.focus == formFocusPayment {
			f.cycleSelect(m, 1)
			return m, nil
		}
	case "enter":
		if f.focus == formFocusSubmit {
			return m.submitRecordForm()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	case "backspace", "delete":
		if f.focus == formFocusDate {
			if len(f.dateDigits) > 0 {
				f.dateDigits = f.dateDigits[:len(f.dateDigits)-1]
				f.touched = true
			}
			f.errMsg = ""
			return m, nil
		}
	}

	switch f.focus {
	case formFocusDate:
		if key.Type == tea.KeyRunes {
			for _, ch := range key.Runes {
				if ch >= '0' && ch <= '9' && len(f.dateDigits) < 8 {
					f.dateDigits += string(ch)
					f.touched = true
				}
			}
			f.errMsg = ""
		}
		return m, nil
	case formFocusAmount:
		var cmd tea.Cmd
		f.amount, cmd = f.amount.Update(key)
		f.touched = true
		return m, cmd
	case formFocusLitres:
		var cmd tea.Cmd
		f.litres, cmd = f.litres.Update(key)
		f.touched = true
		return m, cmd
	}
	return m, nil
}

func (f *recordForm) setFocus(focus int) {
	f.focus = focus
	f.amount.Blur()
	f.litres.Blur()
	switch focus {
	case formFocusAmount:
		f.amount.Focus()
	case formFocusLitres:
		f.litres.Focus()
	}
}

func (f *recordForm) cycleSelect(m model, delta int) {
	switch f.focus {
	case formFocusVehicle:
		if n := len(m.vehicles); n > 0 {
			f.vehicleIdx = (f.vehicleIdx + delta + n) % n
			f.touched = true
		}
	case formFocusFuel:
		n := len(fuelapi.FuelTypes)
		f.fuelIdx = (f.fuelIdx + delta + n) % n
		f.touched = true
	case formFocusPayment:
		n := len(fuelapi.PaymentTypes)
		f.payIdx = (f.payIdx + delta + n) % n
		f.touched = true
	}
}

func (m model) submitRecordForm() (tea.Model, tea.Cmd) {
	f := m.form
	if len(m.vehicles) == 0 {
		f.errMsg = "add a vehicle before recording a fill-up"
		return m, nil
	}

	day, err := time.ParseInLocation("20060102", f.dateDigits, time.Local)
	if err != nil {
		f.errMsg = "enter the date as YYYYMMDD"
		return m, nil
	}
	amount, _ := strconv.ParseFloat(strings.TrimSpace(f.amount.Value()), 64)
	litres, _ := strconv.ParseFloat(strings.TrimSpace(f.litres.Value()), 64)

	payload := fuelapi.FuelRecordPayload{
		VehicleID:    m.vehicles[f.vehicleIdx].ID,
		Amount:       amount,
		Litres:       litres,
		Date:         day.Format("2006-01-02"),
		FuelType:     fuelapi.FuelTypes[f.fuelIdx],
		PaymentType:  fuelapi.PaymentTypes[f.payIdx],
		CostPerLitre: format.CostPerLitre(amount, litres),
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
			return recordSavedMsg{err: api.CreateFuelRecord(context.Background(), payload)}
		}
		return recordSavedMsg{err: api.UpdateFuelRecord(context.Background(), id, payload)}
	}
}

func (m model) renderRecordForm() string {
	f := m.form
	title := "add fuel record"
	if f.id != "" {
		title = "edit fuel record"
	}

	vehicleLabel := "no vehicles yet"
	if len(m.vehicles) > 0 {
		idx := min(f.vehicleIdx, len(m.vehicles)-1)
		vehicleLabel = m.vehicles[idx].Name
	}

	rows := []struct {
		label string
		value string
		focus int
	}{
		{"date (YYYYMMDD)", f.dateDigits, formFocusDate},
		{"vehicle", vehicleLabel, formFocusVehicle},
		{"amount", f.amount.View(), formFocusAmount},
		{"volume (L)", f.litres.View(), formFocusLitres},
		{"fuel type", format.ToTitleCase(fuelapi.FuelTypes[f.fuelIdx]), formFocusFuel},
		{"payment", format.ToTitleCase(fuelapi.PaymentTypes[f.payIdx]), formFocusPayment},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	for _, row := range rows {
		label := m.styles.Label.Render(fmt.Sprintf("%-16s", row.label))
		value := m.styles.Value.Render(row.value)
		if f.focus == row.focus {
			value = m.styles.Focused.Render("› " + row.value)
		}
		b.WriteString(label + value + "\n")
	}

	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-16s", "cost per litre")))
	b.WriteString(m.styles.Muted.Render(format.CostPerLitreStrings(f.amount.Value(), f.litres.Value())))
	b.WriteString("\n\n")

	submit := "[ save ]"
	if f.saving {
		submit = "[ saving… ]"
	}
	if f.focus == formFocusSubmit {
		b.WriteString(m.styles.Focused.Render(submit))
	} else {
		b.WriteString(m.styles.Value.Render(submit))
	}

	if f.errMsg != "" {
		b.WriteString("\n\n" + m.styles.ErrText.Render(f.errMsg))
	}
	b.WriteString("\n\n" + m.styles.Hint.Render("tab/↑↓ field · ←/→ option · enter save · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}
