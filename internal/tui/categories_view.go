package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

type categorySavedMsg struct {
	err error
}

type categoryDeletedMsg struct {
	err error
}

func (m model) enterCategories() (tea.Model, tea.Cmd) {
	m.screen = screenCategories
	m.categoriesLoading = true
	m.categoriesErr = ""
	m.categoriesNotice = ""
	m.categoryForm = nil
	cmd := m.fetchCategoriesCmd()
	return m, cmd
}

func (m model) updateCategoriesMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categorySavedMsg:
		if m.categoryForm == nil {
			return m, nil
		}
		m.categoryForm.saving = false
		if msg.err != nil {
			m.categoryForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.categoryForm = nil
		m.categoriesLoading = true
		cmd := m.fetchCategoriesCmd()
		return m, cmd

	case categoryDeletedMsg:
		if msg.err != nil {
			m.categoriesNotice = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.categoriesNotice = ""
		m.categoriesLoading = true
		cmd := m.fetchCategoriesCmd()
		return m, cmd
	}
	return m, nil
}

func (m model) categoriesVisibleRows() int {
	return max(5, m.height-12)
}

func (m model) updateCategoriesKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.categoriesCursor > 0 {
			m.categoriesCursor--
		}
		m.categoriesOffset = scrollOffset(m.categoriesCursor, m.categoriesOffset, m.categoriesVisibleRows())
		return m, nil
	case "down", "j":
		if m.categoriesCursor < len(m.categories)-1 {
			m.categoriesCursor++
		}
		m.categoriesOffset = scrollOffset(m.categoriesCursor, m.categoriesOffset, m.categoriesVisibleRows())
		return m, nil
	case "r":
		m.categoriesLoading = true
		m.categoriesErr = ""
		m.categoriesNotice = ""
		cmd := m.fetchCategoriesCmd()
		return m, cmd
	case "a":
		form := newCategoryForm(nil)
		m.categoryForm = &form
		return m, nil
	case "e":
		if len(m.categories) > 0 && m.categoriesCursor < len(m.categories) {
			c := m.categories[m.categoriesCursor]
			form := newCategoryForm(&c)
			m.categoryForm = &form
		}
		return m, nil
	case "x":
		if len(m.categories) > 0 && m.categoriesCursor < len(m.categories) {
			c := m.categories[m.categoriesCursor]
			api := m.deps.API
			id := c.ID
			m.confirm = &confirmDialog{
				prompt: fmt.Sprintf("Delete category %q? Vehicles keep the id but lose the name.", c.Name),
				run: func() tea.Msg {
					return categoryDeletedMsg{err: api.DeleteCategory(context.Background(), id)}
				},
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) renderCategoriesScreen() string {
	if m.categoryForm != nil {
		return m.renderCategoryForm()
	}

	var b strings.Builder
	switch {
	case m.categoriesLoading:
		b.WriteString(m.styles.Muted.Render("loading vehicle categories…"))
	case m.categoriesErr != "":
		b.WriteString(m.styles.ErrText.Render("error: " + m.categoriesErr))
		b.WriteString("\n" + m.styles.Hint.Render("r retry"))
	case len(m.categories) == 0:
		b.WriteString(m.styles.Muted.Render("no vehicle categories yet"))
		b.WriteString("\n" + m.styles.Hint.Render("a add category"))
	default:
		header := fmt.Sprintf("%-20s %-40s", "name", "description")
		b.WriteString(m.styles.TableHeader.Render(header))
		b.WriteString("\n")
		end := min(len(m.categories), m.categoriesOffset+m.categoriesVisibleRows())
		for i := m.categoriesOffset; i < end; i++ {
			c := m.categories[i]
			line := fmt.Sprintf("%-20s %-40s", truncate(c.Name, 20), truncate(orDash(c.Description), 40))
			style := m.styles.Row
			if i == m.categoriesCursor {
				style = m.styles.RowCursor
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.categoriesNotice != "" {
		b.WriteString("\n" + m.styles.ErrText.Render(m.categoriesNotice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("j/k move · a add · e edit · x delete · r refresh"))
	return b.String()
}

// category form

const (
	categoryFocusName = iota
	categoryFocusDescription
	categoryFocusSubmit
)

type categoryForm struct {
	id          string
	name        textinput.Model
	description textinput.Model
	focus       int
	saving      bool
	errMsg      string
}

func newCategoryForm(existing *fuelapi.Category) categoryForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "e.g. Hatchback"
	name.Width = 24
	name.Focus()

	description := textinput.New()
	description.Prompt = ""
	description.Placeholder = "description (optional)"
	description.Width = 40

	f := categoryForm{name: name, description: description}
	if existing != nil {
		f.id = existing.ID
		f.name.SetValue(existing.Name)
		f.description.SetValue(existing.Description)
	}
	return f
}

func (m model) updateCategoryFormKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.categoryForm
	if f.saving {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.categoryForm = nil
		return m, nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % (categoryFocusSubmit + 1))
		return m, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + categoryFocusSubmit) % (categoryFocusSubmit + 1))
		return m, nil
	case "enter":
		if f.focus == categoryFocusSubmit {
			return m.submitCategoryForm()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case categoryFocusName:
		f.name, cmd = f.name.Update(key)
	case categoryFocusDescription:
		f.description, cmd = f.description.Update(key)
	}
	return m, cmd
}

func (f *categoryForm) setFocus(focus int) {
	f.focus = focus
	f.name.Blur()
	f.description.Blur()
	switch focus {
	case categoryFocusName:
		f.name.Focus()
	case categoryFocusDescription:
		f.description.Focus()
	}
}

func (m model) submitCategoryForm() (tea.Model, tea.Cmd) {
	f := m.categoryForm
	payload := fuelapi.CategoryPayload{
		Name:        strings.TrimSpace(f.name.Value()),
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
			return categorySavedMsg{err: api.CreateCategory(context.Background(), payload)}
		}
		return categorySavedMsg{err: api.UpdateCategory(context.Background(), id, payload)}
	}
}

func (m model) renderCategoryForm() string {
	f := m.categoryForm
	title := "add vehicle category"
	if f.id != "" {
		title = "edit vehicle category"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formRow(m.styles, "name", f.name.View(), f.focus == categoryFocusName))
	b.WriteString(formRow(m.styles, "description", f.description.View(), f.focus == categoryFocusDescription))
	b.WriteString("\n")

	submit := "[ save ]"
	if f.saving {
		submit = "[ saving… ]"
	}
	if f.focus == categoryFocusSubmit {
		b.WriteString(m.styles.Focused.Render(submit))
	} else {
		b.WriteString(m.styles.Value.Render(submit))
	}

	if f.errMsg != "" {
		b.WriteString("\n\n" + m.styles.ErrText.Render(f.errMsg))
	}
	b.WriteString("\n\n" + m.styles.Hint.Render("tab field · enter save · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}
