package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/adithyanak/fuelbook/internal/auth"
	"github.com/adithyanak/fuelbook/internal/daterange"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
	"github.com/adithyanak/fuelbook/internal/records"
	"github.com/adithyanak/fuelbook/internal/storage"
)

type screenMode int

const (
	screenLogin screenMode = iota
	screenRecords
	screenVehicles
	screenCategories
	screenService
	screenAnalytics
	screenSettings
	screenProfile
)

var navItems = []string{
	"records",
	"vehicles",
	"categories",
	"service",
	"analytics",
	"settings",
	"profile",
}

// Deps is everything the program needs injected at startup. There are no
// package-level singletons; the session in particular travels here instead of
// living in ambient state.
type Deps struct {
	API      *fuelapi.Client
	Session  auth.Session
	Settings *storage.SettingsRepo
	Avatars  *storage.AvatarRepo
	Log      *logrus.Logger
}

type settingsRestoredMsg struct {
	theme    string
	rng      *daterange.Range
	filter   *records.Filter
	pageSize int
	err      error
}

type stateSavedMsg struct {
	err error
}

type confirmDialog struct {
	prompt string
	run    tea.Cmd
}

type model struct {
	deps Deps

	width  int
	height int

	styles   theme
	screen   screenMode
	quitting bool

	// committed date range, shared by the records, service and analytics
	// screens
	rng        daterange.Range
	pickerOpen bool
	picker     daterange.Model

	confirm *confirmDialog

	// records screen
	recs           []fuelapi.FuelRecord
	vehicles       []fuelapi.Vehicle
	categories     []fuelapi.Category
	rows           []records.Row
	filtered       []records.Row
	filter         records.Filter
	fuelOptions    []string
	paymentOptions []string
	filterActive   bool
	filterFocus    int
	page           int
	pageSizeIdx    int
	recordsCursor  int
	recordsOffset  int
	recordsLoading bool
	recordsErr     string
	recordsNotice  string
	recSeq         records.SeqGuard
	vehSeq         records.SeqGuard
	catSeq         records.SeqGuard
	form           *recordForm

	// vehicles screen
	vehiclesLoading bool
	vehiclesErr     string
	vehiclesNotice  string
	vehiclesCursor  int
	vehiclesOffset  int
	vehicleForm     *vehicleForm

	// categories screen
	categoriesLoading bool
	categoriesErr     string
	categoriesNotice  string
	categoriesCursor  int
	categoriesOffset  int
	categoryForm      *categoryForm

	// service records screen
	services       []fuelapi.ServiceRecord
	serviceLoading bool
	serviceErr     string
	serviceNotice  string
	serviceCursor  int
	serviceOffset  int
	svcSeq         records.SeqGuard
	serviceForm    *serviceForm

	// analytics screen
	analytics        map[fuelapi.AnalyticsKind][]fuelapi.AnalyticsPoint
	analyticsPending int
	analyticsErr     string
	anlSeq           records.SeqGuard

	// settings screen
	prefs         fuelapi.Preferences
	prefsLoading  bool
	prefsSaving   bool
	prefsErr      string
	settingsFocus int

	// profile screen
	user        *fuelapi.User
	userErr     string
	avatar      *storage.CachedAvatar
	avatarTries int
	avatarNote  string
}

func New(deps Deps) tea.Model {
	m := model{
		deps:      deps,
		styles:    darkTheme(),
		screen:    screenRecords,
		rng:       daterange.LastMonths(3),
		analytics: map[fuelapi.AnalyticsKind][]fuelapi.AnalyticsPoint{},
		page:      1,
	}
	if !deps.Session.Valid() {
		m.screen = screenLogin
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.screen == screenLogin {
		return nil
	}
	return m.restoreSettingsCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settingsRestoredMsg:
		if msg.err != nil {
			m.deps.Log.WithError(msg.err).Warn("restore saved settings")
		}
		if msg.theme == "light" {
			m.styles = lightTheme()
		}
		if msg.rng != nil {
			m.rng = *msg.rng
		}
		if msg.filter != nil {
			m.filter = *msg.filter
		}
		if msg.pageSize > 0 {
			for i, size := range records.PageSizes {
				if size == msg.pageSize {
					m.pageSizeIdx = i
				}
			}
		}
		return m.enterRecords()

	case stateSavedMsg:
		if msg.err != nil {
			m.deps.Log.WithError(msg.err).Warn("persist ui state")
		}
		return m, nil

	case daterange.PickedMsg:
		m.pickerOpen = false
		m.rng = msg.Range
		next, cmd := m.refetchForScreen()
		return next, tea.Batch(cmd, next.persistStateCmd())

	case daterange.CancelledMsg:
		m.pickerOpen = false
		return m, nil

	case recordsLoadedMsg, vehiclesLoadedMsg, categoriesLoadedMsg, recordSavedMsg, recordDeletedMsg:
		return m.updateRecordsMsg(msg)

	case formPrefsMsg:
		return m.applyFormPrefs(msg)

	case vehicleSavedMsg, vehicleDeletedMsg:
		return m.updateVehiclesMsg(msg)

	case categorySavedMsg, categoryDeletedMsg:
		return m.updateCategoriesMsg(msg)

	case servicesLoadedMsg, serviceSavedMsg, serviceDeletedMsg:
		return m.updateServiceMsg(msg)

	case analyticsLoadedMsg:
		return m.updateAnalyticsMsg(msg)

	case prefsLoadedMsg, prefsSavedMsg:
		return m.updateSettingsMsg(msg)

	case userLoadedMsg, avatarLoadedMsg, avatarFetchedMsg, avatarRetryMsg, logoutDoneMsg:
		return m.updateProfileMsg(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updateKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenLogin {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(key)
		return m, cmd
	}

	if m.confirm != nil {
		switch key.String() {
		case "esc", "n":
			m.confirm = nil
			return m, nil
		case "enter", "y":
			run := m.confirm.run
			m.confirm = nil
			return m, run
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateRecordFormKeys(key)
	}
	if m.vehicleForm != nil {
		return m.updateVehicleFormKeys(key)
	}
	if m.categoryForm != nil {
		return m.updateCategoryFormKeys(key)
	}
	if m.serviceForm != nil {
		return m.updateServiceFormKeys(key)
	}

	if m.filterActive {
		return m.updateFilterKeys(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "t":
		m.styles = themeFor(!m.styles.dark)
		return m, m.persistStateCmd()
	case "1":
		return m.enterRecords()
	case "2":
		return m.enterVehicles()
	case "3":
		return m.enterCategories()
	case "4":
		return m.enterService()
	case "5":
		return m.enterAnalytics()
	case "6":
		return m.enterSettings()
	case "7":
		return m.enterProfile()
	case "d":
		if m.screen == screenRecords || m.screen == screenService || m.screen == screenAnalytics {
			m.picker = daterange.New(m.rng)
			m.picker.SetStyles(m.styles.pickerStyles())
			m.pickerOpen = true
			return m, nil
		}
	}

	switch m.screen {
	case screenRecords:
		return m.updateRecordsKeys(key)
	case screenVehicles:
		return m.updateVehiclesKeys(key)
	case screenCategories:
		return m.updateCategoriesKeys(key)
	case screenService:
		return m.updateServiceKeys(key)
	case screenAnalytics:
		return m.updateAnalyticsKeys(key)
	case screenSettings:
		return m.updateSettingsKeys(key)
	case screenProfile:
		return m.updateProfileKeys(key)
	}
	return m, nil
}

// refetchForScreen reloads whatever the active screen derives from the
// committed date range.
func (m model) refetchForScreen() (model, tea.Cmd) {
	switch m.screen {
	case screenRecords:
		m.recordsLoading = true
		m.recordsErr = ""
		m.page = 1
		cmd := m.fetchRecordsCmd()
		return m, cmd
	case screenService:
		m.serviceLoading = true
		m.serviceErr = ""
		cmd := m.fetchServicesCmd()
		return m, cmd
	case screenAnalytics:
		return m.startAnalyticsFetch()
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenLogin:
		body = m.renderLoginScreen()
	case screenRecords:
		body = m.renderRecordsScreen()
	case screenVehicles:
		body = m.renderVehiclesScreen()
	case screenCategories:
		body = m.renderCategoriesScreen()
	case screenService:
		body = m.renderServiceScreen()
	case screenAnalytics:
		body = m.renderAnalyticsScreen()
	case screenSettings:
		body = m.renderSettingsScreen()
	case screenProfile:
		body = m.renderProfileScreen()
	}

	content := m.renderNav() + "\n\n" + body

	if m.pickerOpen {
		content = m.renderNav() + "\n\n" + m.picker.View()
	}
	if m.confirm != nil {
		dialog := m.styles.Dialog.Render(
			m.confirm.prompt + "\n\n" + m.styles.Hint.Render("y/enter confirm · n/esc cancel"),
		)
		content = m.renderNav() + "\n\n" + dialog
	}

	frame := m.styles.Frame
	if m.width > 0 {
		frame = frame.Width(max(1, m.width-frame.GetHorizontalBorderSize()))
	}
	if m.height > 0 {
		inner := max(1, m.height-frame.GetVerticalBorderSize())
		frame = frame.Height(inner)
	}
	return frame.Render(content)
}

func (m model) renderNav() string {
	if m.screen == screenLogin {
		return m.styles.Title.Render("fuelbook")
	}
	parts := make([]string, 0, len(navItems))
	for i, item := range navItems {
		label := strconv.Itoa(i+1) + " " + item
		if screenMode(i+1) == m.screen {
			parts = append(parts, m.styles.NavActive.Render(label))
		} else {
			parts = append(parts, m.styles.Nav.Render(label))
		}
	}
	nav := strings.Join(parts, "  ")
	title := m.styles.Title.Render("fuelbook")
	hint := m.styles.Hint.Render("t theme · q quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", nav, "   ", hint)
}

func (m model) renderLoginScreen() string {
	lines := []string{
		m.styles.Label.Render("not signed in"),
		"",
		m.styles.Value.Render("fuelbook needs an API token before it can show your data."),
		m.styles.Value.Render("Run the login flow from your shell, then start fuelbook again:"),
		"",
		m.styles.Focused.Render("  fuelbook auth login"),
		"",
		m.styles.Muted.Render("Paste your identity provider ID token when prompted; it is"),
		m.styles.Muted.Render("exchanged for an API token stored in your system keychain."),
		"",
		m.styles.Hint.Render("q quit"),
	}
	return strings.Join(lines, "\n")
}

// settings persistence

const settingsReadTimeout = 3 * time.Second

func (m model) restoreSettingsCmd() tea.Cmd {
	repo := m.deps.Settings
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
		defer cancel()

		var out settingsRestoredMsg
		if v, ok, err := repo.Get(ctx, storage.KeyTheme); err != nil {
			out.err = err
		} else if ok {
			out.theme = v
		}
		if v, ok, err := repo.Get(ctx, storage.KeyLastRange); err == nil && ok {
			if r, err := parseRangeSetting(v); err == nil {
				out.rng = &r
			}
		}
		if v, ok, err := repo.Get(ctx, storage.KeyLastFilters); err == nil && ok {
			var f records.Filter
			if err := json.Unmarshal([]byte(v), &f); err == nil {
				out.filter = &f
			}
		}
		if v, ok, err := repo.Get(ctx, storage.KeyLastPageSize); err == nil && ok {
			if n, err := strconv.Atoi(v); err == nil {
				out.pageSize = n
			}
		}
		return out
	}
}

func (m model) persistStateCmd() tea.Cmd {
	repo := m.deps.Settings
	themeName := "dark"
	if !m.styles.dark {
		themeName = "light"
	}
	filterJSON, _ := json.Marshal(m.filter)
	values := map[string]string{
		storage.KeyTheme:        themeName,
		storage.KeyLastRange:    formatRangeSetting(m.rng),
		storage.KeyLastFilters:  string(filterJSON),
		storage.KeyLastPageSize: strconv.Itoa(records.PageSizes[m.pageSizeIdx]),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
		defer cancel()
		return stateSavedMsg{err: repo.UpsertMany(ctx, values)}
	}
}

var errBadRangeSetting = errors.New("malformed saved date range")

func formatRangeSetting(r daterange.Range) string {
	return r.Start.String() + ".." + r.End.String()
}

func parseRangeSetting(s string) (daterange.Range, error) {
	start, end, ok := strings.Cut(s, "..")
	if !ok {
		return daterange.Range{}, errBadRangeSetting
	}
	from, err := daterange.Parse(start)
	if err != nil {
		return daterange.Range{}, err
	}
	to, err := daterange.Parse(end)
	if err != nil {
		return daterange.Range{}, err
	}
	return daterange.NewRange(from, to), nil
}
