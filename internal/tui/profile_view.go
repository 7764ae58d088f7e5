package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adithyanak/fuelbook/internal/auth"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
	"github.com/adithyanak/fuelbook/internal/storage"
)

type userLoadedMsg struct {
	user *fuelapi.User
	err  error
}

type avatarLoadedMsg struct {
	avatar *storage.CachedAvatar
}

type avatarFetchedMsg struct {
	avatar  storage.CachedAvatar
	attempt int
	err     error
}

type avatarRetryMsg struct {
	attempt int
}

type logoutDoneMsg struct {
	err error
}

const (
	avatarMaxAttempts = 3
	avatarMaxBytes    = 2 << 20
)

func (m model) enterProfile() (tea.Model, tea.Cmd) {
	m.screen = screenProfile
	m.userErr = ""
	m.avatarNote = ""
	m.avatarTries = 0
	repo := m.deps.Settings
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
		defer cancel()
		raw, ok, err := repo.Get(ctx, storage.KeyUserProfile)
		if err != nil {
			return userLoadedMsg{err: err}
		}
		if !ok {
			return userLoadedMsg{}
		}
		var user fuelapi.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return userLoadedMsg{err: err}
		}
		return userLoadedMsg{user: &user}
	}
}

func (m model) loadAvatarCmd(userID string) tea.Cmd {
	repo := m.deps.Avatars
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
		defer cancel()
		avatar, err := repo.Get(ctx, userID)
		if err != nil {
			return avatarLoadedMsg{}
		}
		return avatarLoadedMsg{avatar: avatar}
	}
}

// fetchAvatarCmd downloads the provider-hosted profile image and caches it
// locally on success.
func (m model) fetchAvatarCmd(attempt int) tea.Cmd {
	user := m.user
	repo := m.deps.Avatars
	log := m.deps.Log
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(user.ImageURL)
		if err != nil {
			return avatarFetchedMsg{attempt: attempt, err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return avatarFetchedMsg{attempt: attempt, err: fmt.Errorf("avatar fetch returned status %d", resp.StatusCode)}
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, avatarMaxBytes))
		if err != nil {
			return avatarFetchedMsg{attempt: attempt, err: err}
		}

		avatar := storage.CachedAvatar{
			UserID:      user.ID,
			ContentType: resp.Header.Get("Content-Type"),
			Data:        data,
			FetchedAt:   time.Now().UTC(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
		defer cancel()
		if err := repo.Put(ctx, avatar); err != nil {
			log.WithError(err).Warn("cache avatar")
		}
		return avatarFetchedMsg{avatar: avatar, attempt: attempt}
	}
}

func avatarRetryDelay(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

func (m model) updateProfileMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.err != nil {
			m.userErr = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		if m.user == nil {
			return m, nil
		}
		return m, m.loadAvatarCmd(m.user.ID)

	case avatarLoadedMsg:
		if msg.avatar != nil {
			m.avatar = msg.avatar
			return m, nil
		}
		if m.user != nil && m.user.ImageURL != "" {
			m.avatarTries = 1
			return m, m.fetchAvatarCmd(1)
		}
		return m, nil

	case avatarFetchedMsg:
		if msg.err != nil {
			m.deps.Log.WithError(msg.err).WithField("attempt", msg.attempt).Warn("fetch avatar")
			if msg.attempt < avatarMaxAttempts {
				next := msg.attempt + 1
				return m, tea.Tick(avatarRetryDelay(msg.attempt), func(time.Time) tea.Msg {
					return avatarRetryMsg{attempt: next}
				})
			}
			m.avatarNote = "profile photo unavailable, showing initials"
			return m, nil
		}
		avatar := msg.avatar
		m.avatar = &avatar
		m.avatarNote = ""
		return m, nil

	case avatarRetryMsg:
		m.avatarTries = msg.attempt
		return m, m.fetchAvatarCmd(msg.attempt)

	case logoutDoneMsg:
		if msg.err != nil {
			m.userErr = "logout failed: " + msg.err.Error()
			return m, nil
		}
		m.deps.Session = auth.Session{}
		m.screen = screenLogin
		m.user = nil
		m.avatar = nil
		m.recs = nil
		m.vehicles = nil
		m.categories = nil
		m.services = nil
		m.rows = nil
		m.filtered = nil
		return m, nil
	}
	return m, nil
}

func (m model) updateProfileKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "o":
		session := m.deps.Session
		settings := m.deps.Settings
		m.confirm = &confirmDialog{
			prompt: "Sign out? This removes the stored token and cached profile.",
			run: func() tea.Msg {
				if err := session.Clear(); err != nil {
					return logoutDoneMsg{err: err}
				}
				ctx, cancel := context.WithTimeout(context.Background(), settingsReadTimeout)
				defer cancel()
				return logoutDoneMsg{err: settings.ClearAll(ctx)}
			},
		}
		return m, nil
	}
	return m, nil
}

func initialsFor(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "?"
	}
	initials := strings.ToUpper(string([]rune(fields[0])[0]))
	if len(fields) > 1 {
		initials += strings.ToUpper(string([]rune(fields[len(fields)-1])[0]))
	}
	return initials
}

var avatarPalette = []string{
	"#F47A60", "#5CCB76", "#6CBFE6", "#FFD54A", "#B983FF", "#F15B5B", "#2DD4BF",
}

// avatarColorFor picks a stable background color for the initials badge from
// a hash of the user id.
func avatarColorFor(userID string) lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return lipgloss.Color(avatarPalette[int(h.Sum32())%len(avatarPalette)])
}

func (m model) renderProfileScreen() string {
	var b strings.Builder

	if m.user == nil {
		if m.userErr != "" {
			b.WriteString(m.styles.ErrText.Render("error: " + m.userErr))
		} else {
			b.WriteString(m.styles.Muted.Render("no cached profile; run fuelbook auth login"))
		}
		return b.String()
	}

	badge := m.styles.Badge.Background(avatarColorFor(m.user.ID)).Render(initialsFor(m.user.Name))
	details := []string{
		m.styles.Title.Render(m.user.Name),
		m.styles.Value.Render(m.user.Email),
	}
	if m.avatar != nil {
		details = append(details, m.styles.Muted.Render(fmt.Sprintf(
			"profile photo cached · %s · %.1f KB",
			orDash(m.avatar.ContentType), float64(len(m.avatar.Data))/1024,
		)))
	} else if m.avatarNote != "" {
		details = append(details, m.styles.Muted.Render(m.avatarNote))
	} else if m.user.ImageURL != "" {
		details = append(details, m.styles.Muted.Render("fetching profile photo…"))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", strings.Join(details, "\n")))
	if m.userErr != "" {
		b.WriteString("\n\n" + m.styles.ErrText.Render(m.userErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("o sign out"))
	return b.String()
}
