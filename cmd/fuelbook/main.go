package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/adithyanak/fuelbook/internal/auth"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
	"github.com/adithyanak/fuelbook/internal/logging"
	"github.com/adithyanak/fuelbook/internal/storage"
	"github.com/adithyanak/fuelbook/internal/tui"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) >= 3 && os.Args[1] == "auth" {
		switch os.Args[2] {
		case "login":
			if err := runAuthLogin(); err != nil {
				fmt.Fprintf(os.Stderr, "auth login error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Signed in. API token saved to your system credential store.")
			return
		case "logout":
			if err := runAuthLogout(); err != nil {
				fmt.Fprintf(os.Stderr, "auth logout error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Signed out.")
			return
		}
		fmt.Fprintln(os.Stderr, "usage: fuelbook [auth login|auth logout|db wipe]")
		os.Exit(1)
	}

	if len(os.Args) >= 3 && os.Args[1] == "db" && os.Args[2] == "wipe" {
		cfg, err := storage.Wipe()
		if err != nil {
			fmt.Fprintf(os.Stderr, "db wipe error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Local database wiped: %s\n", cfg.Path)
		return
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "fuelbook error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI() error {
	log, err := logging.New()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	session, err := auth.LoadSession()
	if err != nil && !auth.IsNoToken(err) {
		return fmt.Errorf("load session: %w", err)
	}

	ctx := context.Background()
	db, cfg, err := storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer db.Close()
	log.WithField("path", cfg.Path).Info("local store opened")

	deps := tui.Deps{
		API:      newClient(session.Token),
		Session:  session,
		Settings: storage.NewSettingsRepo(db),
		Avatars:  storage.NewAvatarRepo(db),
		Log:      log,
	}

	program := tea.NewProgram(tui.New(deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newClient(token string) *fuelapi.Client {
	if base := strings.TrimSpace(os.Getenv("FUELBOOK_API_BASE")); base != "" {
		return fuelapi.NewWithBaseURL(token, base)
	}
	return fuelapi.New(token)
}

func runAuthLogin() error {
	fmt.Print("Enter identity provider ID token: ")
	idToken, err := readSecret()
	if err != nil {
		return err
	}
	fmt.Println()

	if strings.TrimSpace(idToken) == "" {
		return errors.New("empty ID token")
	}

	result, err := newClient("").Login(context.Background(), strings.TrimSpace(idToken))
	if err != nil {
		return err
	}
	if err := auth.SaveToken(result.Token); err != nil {
		return err
	}

	// Cache the profile so the TUI can render it without another exchange.
	ctx := context.Background()
	db, _, err := storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer db.Close()
	profile, err := json.Marshal(result.User)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}
	return storage.NewSettingsRepo(db).Set(ctx, storage.KeyUserProfile, string(profile))
}

func runAuthLogout() error {
	if err := auth.DeleteToken(); err != nil {
		return err
	}
	ctx := context.Background()
	db, _, err := storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer db.Close()
	return storage.NewSettingsRepo(db).ClearAll(ctx)
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
