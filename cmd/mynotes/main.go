// Command mynotes is a terminal client for the MyNotes backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/marcus/mynotes/internal/api"
	"github.com/marcus/mynotes/internal/app"
	"github.com/marcus/mynotes/internal/config"
)

const version = "0.2.0"

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/mynotes/config.json)")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	verifyToken := flag.String("verify", "", "redeem an email verification token and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mynotes " + version)
		return
	}

	// A .env next to the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadFrom(config.ExpandPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mynotes: load config: %v\n", err)
		os.Exit(1)
	}
	if env := os.Getenv("MYNOTES_SERVER"); env != "" {
		cfg.Server.URL = env
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	logger, closeLog := newLogger()
	defer closeLog()

	token, err := config.LoadToken()
	if err != nil {
		logger.Warn().Err(err).Msg("load token")
	}
	session := api.NewSession(token)
	client := api.New(cfg.Server.URL, session)

	if *verifyToken != "" {
		runVerify(client, cfg.Server.Timeout, *verifyToken)
		return
	}

	logger.Info().Str("version", version).Str("server", cfg.Server.URL).Msg("starting")

	p := tea.NewProgram(app.New(cfg, client, logger, version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "mynotes: %v\n", err)
		os.Exit(1)
	}
}

// runVerify redeems an email verification token from the CLI, for clicking
// through from the signup email without a browser.
func runVerify(client *api.Client, timeout time.Duration, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.VerifyEmail(ctx, token); err != nil {
		fmt.Fprintf(os.Stderr, "mynotes: verification failed: %s\n", api.Message(err))
		os.Exit(1)
	}
	fmt.Println("Email verified. You can now log in.")
}

// newLogger writes structured logs to ~/.config/mynotes/debug.log so the TUI
// screen stays clean. Failures fall back to a disabled logger.
func newLogger() (zerolog.Logger, func()) {
	dir := config.Dir()
	if dir == "" {
		return zerolog.Nop(), func() {}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return logger, func() { f.Close() }
}
