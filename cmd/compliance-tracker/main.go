package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/compliance-tracker/internal/app"
	"github.com/nhle/compliance-tracker/internal/credential"
	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/session"
	"github.com/nhle/compliance-tracker/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
		}
	}

	creds := credential.NewKeyring()
	sess := session.NewManager(creds, cfg.ServerURL, time.Duration(cfg.TimeoutSec)*time.Second)
	st := store.New(sess.API())

	p := tea.NewProgram(app.New(sess, st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
