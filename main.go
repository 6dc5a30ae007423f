// chatflow TUI - a terminal chat client with an AI counterpart.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/chatflow-tui/internal/config"
	"github.com/jeranaias/chatflow-tui/internal/identity"
	"github.com/jeranaias/chatflow-tui/internal/responder"
	"github.com/jeranaias/chatflow-tui/internal/store"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the config watcher and store subscriptions
// can inject messages into the event loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("chatflow %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "chatflow requires an interactive terminal")
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires configuration, storage, identity, and the responder, then
// hands control to the TUI. Errors here are real failures shown before
// the chat illusion starts.
func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
		if err != nil {
			return err
		}
		config.SetGlobal(cfg)
	} else {
		cfg = config.Global()
	}

	// The responder degrades to apologies without a key; say so once,
	// before the alternate screen hides stderr.
	if cfg.Responder.APIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: no API key configured (set GEMINI_API_KEY); replies will degrade to apologies")
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening chat store: %w", err)
	}
	defer st.Close()

	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return err
	}
	provider := identity.NewLocalProvider(
		credPath,
		time.Duration(cfg.Identity.SessionDurationHours)*time.Hour,
		cfg.Identity.MFAEnabled,
	)

	client := responder.NewClientWithConfig(&responder.ClientConfig{
		APIKey:            cfg.Responder.APIKey,
		BaseURL:           cfg.Responder.BaseURL,
		Model:             cfg.Responder.Model,
		Timeout:           time.Duration(cfg.Responder.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Responder.RequestsPerMinute,
	})

	theme := styles.NewTheme()
	app := newApp(theme, cfg, st, provider, client)

	// Live-reload config edits (theme, API key) while running.
	if path, err := config.ConfigPath(); err == nil {
		watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			sendToProgram(configReloadedMsg{cfg: updated})
		})
		if werr == nil {
			if werr = watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	_, err = p.Run()
	return err
}

// subscribeRooms attaches store subscriptions for every chat room and
// forwards inserts into the event loop. Returns the cancel funcs.
func subscribeRooms(st *store.Store, chatIDs []string) []func() {
	cancels := make([]func(), 0, len(chatIDs))
	for _, id := range chatIDs {
		roomID := id
		cancel := st.SubscribeMessages(roomID, func(row store.MessageRow) {
			sendToProgram(storeInsertMsg{row: row})
		})
		cancels = append(cancels, cancel)
	}
	return cancels
}
