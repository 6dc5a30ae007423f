// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatflow-tui/internal/config"
	"github.com/jeranaias/chatflow-tui/internal/identity"
	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/responder"
	"github.com/jeranaias/chatflow-tui/internal/store"
	"github.com/jeranaias/chatflow-tui/internal/ui/auth"
	"github.com/jeranaias/chatflow-tui/internal/ui/chat"
	"github.com/jeranaias/chatflow-tui/internal/ui/drawer"
	"github.com/jeranaias/chatflow-tui/internal/ui/sidebar"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// State represents the top-level application state.
type State int

const (
	StateAuth      State = iota // Sign-in / sign-up screens
	StateDashboard              // Sidebar + thread
)

// focusTarget selects which dashboard pane receives keys.
type focusTarget int

const (
	focusSidebar focusTarget = iota
	focusChat
)

// =============================================================================
// MESSAGES
// =============================================================================

// configReloadedMsg arrives from the config file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

// storeInsertMsg forwards a persisted message row from a store
// subscription into the event loop.
type storeInsertMsg struct {
	row store.MessageRow
}

// provisionedMsg delivers the chat list after the store is ready.
type provisionedMsg struct {
	chats []model.Chat
	err   error
}

// storeErrMsg reports a failed write-through.
type storeErrMsg struct {
	err error
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the top-level Bubble Tea model, switching between the auth
// screens and the dashboard.
type App struct {
	state State
	theme *styles.Theme
	cfg   *config.Config

	store     *store.Store
	provider  identity.Provider
	responder *responder.Client

	// Auth
	auth auth.Model

	// Dashboard
	currentUser model.User
	chats       []model.Chat
	sidebar     sidebar.Model
	chat        chat.Model
	drawer      drawer.Model
	drawerOpen  bool
	focus       focusTarget
	statusLine  string

	// Store subscription cancel funcs, released on sign-out.
	subCancels []func()

	width  int
	height int
}

// newApp assembles the application in the auth state.
func newApp(theme *styles.Theme, cfg *config.Config, st *store.Store, provider identity.Provider, client *responder.Client) *App {
	a := &App{
		state:     StateAuth,
		theme:     theme,
		cfg:       cfg,
		store:     st,
		provider:  provider,
		responder: client,
		auth:      auth.New(theme, provider),
	}
	a.applyTheme()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.auth.Init()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages by application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.releaseSubscriptions()
			return a, tea.Quit
		}

	case configReloadedMsg:
		a.cfg = msg.cfg
		a.applyTheme()
		a.responder = responder.NewClientWithConfig(&responder.ClientConfig{
			APIKey:            a.cfg.Responder.APIKey,
			BaseURL:           a.cfg.Responder.BaseURL,
			Model:             a.cfg.Responder.Model,
			Timeout:           time.Duration(a.cfg.Responder.TimeoutSecs) * time.Second,
			RequestsPerMinute: a.cfg.Responder.RequestsPerMinute,
		})
		if a.state == StateDashboard {
			a.chat.SetResponder(a.responder)
			a.chat.SetRevealDelay(time.Duration(a.cfg.Responder.RevealDelayMS) * time.Millisecond)
			a.chat.SetMarkdown(a.cfg.UI.Markdown)
			a.chat.SetCompact(a.cfg.UI.CompactMode)
		}
		return a, nil

	case auth.SignedInMsg:
		return a.handleSignedIn(msg)

	case provisionedMsg:
		return a.handleProvisioned(msg)

	case drawer.SignOutMsg:
		return a.handleSignOut()
	}

	if a.state == StateAuth {
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd
	}
	return a.updateDashboard(msg)
}

// handleSignedIn provisions the store for the authenticated user.
func (a *App) handleSignedIn(msg auth.SignedInMsg) (tea.Model, tea.Cmd) {
	a.currentUser = msg.User

	st := a.store
	user := msg.User
	seed := a.cfg.Storage.Seed
	return a, func() tea.Msg {
		chats, err := st.Provision(context.Background(), user, seed)
		return provisionedMsg{chats: chats, err: err}
	}
}

// handleProvisioned builds the dashboard once the chat list is loaded.
func (a *App) handleProvisioned(msg provisionedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.statusLine = "storage error: " + msg.err.Error()
		return a, nil
	}

	a.chats = msg.chats
	a.state = StateDashboard
	a.focus = focusSidebar

	a.sidebar = sidebar.New(a.theme, a.currentUser.ID)
	a.sidebar.SetChats(cloneChats(a.chats))

	revealDelay := time.Duration(a.cfg.Responder.RevealDelayMS) * time.Millisecond
	a.chat = chat.New(a.theme, a.responder, a.currentUser, revealDelay)
	a.chat.SetMarkdown(a.cfg.UI.Markdown)
	a.chat.SetCompact(a.cfg.UI.CompactMode)
	a.drawer = drawer.New(a.theme, a.currentUser)
	a.drawerOpen = false

	a.setSize(a.width, a.height)

	a.releaseSubscriptions()
	ids := make([]string, len(a.chats))
	for i := range a.chats {
		ids[i] = a.chats[i].ID
	}
	a.subCancels = subscribeRooms(a.store, ids)

	// Open on the first conversation.
	var selectCmd tea.Cmd
	if len(a.chats) > 0 {
		selectCmd = a.sidebar.SelectByID(a.chats[0].ID)
	}
	return a, tea.Batch(a.chat.Init(), selectCmd)
}

// handleSignOut tears the dashboard down and returns to the auth screen.
func (a *App) handleSignOut() (tea.Model, tea.Cmd) {
	_ = a.provider.SignOut(context.Background())
	a.releaseSubscriptions()

	a.state = StateAuth
	a.drawerOpen = false
	a.chats = nil
	a.statusLine = ""
	a.auth = auth.New(a.theme, a.provider)
	a.setSize(a.width, a.height)
	return a, a.auth.Init()
}

// updateDashboard routes dashboard messages to the focused pane and
// handles the cross-pane lifecycle messages.
func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sidebar.SelectedMsg:
		a.setActiveChat(msg.Chat.ID)
		a.focus = focusChat
		return a, nil

	case chat.SentMsg:
		return a, a.recordMessage(msg.ChatID, msg.Message, false)

	case chat.RevealedMsg:
		return a, a.recordMessage(msg.ChatID, msg.Message, true)

	case storeInsertMsg:
		// Inserts from other writers bump the unread badge when they land
		// outside the active room.
		if msg.row.UserID != a.currentUser.ID && msg.row.ChatRoomID != a.chat.ActiveChatID() {
			a.sidebar.BumpUnread(msg.row.ChatRoomID)
		}
		return a, nil

	case storeErrMsg:
		a.statusLine = "storage error: " + msg.err.Error()
		return a, nil

	case drawer.ToggleThemeMsg:
		a.toggleTheme()
		return a, nil

	case drawer.CloseMsg:
		a.drawerOpen = false
		return a, nil

	case tea.KeyMsg:
		return a.handleDashboardKey(msg)
	}

	// Everything else (spinner ticks, blink) goes to every pane that
	// animates.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// handleDashboardKey routes keys: the drawer when open, otherwise the
// focused pane, with a few global shortcuts.
func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.drawerOpen {
		var cmd tea.Cmd
		a.drawer, cmd = a.drawer.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "ctrl+p":
		a.drawerOpen = true
		return a, nil

	case "tab":
		if a.focus == focusSidebar {
			a.focus = focusChat
		} else {
			a.focus = focusSidebar
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == focusSidebar {
		a.sidebar, cmd = a.sidebar.Update(msg)
	} else {
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

// =============================================================================
// DASHBOARD HELPERS
// =============================================================================

// setActiveChat points the thread pane at the canonical chat value.
// Selection is last-write-wins; an unknown ID clears the thread.
func (a *App) setActiveChat(chatID string) {
	for i := range a.chats {
		if a.chats[i].ID == chatID {
			a.chat.SetConversation(&a.chats[i])
			return
		}
	}
	a.chat.SetConversation(nil)
}

// recordMessage appends a lifecycle message to the canonical chat list,
// refreshes the sidebar preview, and persists it in the background.
func (a *App) recordMessage(chatID string, msg model.Message, isAI bool) tea.Cmd {
	for i := range a.chats {
		if a.chats[i].ID == chatID {
			a.chats[i].Append(msg)
			break
		}
	}
	a.sidebar.RecordMessage(chatID, msg)

	st := a.store
	return func() tea.Msg {
		if err := st.SaveChatMessage(context.Background(), chatID, msg, isAI); err != nil {
			return storeErrMsg{err: err}
		}
		return nil
	}
}

// toggleTheme flips dark/light, persists the choice, and re-derives the
// styles.
func (a *App) toggleTheme() {
	if a.cfg.UI.Theme == "light" {
		a.cfg.UI.Theme = "dark"
	} else {
		a.cfg.UI.Theme = "light"
	}
	_ = config.Save(a.cfg)

	a.applyTheme()
}

// applyTheme pushes the configured dark/light choice into the adaptive
// color resolution.
func (a *App) applyTheme() {
	dark := a.cfg.UI.Theme != "light"
	a.theme.IsDark = dark
	lipgloss.SetHasDarkBackground(dark)
}

// cloneChats deep-copies the message slices so the sidebar's working copy
// never aliases the canonical list.
func cloneChats(chats []model.Chat) []model.Chat {
	out := make([]model.Chat, len(chats))
	copy(out, chats)
	for i := range out {
		out[i].Messages = chats[i].MessageCopy()
	}
	return out
}

// releaseSubscriptions cancels all store subscriptions.
func (a *App) releaseSubscriptions() {
	for _, cancel := range a.subCancels {
		cancel()
	}
	a.subCancels = nil
}

// setSize distributes the window across the panes.
func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.theme.SetSize(width, height)

	a.auth.SetSize(width, height)

	sidebarWidth := a.cfg.UI.SidebarWidth
	if sidebarWidth <= 0 || sidebarWidth >= width {
		sidebarWidth = width / 4
	}
	contentHeight := height - 1 // status bar

	a.sidebar.SetSize(sidebarWidth, contentHeight)
	a.chat.SetSize(maxPane(width-sidebarWidth, 20), contentHeight)
	a.drawer.SetSize(maxPane(width-sidebarWidth, 20), contentHeight)
}

func maxPane(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen.
func (a *App) View() string {
	if a.state == StateAuth {
		return a.auth.View()
	}

	right := a.chat.View()
	if a.drawerOpen {
		right = lipgloss.Place(
			maxPane(a.width-a.cfg.UI.SidebarWidth, 20),
			maxPane(a.height-1, 1),
			lipgloss.Center, lipgloss.Center,
			a.drawer.View(),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar())
}

// statusBar renders the shortcut hints and any store error.
func (a *App) statusBar() string {
	if a.statusLine != "" {
		return a.theme.StatusBar.Width(maxPane(a.width, 10)).
			Render(a.theme.ErrorText.Render(a.statusLine))
	}

	hints := a.theme.ShortcutKey.Render("tab") + a.theme.ShortcutDesc.Render(" switch pane  ") +
		a.theme.ShortcutKey.Render("/") + a.theme.ShortcutDesc.Render(" search  ") +
		a.theme.ShortcutKey.Render("ctrl+p") + a.theme.ShortcutDesc.Render(" profile  ") +
		a.theme.ShortcutKey.Render("ctrl+c") + a.theme.ShortcutDesc.Render(" quit")

	return a.theme.StatusBar.Width(maxPane(a.width, 10)).Render(hints)
}
