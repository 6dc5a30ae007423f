// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/identity"
	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SignedInMsg announces a successful authentication.
type SignedInMsg struct {
	User model.User
}

// authResultMsg carries the provider's answer back into the update loop.
type authResultMsg struct {
	session *identity.Session
	err     error
}

// =============================================================================
// SCREEN STATE
// =============================================================================

// Mode selects which form is showing.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
	ModeMFACode // sign-in succeeded but needs a verification code
)

// field indices per mode; fields are a flat list and the active mode
// decides which are visible.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCode
	fieldCount
)

// Model is the Bubble Tea model for the auth screens.
type Model struct {
	theme    *styles.Theme
	provider identity.Provider

	mode    Mode
	focus   int
	fields  [fieldCount]textinput.Model
	errLine string
	busy    bool

	width  int
	height int
}

// New creates the auth screen in sign-in mode.
func New(theme *styles.Theme, provider identity.Provider) Model {
	m := Model{
		theme:    theme,
		provider: provider,
		mode:     ModeSignIn,
	}

	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	code := textinput.New()
	code.Placeholder = "6-digit code"
	code.CharLimit = 6

	m.fields[fieldName] = name
	m.fields[fieldEmail] = email
	m.fields[fieldPassword] = password
	m.fields[fieldCode] = code

	m.focus = fieldEmail
	m.fields[fieldEmail].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the visible form.
func (m Model) Mode() Mode {
	return m.mode
}

// ErrorLine returns the current error text, for tests.
func (m Model) ErrorLine() string {
	return m.errLine
}

// SetSize resizes the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.fields {
		m.fields[i].Width = 36
	}
}

// visibleFields returns the field indices shown in the current mode, in
// tab order.
func (m Model) visibleFields() []int {
	switch m.mode {
	case ModeSignUp:
		return []int{fieldName, fieldEmail, fieldPassword}
	case ModeMFACode:
		return []int{fieldCode}
	default:
		return []int{fieldEmail, fieldPassword}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles auth screen input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case authResultMsg:
		return m.handleAuthResult(msg)
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		return m, m.submit()

	case "ctrl+s":
		// Toggle between sign-in and sign-up.
		m.toggleMode()
		return m, nil

	case "esc":
		if m.mode == ModeMFACode {
			m.mode = ModeSignIn
			m.errLine = ""
			m.setFocus(fieldEmail)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus moves focus through the visible fields.
func (m *Model) cycleFocus(dir int) {
	visible := m.visibleFields()
	pos := 0
	for i, f := range visible {
		if f == m.focus {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(visible)) % len(visible)
	m.setFocus(visible[pos])
}

func (m *Model) setFocus(field int) {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	m.focus = field
	m.fields[field].Focus()
}

// toggleMode switches between the sign-in and sign-up forms.
func (m *Model) toggleMode() {
	if m.mode == ModeSignUp {
		m.mode = ModeSignIn
		m.setFocus(fieldEmail)
	} else {
		m.mode = ModeSignUp
		m.setFocus(fieldName)
	}
	m.errLine = ""
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit validates the visible form and calls the provider in the
// background. Validation failures stay on-screen as the error line.
func (m *Model) submit() tea.Cmd {
	email := strings.TrimSpace(m.fields[fieldEmail].Value())
	password := m.fields[fieldPassword].Value()
	name := strings.TrimSpace(m.fields[fieldName].Value())
	code := strings.TrimSpace(m.fields[fieldCode].Value())

	switch m.mode {
	case ModeSignUp:
		if name == "" || email == "" || password == "" {
			m.errLine = "All fields are required"
			return nil
		}
	case ModeMFACode:
		if code == "" {
			m.errLine = "Enter the verification code"
			return nil
		}
	default:
		if email == "" || password == "" {
			m.errLine = "Email and password are required"
			return nil
		}
	}

	m.errLine = ""
	m.busy = true

	provider := m.provider
	mode := m.mode
	return func() tea.Msg {
		ctx := context.Background()
		var session *identity.Session
		var err error

		switch mode {
		case ModeSignUp:
			session, err = provider.SignUp(ctx, name, email, password)
		case ModeMFACode:
			session, err = provider.SignIn(ctx, email, password, code)
		default:
			session, err = provider.SignIn(ctx, email, password, "")
		}

		return authResultMsg{session: session, err: err}
	}
}

// handleAuthResult routes the provider's answer: success signs the user
// in, ErrMFARequired advances to the code prompt, anything else becomes
// the error line.
func (m Model) handleAuthResult(msg authResultMsg) (Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		if errors.Is(msg.err, identity.ErrMFARequired) {
			m.mode = ModeMFACode
			m.errLine = ""
			m.fields[fieldCode].Reset()
			m.setFocus(fieldCode)
			return m, nil
		}
		m.errLine = msg.err.Error()
		return m, nil
	}

	user := msg.session.User
	return m, func() tea.Msg {
		return SignedInMsg{User: user}
	}
}
