// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderPresence lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarSearch       lipgloss.Style
	ChatItem            lipgloss.Style
	ChatItemSelected    lipgloss.Style
	ChatItemName        lipgloss.Style
	ChatItemPreview     lipgloss.Style
	ChatItemTime        lipgloss.Style
	UnreadBadge         lipgloss.Style
	PresenceOnline      lipgloss.Style
	PresenceOffline     lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	OutgoingBubble lipgloss.Style
	IncomingBubble lipgloss.Style
	BubbleSender   lipgloss.Style
	BubbleTime     lipgloss.Style

	// ==========================================================================
	// TYPING INDICATOR STYLES
	// ==========================================================================

	Spinner    lipgloss.Style
	TypingText lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// AUTH SCREEN STYLES
	// ==========================================================================

	AuthBox     lipgloss.Style
	AuthTitle   lipgloss.Style
	AuthLabel   lipgloss.Style
	AuthError   lipgloss.Style
	AuthHint    lipgloss.Style
	AuthButton  lipgloss.Style
	AuthFocused lipgloss.Style

	// ==========================================================================
	// DRAWER STYLES
	// ==========================================================================

	DrawerBox          lipgloss.Style
	DrawerTitle        lipgloss.Style
	DrawerItem         lipgloss.Style
	DrawerItemSelected lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ErrorText    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.HeaderPresence = lipgloss.NewStyle().
		Foreground(Emerald)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay)
	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Padding(0, 1)
	t.SidebarSearch = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ChatItem = lipgloss.NewStyle().
		Padding(0, 1)
	t.ChatItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(SelectionBg).
		Bold(true)
	t.ChatItemName = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.ChatItemPreview = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ChatItemTime = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.UnreadBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)
	t.PresenceOnline = lipgloss.NewStyle().
		Foreground(Emerald)
	t.PresenceOffline = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles
	t.OutgoingBubble = lipgloss.NewStyle().
		Foreground(OutgoingBubbleFg).
		Background(OutgoingBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OutgoingBubbleBorder).
		Padding(0, 1)
	t.IncomingBubble = lipgloss.NewStyle().
		Foreground(IncomingBubbleFg).
		Background(IncomingBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(IncomingBubbleBorder).
		Padding(0, 1)
	t.BubbleSender = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)
	t.BubbleTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Typing indicator
	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)
	t.TypingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Auth screens
	t.AuthBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3)
	t.AuthTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.AuthLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.AuthError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.AuthHint = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.AuthButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.AuthFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 2)

	// Drawer
	t.DrawerBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.DrawerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.DrawerItem = lipgloss.NewStyle().
		Padding(0, 1)
	t.DrawerItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(SelectionBg).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
