// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// MarkdownRenderer renders message bodies as markdown for terminal display.
// Construction can fail on exotic terminals, in which case Render falls back
// to the raw content.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer that word-wraps at the given width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}

	return &MarkdownRenderer{renderer: r, width: width}
}

// Render renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func (m *MarkdownRenderer) Render(content string) string {
	if m == nil || m.renderer == nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// looksLikeMarkdown reports whether a message body uses markdown constructs
// worth running through the renderer. Plain chat text is left untouched so
// casual punctuation doesn't get reinterpreted.
func looksLikeMarkdown(body string) bool {
	if strings.Contains(body, "```") {
		return true
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# "),
			strings.HasPrefix(trimmed, "## "),
			strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "* "),
			strings.HasPrefix(trimmed, "> "):
			return true
		}
	}
	return strings.Contains(body, "**") || strings.Contains(body, "`")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting to code using the chroma library.
// This provides proper ANSI-safe syntax highlighting for terminal output.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// HighlightFence extracts and highlights a single fenced code block.
// Input is the full fence including the ``` markers; returns highlighted
// code lines without the markers, or the input unchanged when it is not
// a well-formed fence.
func HighlightFence(fence string) string {
	trimmed := strings.TrimSpace(fence)
	if !strings.HasPrefix(trimmed, "```") {
		return fence
	}

	rest := strings.TrimPrefix(trimmed, "```")
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return fence
	}

	language := strings.TrimSpace(rest[:newline])
	body := rest[newline+1:]
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}

	return strings.TrimRight(highlightCode(strings.TrimRight(body, "\n"), language), "\n")
}
