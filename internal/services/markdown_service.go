package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"courseforge/internal/logger"
	"courseforge/pkg/coursetypes"
)

// MarkdownService renders model replies as styled terminal output using
// Glamour. The style follows the user's theme setting.
type MarkdownService struct {
	initialized bool
	renderer    *glamour.TermRenderer
}

// NewMarkdownService creates a new MarkdownService instance.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize sets up the MarkdownService with auto-style detection.
func (m *MarkdownService) Initialize() error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	m.renderer = renderer
	m.initialized = true

	logger.Debug("MarkdownService initialized")
	return nil
}

// Render renders markdown content to ANSI terminal output.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}

	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// RenderForTheme renders markdown with the glamour style matching the given
// theme. Unknown themes fall back to the default renderer.
func (m *MarkdownService) RenderForTheme(markdown string, theme coursetypes.Theme) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}

	style := "auto"
	switch theme {
	case coursetypes.ThemeDark:
		style = "dark"
	case coursetypes.ThemeLight:
		style = "light"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Debug("Falling back to default markdown renderer", "style", style, "error", err)
		return m.Render(markdown)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}
