package output

import (
	"embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed themes/*.yaml
var themeFS embed.FS

// StyleConfig is the YAML form of a single semantic style.
type StyleConfig struct {
	// Foreground is a color string or an adaptive {light, dark} object
	Foreground interface{} `yaml:"foreground,omitempty"`
	Background interface{} `yaml:"background,omitempty"`
	Bold       *bool       `yaml:"bold,omitempty"`
	Italic     *bool       `yaml:"italic,omitempty"`
	Underline  *bool       `yaml:"underline,omitempty"`
}

// ThemeConfig is the YAML form of a theme file.
type ThemeConfig struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]StyleConfig `yaml:"styles"`
}

// Theme maps semantic types to lipgloss styles.
type Theme struct {
	Name   string
	styles map[string]lipgloss.Style
}

// LoadTheme loads one of the embedded themes ("default" or "plain").
func LoadTheme(name string) (*Theme, error) {
	data, err := themeFS.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return ParseTheme(data)
}

// ParseTheme builds a Theme from YAML data.
func ParseTheme(data []byte) (*Theme, error) {
	var config ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	theme := &Theme{
		Name:   config.Name,
		styles: make(map[string]lipgloss.Style, len(config.Styles)),
	}
	for semantic, sc := range config.Styles {
		theme.styles[semantic] = createStyle(sc)
	}
	return theme, nil
}

// GetStyle implements StyleProvider. Unknown semantics render unstyled.
func (t *Theme) GetStyle(semantic string) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable implements StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t != nil
}

func createStyle(config StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if config.Foreground != nil {
		if color := parseColor(config.Foreground); color != nil {
			style = style.Foreground(color)
		}
	}
	if config.Background != nil {
		if color := parseColor(config.Background); color != nil {
			style = style.Background(color)
		}
	}
	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}

	return style
}

// parseColor parses a color value that can be a string or an adaptive light/dark map.
func parseColor(colorValue interface{}) lipgloss.TerminalColor {
	switch v := colorValue.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}
