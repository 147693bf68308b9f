package output

import (
	"fmt"
	"io"
	"strings"
)

// Option configures a Printer.
type Option func(*Printer)

var modeNames = map[string]Mode{
	"auto":   ModeAuto,
	"styled": ModeStyled,
	"plain":  ModePlain,
	"json":   ModeJSON,
}

// ParseMode maps a config or flag value (auto, styled, plain, json) to a Mode.
func ParseMode(name string) (Mode, error) {
	mode, ok := modeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ModeAuto, fmt.Errorf("unknown output mode %q (want auto, styled, plain or json)", name)
	}
	return mode, nil
}

// String returns the name ParseMode accepts for m.
func (m Mode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// WithStyles styles output through provider. A nil or unavailable provider
// leaves the printer on plain prefixes.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styleProvider = provider
		}
	}
}

// WithWriter redirects output from os.Stdout to writer.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// WithMode selects the rendering mode. ModePlain ignores any style provider.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
		p.forcePlain = mode == ModePlain
	}
}

// TestMode gives deterministic plain output.
func TestMode() Option {
	return WithMode(ModePlain)
}

// Silent drops all output, including writes through the io.Writer interface.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}
