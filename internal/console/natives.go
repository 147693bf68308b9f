package console

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"

	"devconsole/internal/version"
)

// Names of the built-in settings.
const (
	SettingEchoCommands = "console.echo_commands"
	SettingPrompt       = "console.prompt"
)

// RegisterNatives registers the built-in commands and settings. It is meant
// to be called once; a second call fails with ErrDuplicateName.
func (r *Registry) RegisterNatives() error {
	echo, err := RegisterSetting(r, SettingEchoCommands, "Print each command line before it runs", false)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.echo = echo
	r.mu.Unlock()

	var errs error
	register := func(_ *Command, err error) {
		errs = multierr.Append(errs, err)
	}

	_, err = r.RegisterStringSetting(SettingPrompt, "Prompt shown by the interactive shell", "> ")
	register(nil, err)

	register(RegisterCommand0(r, "help", "List all commands", r.nativeHelp))
	register(RegisterCommand1(r, "echo", "Print the argument", func(text string) error {
		r.out.Println(text)
		return nil
	}))
	register(RegisterCommand0(r, "settings", "Print every setting as YAML", func() error {
		return r.DumpSettings(r.out)
	}))
	register(RegisterCommand1(r, "get", "Print the value of a setting", r.nativeGet))
	register(RegisterCommand2(r, "set", "Set a setting from text", r.nativeSet))
	register(RegisterCommand1(r, "reset", "Restore a setting to its default", r.nativeReset))
	register(RegisterCommand0(r, "history", "Print the command history", r.nativeHistory))
	register(RegisterCommand0(r, "clear_history", "Forget the command history", func() error {
		r.ClearHistory()
		return nil
	}))
	register(RegisterCommand0(r, "version", "Print build information", func() error {
		r.out.Println(version.GetFormattedVersion())
		return nil
	}))

	return errs
}

func (r *Registry) nativeHelp() error {
	commands := r.Commands()
	width := 0
	for _, c := range commands {
		width = max(width, lipgloss.Width(c.Usage()))
	}

	usage := lipgloss.NewStyle().Width(width + 2)
	for _, c := range commands {
		r.out.Println(usage.Render(c.Usage()) + c.Description())
	}
	return nil
}

func (r *Registry) nativeGet(name string) error {
	s, ok := r.FindSetting(name)
	if !ok {
		return fmt.Errorf("setting %s: %w", name, ErrNotFound)
	}
	r.out.Setting(s.Name())
	r.out.Println(" = " + s.String())
	return nil
}

func (r *Registry) nativeSet(name, value string) error {
	s, ok := r.FindSetting(name)
	if !ok {
		return fmt.Errorf("setting %s: %w", name, ErrNotFound)
	}
	if err := s.SetString(value); err != nil {
		return err
	}
	r.out.Success(s.Name() + " = " + s.String())
	return nil
}

func (r *Registry) nativeReset(name string) error {
	s, ok := r.FindSetting(name)
	if !ok {
		return fmt.Errorf("setting %s: %w", name, ErrNotFound)
	}
	s.Reset()
	r.out.Success(s.Name() + " = " + s.String())
	return nil
}

func (r *Registry) nativeHistory() error {
	var b bytes.Buffer
	for i, line := range r.GetCommandHistory() {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	r.out.Print(b.String())
	return nil
}
