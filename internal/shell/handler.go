// Package shell connects a console registry to its input sources: the
// interactive ishell front-end, script files, and the host loop that owns
// command execution.
package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/abiosoft/readline"

	"devconsole/internal/console"
)

// exitCommand ends an interactive session without reaching the console.
const exitCommand = "exit"

// isComment reports lines that are skipped before reaching the console.
func isComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// processLine normalises raw input and submits it. Blank and comment lines
// are ignored and return false.
func processLine(h *Host, raw string) (bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || isComment(line) {
		return false, nil
	}
	return true, h.Submit(line)
}

// lineSource is the part of *ishell.Shell the interactive loop needs.
type lineSource interface {
	ReadLineErr() (string, error)
	Println(val ...interface{})
}

// NewInteractive builds an ishell shell prompting with the console.prompt
// setting of h's registry.
func NewInteractive(h *Host) *ishell.Shell {
	sh := ishell.New()

	prompt := "> "
	if s, err := console.LookupSetting[string](h.Registry(), console.SettingPrompt); err == nil {
		prompt = s.Get()
	}
	sh.SetPrompt(prompt)
	return sh
}

// RunInteractive reads lines from sh and submits each one to h exactly as
// typed until EOF, interrupt or "exit". ishell's Run is not used: it
// shell-splits input, so quotes and backslashes would never reach the console.
func RunInteractive(sh *ishell.Shell, h *Host) error {
	defer sh.Close()
	return readLoop(sh, h)
}

func readLoop(src lineSource, h *Host) error {
	for {
		line, err := src.ReadLineErr()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == exitCommand {
			return nil
		}

		if _, err := processLine(h, line); err != nil {
			src.Println("Error: " + err.Error())
			if !errors.Is(err, console.ErrArityMismatch) && !errors.Is(err, console.ErrArgumentConversion) {
				src.Println("Type 'help' for available commands")
			}
		}
	}
}
