package console

import (
	"strings"
)

// Handler executes a command with its decoded arguments. It runs on the
// goroutine that calls Registry.Update.
type Handler func(args *ArgStack) error

// Command describes a registered console command. The registry owns every
// Command; callers only hold references returned by FindCommand.
type Command struct {
	name        string
	description string
	args        []ArgKind
	handler     Handler
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Description returns the help text given at registration.
func (c *Command) Description() string {
	return c.description
}

// Args returns a copy of the declared argument kinds.
func (c *Command) Args() []ArgKind {
	out := make([]ArgKind, len(c.args))
	copy(out, c.args)
	return out
}

// Arity returns the number of arguments the command expects.
func (c *Command) Arity() int {
	return len(c.args)
}

// Usage renders the invocation syntax, e.g. "set_volume <int>".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, k := range c.args {
		b.WriteString(" <")
		b.WriteString(k.String())
		b.WriteString(">")
	}
	return b.String()
}

// Parse converts raw argument tokens into an ArgStack matching the signature.
func (c *Command) Parse(tokens []string) (*ArgStack, error) {
	return BuildArgStack(c.name, c.args, tokens)
}

// Invoke runs the handler directly on the calling goroutine.
func (c *Command) Invoke(args *ArgStack) error {
	return c.handler(args)
}
