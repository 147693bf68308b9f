package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"devconsole/internal/logger"
	"devconsole/internal/output"
)

// DefaultName is the logger prefix used when no name is given.
const DefaultName = "console"

// Registry owns every command and setting of one console, parses input lines
// and defers execution to the goroutine that calls Update.
//
// Registration, lookup and history share one lock; the command queue has its
// own, so producers enqueueing never contend with registration.
// Create one per console with New; there is no package-level instance.
type Registry struct {
	name string
	log  *log.Logger
	out  *output.Printer

	mu           sync.RWMutex
	commands     []*Command
	commandIndex map[string]int
	settings     []Setting
	settingIndex map[string]int
	history      []string
	historyLimit int
	echo         *TypedSetting[bool]

	queue *CommandQueue
	newID func() uuid.UUID
	now   func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithName sets the name used as the component logger prefix.
func WithName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.name = name
		}
	}
}

// WithLogger routes diagnostics to l instead of a styled component logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithPrinter sets where built-in commands write their output.
func WithPrinter(p *output.Printer) Option {
	return func(r *Registry) {
		r.out = p
	}
}

// WithHistoryLimit caps the history; the oldest lines are dropped first.
// Zero keeps every line.
func WithHistoryLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// WithQueueCapacity bounds the pending queue. Zero means unbounded.
func WithQueueCapacity(n int) Option {
	return func(r *Registry) {
		r.queue = NewCommandQueue(n)
	}
}

// WithIDSource replaces the generator of queue entry IDs.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(r *Registry) {
		r.newID = fn
	}
}

// WithClock replaces the clock that stamps queue entries.
func WithClock(fn func() time.Time) Option {
	return func(r *Registry) {
		r.now = fn
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		name:         DefaultName,
		commandIndex: make(map[string]int),
		settingIndex: make(map[string]int),
		history:      make([]string, 0),
		queue:        NewCommandQueue(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.NewStyledLogger(r.name)
	}
	if r.out == nil {
		r.out = output.NewPrinter()
	}
	if r.newID != nil {
		r.queue.newID = r.newID
	}
	if r.now != nil {
		r.queue.now = r.now
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// Printer returns the printer built-in commands write to.
func (r *Registry) Printer() *output.Printer {
	return r.out
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n\v\f")
}

// RegisterCommand adds a command with an explicit argument signature. The
// command is findable and invocable as soon as this returns.
func (r *Registry) RegisterCommand(name, description string, handler Handler, kinds ...ArgKind) (*Command, error) {
	if !validName(name) {
		return nil, fmt.Errorf("register command %q: %w", name, ErrEmptyName)
	}
	if handler == nil {
		return nil, fmt.Errorf("register command %s: handler cannot be nil", name)
	}

	cmd := &Command{
		name:        name,
		description: description,
		args:        append([]ArgKind(nil), kinds...),
		handler:     handler,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commandIndex[name]; exists {
		return nil, fmt.Errorf("command %s: %w", name, ErrDuplicateName)
	}
	r.commandIndex[name] = len(r.commands)
	r.commands = append(r.commands, cmd)

	r.log.Debug("Registered command", "command", cmd.Usage())
	return cmd, nil
}

// UnregisterCommand removes a command. Invocations already queued still run.
func (r *Registry) UnregisterCommand(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.commandIndex[name]
	if !exists {
		return fmt.Errorf("command %s: %w", name, ErrNotFound)
	}
	r.commands = append(r.commands[:idx], r.commands[idx+1:]...)
	delete(r.commandIndex, name)
	for i := idx; i < len(r.commands); i++ {
		r.commandIndex[r.commands[i].name] = i
	}
	return nil
}

// FindCommand looks a command up by exact, case-sensitive name.
func (r *Registry) FindCommand(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findCommandLocked(name)
}

func (r *Registry) findCommandLocked(name string) (*Command, bool) {
	idx, exists := r.commandIndex[name]
	if !exists {
		return nil, false
	}
	return r.commands[idx], true
}

// Commands returns all commands in registration order.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Command(nil), r.commands...)
}

// AddSetting registers an already constructed setting.
func (r *Registry) AddSetting(s Setting) error {
	if !validName(s.Name()) {
		return fmt.Errorf("register setting %q: %w", s.Name(), ErrEmptyName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settingIndex[s.Name()]; exists {
		return fmt.Errorf("setting %s: %w", s.Name(), ErrDuplicateName)
	}
	r.settingIndex[s.Name()] = len(r.settings)
	r.settings = append(r.settings, s)

	r.log.Debug("Registered setting", "setting", s.Name(), "default", s.DefaultString())
	return nil
}

// RegisterSetting creates and registers a typed setting.
func RegisterSetting[T ArgType](r *Registry, name, description string, def T) (*TypedSetting[T], error) {
	s := NewSetting(name, description, def)
	if err := r.AddSetting(s); err != nil {
		return nil, err
	}
	return s, nil
}

// RegisterStringSetting registers a text setting.
func (r *Registry) RegisterStringSetting(name, description, def string) (*StringSetting, error) {
	return RegisterSetting(r, name, description, def)
}

// FindSetting looks a setting up by exact name.
func (r *Registry) FindSetting(name string) (Setting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, exists := r.settingIndex[name]
	if !exists {
		return nil, false
	}
	return r.settings[idx], true
}

// LookupSetting returns the typed handle of a setting.
func LookupSetting[T ArgType](r *Registry, name string) (*TypedSetting[T], error) {
	s, ok := r.FindSetting(name)
	if !ok {
		return nil, fmt.Errorf("setting %s: %w", name, ErrNotFound)
	}
	typed, ok := s.(*TypedSetting[T])
	if !ok {
		return nil, fmt.Errorf("setting %s is %s: %w", name, s.Kind(), ErrSettingKind)
	}
	return typed, nil
}

// Settings returns all settings in registration order.
func (r *Registry) Settings() []Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Setting(nil), r.settings...)
}

// ApplySettings sets values by name from loosely typed input such as a
// config file. Every entry is attempted; failures are combined.
func (r *Registry) ApplySettings(values map[string]any) error {
	var errs error
	for name, raw := range values {
		s, ok := r.FindSetting(name)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("setting %s: %w", name, ErrNotFound))
			continue
		}
		text, err := cast.ToStringE(raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("setting %s: %w", name, err))
			continue
		}
		if err := s.SetString(text); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

type settingDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Value       string `yaml:"value"`
	Default     string `yaml:"default"`
	Description string `yaml:"description,omitempty"`
}

// DumpSettings writes every setting as a YAML list in registration order.
func (r *Registry) DumpSettings(w io.Writer) error {
	settings := r.Settings()
	docs := make([]settingDoc, 0, len(settings))
	for _, s := range settings {
		docs = append(docs, settingDoc{
			Name:        s.Name(),
			Type:        s.Kind().String(),
			Value:       s.String(),
			Default:     s.DefaultString(),
			Description: s.Description(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// TryExecuteCommand parses line and queues the matching command for the next
// Update. The line is recorded in history whether or not it parses. Any
// failure is logged once and returned; nothing is queued in that case.
func (r *Registry) TryExecuteCommand(line string) error {
	err := r.tryExecute(line)
	if err != nil {
		r.log.Error("Command rejected", "line", line, "error", err)
	}
	return err
}

func (r *Registry) tryExecute(line string) error {
	tokens := strings.Fields(line)

	r.mu.Lock()
	r.storeInHistoryLocked(line)
	var (
		cmd    *Command
		exists bool
	)
	if len(tokens) > 0 {
		cmd, exists = r.findCommandLocked(tokens[0])
	}
	r.mu.Unlock()

	if len(tokens) == 0 {
		return ErrEmptyLine
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, tokens[0])
	}

	args, err := cmd.Parse(tokens[1:])
	if err != nil {
		return err
	}

	entry, err := r.queue.Enqueue(cmd, args, line)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	logger.CommandQueued(r.log, cmd.name, entry.ID.String(), r.queue.Len())
	return nil
}

func (r *Registry) storeInHistoryLocked(line string) {
	r.history = append(r.history, line)
	if r.historyLimit > 0 && len(r.history) > r.historyLimit {
		r.history = r.history[len(r.history)-r.historyLimit:]
	}
}

// Update drains the queue on the calling goroutine, which becomes the owning
// goroutine for command execution. It reports whether anything ran. A
// failing or panicking handler does not stop the remaining entries.
func (r *Registry) Update() bool {
	return r.queue.Drain(r.execute) > 0
}

func (r *Registry) execute(entry Entry) {
	id := entry.ID.String()
	defer func() {
		if p := recover(); p != nil {
			logger.CommandExecuted(r.log, entry.Command.name, id, fmt.Errorf("panic: %v", p))
		}
	}()

	if r.echoEnabled() {
		r.out.Command(entry.Line)
	}
	logger.CommandExecuted(r.log, entry.Command.name, id, entry.Command.Invoke(entry.Args))
}

func (r *Registry) echoEnabled() bool {
	r.mu.RLock()
	echo := r.echo
	r.mu.RUnlock()
	return echo != nil && echo.Get()
}

// Pending returns the number of queued invocations.
func (r *Registry) Pending() int {
	return r.queue.Len()
}

// GetCommandHistory returns a copy of every line passed to TryExecuteCommand,
// oldest first. Call it from the goroutine that calls Update.
func (r *Registry) GetCommandHistory() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

// ClearHistory forgets every recorded line.
func (r *Registry) ClearHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = r.history[:0]
}
