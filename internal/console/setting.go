package console

import (
	"sync"
)

// Setting is the type-erased view of a registered setting.
type Setting interface {
	Name() string
	Description() string
	Kind() ArgKind
	// String returns the current value in console syntax.
	String() string
	DefaultString() string
	// SetString parses text with the same rules as command arguments.
	SetString(text string) error
	Reset()
	IsDefault() bool
}

// TypedSetting holds a named value of type T together with its default.
type TypedSetting[T ArgType] struct {
	name        string
	description string
	def         T

	mu    sync.RWMutex
	value T
}

// StringSetting is the text specialization of TypedSetting.
type StringSetting = TypedSetting[string]

// NewSetting creates a setting initialised to its default.
func NewSetting[T ArgType](name, description string, def T) *TypedSetting[T] {
	return &TypedSetting[T]{
		name:        name,
		description: description,
		def:         def,
		value:       def,
	}
}

func (s *TypedSetting[T]) Name() string        { return s.name }
func (s *TypedSetting[T]) Description() string { return s.description }
func (s *TypedSetting[T]) Kind() ArgKind       { return KindOf[T]() }
func (s *TypedSetting[T]) Default() T          { return s.def }

// Get returns the current value.
func (s *TypedSetting[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the current value.
func (s *TypedSetting[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// Reset restores the default value.
func (s *TypedSetting[T]) Reset() {
	s.Set(s.def)
}

// IsDefault reports whether the current value equals the default.
func (s *TypedSetting[T]) IsDefault() bool {
	return s.Get() == s.def
}

func (s *TypedSetting[T]) String() string {
	return format(s.Get())
}

func (s *TypedSetting[T]) DefaultString() string {
	return format(s.def)
}

// SetString parses text into T and stores it. The value is unchanged on error.
func (s *TypedSetting[T]) SetString(text string) error {
	kind := KindOf[T]()
	v, err := ParseValue(kind, text)
	if err != nil {
		return &ConversionError{Command: s.name, Index: 0, Token: text, Expected: kind, Err: err}
	}
	typed, err := As[T](v)
	if err != nil {
		return &ConversionError{Command: s.name, Index: 0, Token: text, Expected: kind, Err: err}
	}
	s.Set(typed)
	return nil
}

func format[T ArgType](v T) string {
	return ValueOf(v).String()
}
