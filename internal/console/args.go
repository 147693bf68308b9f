package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ArgKind identifies the type of a command argument or setting value.
type ArgKind int

const (
	// KindString passes the raw token through unchanged.
	KindString ArgKind = iota
	// KindInt is a base-10 signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit floating point number.
	KindFloat
	// KindBool accepts true/false, 1/0, yes/no and on/off, case-insensitively.
	KindBool
)

func (k ArgKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	errInvalidBool  = errors.New("invalid boolean")
	errInvalidFloat = errors.New("invalid decimal number")
)

// boolTokens is the accepted boolean vocabulary, keyed by lower-case token.
var boolTokens = map[string]bool{
	"true":  true,
	"false": false,
	"1":     true,
	"0":     false,
	"yes":   true,
	"no":    false,
	"on":    true,
	"off":   false,
}

// Value is a single decoded argument tagged with its kind.
type Value struct {
	Kind ArgKind
	i    int64
	f    float64
	b    bool
	s    string
}

// IntValue, FloatValue, BoolValue and StringValue build tagged values directly.
func IntValue(v int64) Value     { return Value{Kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, f: v} }
func BoolValue(v bool) Value     { return Value{Kind: KindBool, b: v} }
func StringValue(v string) Value { return Value{Kind: KindString, s: v} }
func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Bool() bool       { return v.b }
func (v Value) Text() string     { return v.s }

// String renders the value the way it would be typed on the console.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// ParseValue converts a single token to the given kind.
func ParseValue(kind ArgKind, token string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(token), nil
	case KindInt:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case KindFloat:
		f, err := parseDecimal(token)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case KindBool:
		b, ok := boolTokens[strings.ToLower(token)]
		if !ok {
			return Value{}, errInvalidBool
		}
		return BoolValue(b), nil
	default:
		return Value{}, fmt.Errorf("unsupported kind %s", kind)
	}
}

// parseDecimal accepts plain decimal notation with an optional exponent.
// Digit separators, hex floats, infinities and NaN are rejected.
func parseDecimal(token string) (float64, error) {
	digits := strings.TrimLeft(token, "+-")
	if strings.ContainsRune(token, '_') ||
		strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, errInvalidFloat
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errInvalidFloat
	}
	return f, nil
}

// ArgStack is the decoded, type-checked argument list of one invocation.
type ArgStack struct {
	values []Value
	pos    int
}

// NewArgStack builds a stack from already decoded values.
func NewArgStack(values ...Value) *ArgStack {
	return &ArgStack{values: values}
}

// BuildArgStack converts tokens positionally against kinds. The token count must match.
func BuildArgStack(command string, kinds []ArgKind, tokens []string) (*ArgStack, error) {
	if len(tokens) != len(kinds) {
		return nil, &ArityError{Command: command, Want: len(kinds), Got: len(tokens)}
	}

	values := make([]Value, len(kinds))
	for i, kind := range kinds {
		v, err := ParseValue(kind, tokens[i])
		if err != nil {
			return nil, &ConversionError{
				Command:  command,
				Index:    i,
				Token:    tokens[i],
				Expected: kind,
				Err:      err,
			}
		}
		values[i] = v
	}
	return &ArgStack{values: values}, nil
}

// Len returns the number of arguments.
func (s *ArgStack) Len() int {
	return len(s.values)
}

// Kinds returns the kind of each argument in order.
func (s *ArgStack) Kinds() []ArgKind {
	kinds := make([]ArgKind, len(s.values))
	for i, v := range s.values {
		kinds[i] = v.Kind
	}
	return kinds
}

// Value returns the i-th argument.
func (s *ArgStack) Value(i int) Value {
	return s.values[i]
}

func (s *ArgStack) Int(i int) int64     { return s.values[i].i }
func (s *ArgStack) Float(i int) float64 { return s.values[i].f }
func (s *ArgStack) Bool(i int) bool     { return s.values[i].b }
func (s *ArgStack) String(i int) string { return s.values[i].s }

// Remaining reports how many arguments have not been popped yet.
func (s *ArgStack) Remaining() int {
	return len(s.values) - s.pos
}

// Pop returns the next argument in declared order. It panics past the end,
// which can only happen when a handler reads more than its signature declares.
func (s *ArgStack) Pop() Value {
	if s.pos >= len(s.values) {
		panic(fmt.Sprintf("console: pop past end of %d-argument stack", len(s.values)))
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

func (s *ArgStack) PopInt() int64     { return s.Pop().i }
func (s *ArgStack) PopFloat() float64 { return s.Pop().f }
func (s *ArgStack) PopBool() bool     { return s.Pop().b }
func (s *ArgStack) PopString() string { return s.Pop().s }
