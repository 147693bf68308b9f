package console

import (
	"fmt"
	"reflect"
)

// ArgType is the set of Go types a typed command parameter or setting may use.
// Named types over these (type Volume int) are accepted too.
type ArgType interface {
	~int | ~int64 | ~float64 | ~bool | ~string
}

// KindOf reports the ArgKind a Go type maps to.
func KindOf[T ArgType]() ArgKind {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Int64:
		return KindInt
	case reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	default:
		return KindString
	}
}

// As converts a decoded value into T. It fails when the kinds differ or an
// integer does not fit into T.
func As[T ArgType](v Value) (T, error) {
	var out T
	if want := KindOf[T](); v.Kind != want {
		return out, fmt.Errorf("value of kind %s cannot be used as %s", v.Kind, want)
	}

	rv := reflect.ValueOf(&out).Elem()
	switch v.Kind {
	case KindInt:
		if rv.OverflowInt(v.i) {
			return out, fmt.Errorf("value %d overflows %s", v.i, rv.Type())
		}
		rv.SetInt(v.i)
	case KindFloat:
		rv.SetFloat(v.f)
	case KindBool:
		rv.SetBool(v.b)
	default:
		rv.SetString(v.s)
	}
	return out, nil
}

// ValueOf tags a Go value with its ArgKind.
func ValueOf[T ArgType](v T) Value {
	rv := reflect.ValueOf(v)
	switch KindOf[T]() {
	case KindInt:
		return IntValue(rv.Int())
	case KindFloat:
		return FloatValue(rv.Float())
	case KindBool:
		return BoolValue(rv.Bool())
	default:
		return StringValue(rv.String())
	}
}

func pop[T ArgType](args *ArgStack, index int, errp *error) T {
	v := args.Pop()
	out, err := As[T](v)
	if err != nil && *errp == nil {
		*errp = &ConversionError{Index: index, Token: v.String(), Expected: KindOf[T](), Err: err}
	}
	return out
}

// Func0 adapts a parameterless function into a Handler.
func Func0(fn func() error) (Handler, []ArgKind) {
	return func(*ArgStack) error { return fn() }, nil
}

// Func1 adapts a one-parameter function; the signature is derived from A.
func Func1[A ArgType](fn func(A) error) (Handler, []ArgKind) {
	h := func(args *ArgStack) error {
		var err error
		a := pop[A](args, 0, &err)
		if err != nil {
			return err
		}
		return fn(a)
	}
	return h, []ArgKind{KindOf[A]()}
}

// Func2 adapts a two-parameter function.
func Func2[A, B ArgType](fn func(A, B) error) (Handler, []ArgKind) {
	h := func(args *ArgStack) error {
		var err error
		a := pop[A](args, 0, &err)
		b := pop[B](args, 1, &err)
		if err != nil {
			return err
		}
		return fn(a, b)
	}
	return h, []ArgKind{KindOf[A](), KindOf[B]()}
}

// Func3 adapts a three-parameter function.
func Func3[A, B, C ArgType](fn func(A, B, C) error) (Handler, []ArgKind) {
	h := func(args *ArgStack) error {
		var err error
		a := pop[A](args, 0, &err)
		b := pop[B](args, 1, &err)
		c := pop[C](args, 2, &err)
		if err != nil {
			return err
		}
		return fn(a, b, c)
	}
	return h, []ArgKind{KindOf[A](), KindOf[B](), KindOf[C]()}
}

// Func4 adapts a four-parameter function.
func Func4[A, B, C, D ArgType](fn func(A, B, C, D) error) (Handler, []ArgKind) {
	h := func(args *ArgStack) error {
		var err error
		a := pop[A](args, 0, &err)
		b := pop[B](args, 1, &err)
		c := pop[C](args, 2, &err)
		d := pop[D](args, 3, &err)
		if err != nil {
			return err
		}
		return fn(a, b, c, d)
	}
	return h, []ArgKind{KindOf[A](), KindOf[B](), KindOf[C](), KindOf[D]()}
}

// RegisterCommand0 registers a command that takes no arguments.
func RegisterCommand0(r *Registry, name, description string, fn func() error) (*Command, error) {
	h, kinds := Func0(fn)
	return r.RegisterCommand(name, description, h, kinds...)
}

// RegisterCommand1 registers a command whose single argument kind is derived from A.
func RegisterCommand1[A ArgType](r *Registry, name, description string, fn func(A) error) (*Command, error) {
	h, kinds := Func1(fn)
	return r.RegisterCommand(name, description, h, kinds...)
}

// RegisterCommand2 registers a two-argument command.
func RegisterCommand2[A, B ArgType](r *Registry, name, description string, fn func(A, B) error) (*Command, error) {
	h, kinds := Func2(fn)
	return r.RegisterCommand(name, description, h, kinds...)
}

// RegisterCommand3 registers a three-argument command.
func RegisterCommand3[A, B, C ArgType](r *Registry, name, description string, fn func(A, B, C) error) (*Command, error) {
	h, kinds := Func3(fn)
	return r.RegisterCommand(name, description, h, kinds...)
}

// RegisterCommand4 registers a four-argument command.
func RegisterCommand4[A, B, C, D ArgType](r *Registry, name, description string, fn func(A, B, C, D) error) (*Command, error) {
	h, kinds := Func4(fn)
	return r.RegisterCommand(name, description, h, kinds...)
}
