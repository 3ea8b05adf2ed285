package signature

import (
	"fmt"
	"reflect"
)

// Parameter is one normalized parameter: descriptor defaults already
// unwrapped, calling convention already corrected.
type Parameter struct {
	// Name is the declared parameter name, unique within a signature.
	Name string

	// Type is the parameter's Go type, taken from the command function.
	Type reflect.Type

	// Default is the normalized default value. Only meaningful when
	// HasDefault is true. May be untyped nil for nilable types.
	Default any

	// HasDefault reports whether the parameter is optional. A parameter
	// whose descriptor default was the required-sentinel has no default.
	HasDefault bool

	// KeywordOnly reports whether the parameter can only be supplied by
	// name. Option-style descriptors force this regardless of position.
	KeywordOnly bool

	// Help is the descriptor's help text, passed through unchanged.
	Help string
}

// Signature is a corrected parameter list in declaration order.
type Signature struct {
	params []Parameter
	byName map[string]int
}

// newSignature indexes params by name. Callers have already validated
// uniqueness.
func newSignature(params []Parameter) *Signature {
	byName := make(map[string]int, len(params))
	for i, p := range params {
		byName[p.Name] = i
	}
	return &Signature{params: params, byName: byName}
}

// New builds a signature directly from normalized parameters. The record
// synthesizer uses it to derive a constructor signature from a field list.
func New(params []Parameter) (*Signature, error) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, &SignatureError{
				Code:    ErrCodeEmptyParameterName,
				Message: "parameter with an empty name",
			}
		}
		if seen[p.Name] {
			return nil, &SignatureError{
				Code:    ErrCodeDuplicateParameter,
				Message: fmt.Sprintf("duplicate parameter %q", p.Name),
				Param:   p.Name,
			}
		}
		seen[p.Name] = true
	}
	return newSignature(params), nil
}

// Params returns the parameters in declaration order.
func (s *Signature) Params() []Parameter {
	out := make([]Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Len returns the number of parameters.
func (s *Signature) Len() int { return len(s.params) }

// Param returns the named parameter.
func (s *Signature) Param(name string) (Parameter, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Parameter{}, false
	}
	return s.params[i], true
}

// Positional returns the parameters that accept positional values, in order.
func (s *Signature) Positional() []Parameter {
	var out []Parameter
	for _, p := range s.params {
		if !p.KeywordOnly {
			out = append(out, p)
		}
	}
	return out
}

// RequiredPositional returns how many positional parameters have no default.
func (s *Signature) RequiredPositional() int {
	n := 0
	for _, p := range s.params {
		if !p.KeywordOnly && !p.HasDefault {
			n++
		}
	}
	return n
}

// Coerce adapts v to type t. It accepts assignable values, converts between
// numeric values of the same genre (integer to integer, float to float), and
// maps untyped nil to the zero value of nilable types.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if sameNumericGenre(rv.Kind(), t.Kind()) && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	// Box plain values for pointer-typed parameters, so an optional *int
	// parameter accepts a bare int.
	if t.Kind() == reflect.Pointer {
		if ev, err := Coerce(v, t.Elem()); err == nil {
			pv := reflect.New(t.Elem())
			pv.Elem().Set(ev)
			return pv, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%s is not a valid %s", rv.Type(), t)
}

// sameNumericGenre reports whether both kinds are integers or both floats.
// Cross-genre conversions (string to int, float to int) are rejected so that
// binding stays as strict as an ordinary call.
func sameNumericGenre(a, b reflect.Kind) bool {
	return (isInteger(a) && isInteger(b)) || (isFloat(a) && isFloat(b))
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
