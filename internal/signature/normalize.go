package signature

import (
	"fmt"
	"reflect"

	"github.com/cmdrec/cmdrec/internal/param"
)

// Normalize builds the corrected signature for a command function.
//
// fn supplies the parameter types (one spec per parameter, in order); each
// spec supplies the name and the declared default. Descriptor defaults are
// unwrapped to their inner value, the required-sentinel becomes "no
// default", and option-style descriptors are reclassified keyword-only.
// Plain defaults pass through unchanged.
//
// Normalize is a pure function with no side effects. It enforces no
// ordering invariant: a required parameter may legally follow an optional
// one here; binding simply requires the caller to supply it.
func Normalize(fn any, specs []param.Spec) (*Signature, error) {
	if fn == nil {
		return nil, &SignatureError{
			Code:    ErrCodeNotAFunction,
			Message: "command function is nil",
		}
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return nil, &SignatureError{
			Code:    ErrCodeNotAFunction,
			Message: fmt.Sprintf("command must be a function, got %s", t),
		}
	}
	if t.IsVariadic() {
		return nil, &SignatureError{
			Code:    ErrCodeVariadicFunction,
			Message: "variadic command functions are not supported",
		}
	}
	if t.NumIn() != len(specs) {
		return nil, &SignatureError{
			Code: ErrCodeArityMismatch,
			Message: fmt.Sprintf("function takes %d parameters but %d specs were declared",
				t.NumIn(), len(specs)),
		}
	}

	params := make([]Parameter, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		name := spec.Name()
		if name == "" {
			return nil, &SignatureError{
				Code:    ErrCodeEmptyParameterName,
				Message: fmt.Sprintf("spec %d has an empty name", i),
			}
		}
		if seen[name] {
			return nil, &SignatureError{
				Code:    ErrCodeDuplicateParameter,
				Message: fmt.Sprintf("duplicate parameter %q", name),
				Param:   name,
			}
		}
		seen[name] = true

		p := Parameter{Name: name, Type: t.In(i)}
		switch s := spec.(type) {
		case *param.Descriptor:
			p.KeywordOnly = s.Keyword()
			p.Help = s.Help()
			if def := s.Default(); !param.IsRequired(def) {
				p.Default = def
				p.HasDefault = true
			}
		case *param.PlainSpec:
			if def, ok := s.Default(); ok && !param.IsRequired(def) {
				p.Default = def
				p.HasDefault = true
			}
		}
		if p.HasDefault {
			if _, err := Coerce(p.Default, p.Type); err != nil {
				return nil, &SignatureError{
					Code:    ErrCodeDefaultMismatch,
					Message: fmt.Sprintf("default for %q: %v", name, err),
					Param:   name,
				}
			}
		}
		params = append(params, p)
	}

	return newSignature(params), nil
}
