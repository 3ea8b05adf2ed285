package signature

import (
	"fmt"
	"reflect"
)

// Bound holds the values bound against a signature. Optional parameters not
// yet filled in remain unset until ApplyDefaults.
type Bound struct {
	sig    *Signature
	values []reflect.Value
	set    []bool
}

// Bind binds positional and named values against the signature.
//
// Positional values fill the positional parameters in declaration order;
// keyword-only parameters are skipped and can only be supplied by name.
// Bind fails with a BindError when a named value targets an unknown
// parameter, when there are more positional values than positional
// parameters, when a parameter is supplied twice, when a value is not
// assignable to its parameter's type, or when a parameter with no default
// is left unsupplied.
func (s *Signature) Bind(args []any, named map[string]any) (*Bound, error) {
	b := &Bound{
		sig:    s,
		values: make([]reflect.Value, len(s.params)),
		set:    make([]bool, len(s.params)),
	}

	// Positional values target the positional parameters in order.
	next := 0
	for _, arg := range args {
		for next < len(s.params) && s.params[next].KeywordOnly {
			next++
		}
		if next >= len(s.params) {
			return nil, &BindError{
				Code:    ErrCodeTooManyPositional,
				Message: "too many positional arguments",
			}
		}
		if err := b.assign(next, arg); err != nil {
			return nil, err
		}
		next++
	}

	for name, val := range named {
		i, ok := s.byName[name]
		if !ok {
			return nil, &BindError{
				Code:    ErrCodeUnexpectedKeyword,
				Message: fmt.Sprintf("unexpected keyword argument %q", name),
				Param:   name,
			}
		}
		if b.set[i] {
			return nil, &BindError{
				Code:    ErrCodeDuplicateValue,
				Message: fmt.Sprintf("multiple values for argument %q", name),
				Param:   name,
			}
		}
		if err := b.assign(i, val); err != nil {
			return nil, err
		}
	}

	for i, p := range s.params {
		if !b.set[i] && !p.HasDefault {
			return nil, &BindError{
				Code:    ErrCodeMissingRequired,
				Message: fmt.Sprintf("missing required argument %q", p.Name),
				Param:   p.Name,
			}
		}
	}

	return b, nil
}

// assign type-checks one value and stores it.
func (b *Bound) assign(i int, val any) error {
	p := b.sig.params[i]
	rv, err := Coerce(val, p.Type)
	if err != nil {
		return &BindError{
			Code:    ErrCodeTypeMismatch,
			Message: fmt.Sprintf("argument %q: %v", p.Name, err),
			Param:   p.Name,
		}
	}
	b.values[i] = rv
	b.set[i] = true
	return nil
}

// ApplyDefaults fills every omitted optional parameter with its normalized
// default. Bind has already rejected missing required parameters, so after
// ApplyDefaults every slot holds a value.
func (b *Bound) ApplyDefaults() {
	for i, p := range b.sig.params {
		if b.set[i] || !p.HasDefault {
			continue
		}
		// Defaults were validated during normalization.
		rv, err := Coerce(p.Default, p.Type)
		if err != nil {
			panic(fmt.Sprintf("signature: invalid normalized default for %q: %v", p.Name, err))
		}
		b.values[i] = rv
		b.set[i] = true
	}
}

// Values returns the bound values in declaration order. Unset slots (an
// optional parameter before ApplyDefaults) are returned as zero values of
// their parameter type.
func (b *Bound) Values() []reflect.Value {
	out := make([]reflect.Value, len(b.values))
	for i, v := range b.values {
		if !b.set[i] {
			out[i] = reflect.Zero(b.sig.params[i].Type)
			continue
		}
		out[i] = v
	}
	return out
}

// Value returns the bound value for the named parameter.
func (b *Bound) Value(name string) (any, bool) {
	i, ok := b.sig.byName[name]
	if !ok || !b.set[i] {
		return nil, false
	}
	return b.values[i].Interface(), true
}
