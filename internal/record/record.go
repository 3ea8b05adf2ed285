package record

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/signature"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// AfterIniter is the lifecycle hook a merged prototype may define. It runs
// immediately after field assignment on every new instance. It is the only
// prototype method the synthesizer ever invokes on its own; Init-style
// constructors on prototypes are deliberately never called.
type AfterIniter interface {
	AfterInit(r *Instance) error
}

// Type is a synthesized record type: an ordered, immutable field list, a
// backing struct type, merged prototypes, and the originating command.
type Type struct {
	name       string
	fields     []Field
	structType reflect.Type
	index      map[string]int
	cmd        *command.Command
	ctorSig    *signature.Signature
	protos     []reflect.Value
	behavior   reflect.Value
	afterInit  AfterIniter
}

// Name returns the record type's name.
func (t *Type) Name() string { return t.name }

// Fields returns the ordered field list.
func (t *Type) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// StructType returns the synthesized backing struct type.
func (t *Type) StructType() reflect.Type { return t.structType }

// Command returns the original command the record was synthesized from -
// the pre-rebind, descriptor-bearing declaration, retrievable for later
// chaining or direct invocation.
func (t *Type) Command() *command.Command { return t.cmd }

// New constructs an instance from positional field values.
func (t *Type) New(args ...any) (*Instance, error) {
	return t.NewNamed(nil, args...)
}

// NewNamed constructs an instance from positional and named field values.
// Every field accepts either form; a field supplied both ways, an unknown
// name, or an omitted field with no default each fail with a BindError
// naming the field. Defaults fill the rest, then the lifecycle hook runs.
func (t *Type) NewNamed(named map[string]any, args ...any) (*Instance, error) {
	b, err := t.ctorSig.Bind(args, named)
	if err != nil {
		return nil, err
	}
	b.ApplyDefaults()

	pv := reflect.New(t.structType)
	for i, v := range b.Values() {
		pv.Elem().Field(i).Set(v)
	}

	inst := &Instance{t: t, v: pv}
	if t.afterInit != nil {
		if err := t.afterInit.AfterInit(inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Instance is one constructed record.
type Instance struct {
	t *Type
	v reflect.Value
}

// Type returns the record type this instance belongs to.
func (r *Instance) Type() *Type { return r.t }

// Get returns the named field's value, or nil when no such field exists.
func (r *Instance) Get(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Lookup returns the named field's value and whether the field exists.
func (r *Instance) Lookup(name string) (any, bool) {
	i, ok := r.t.index[name]
	if !ok {
		return nil, false
	}
	return r.v.Elem().Field(i).Interface(), true
}

// Set assigns the named field, type-checked against the field's type.
func (r *Instance) Set(name string, val any) error {
	i, ok := r.t.index[name]
	if !ok {
		return &signature.BindError{
			Code:    signature.ErrCodeUnexpectedKeyword,
			Message: fmt.Sprintf("unexpected keyword argument %q", name),
			Param:   name,
		}
	}
	rv, err := signature.Coerce(val, r.t.fields[i].Type)
	if err != nil {
		return &signature.BindError{
			Code:    signature.ErrCodeTypeMismatch,
			Message: fmt.Sprintf("argument %q: %v", name, err),
			Param:   name,
		}
	}
	r.v.Elem().Field(i).Set(rv)
	return nil
}

// Addr returns the underlying pointer to the synthesized struct.
func (r *Instance) Addr() any { return r.v.Interface() }

// MarshalJSON renders the instance under its declared parameter names.
func (r *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.v.Interface())
}

// String renders the instance in field order, e.g.
// export_keys(bucket="b", keys="keys", pid=<nil>).
func (r *Instance) String() string {
	var b strings.Builder
	b.WriteString(r.t.name)
	b.WriteByte('(')
	for i, f := range r.t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%#v", f.Name, r.v.Elem().Field(i).Interface())
	}
	b.WriteByte(')')
	return b.String()
}

// Invoke calls the record's invocation behavior: the merged behavior
// function if one was installed, otherwise the first prototype method named
// Call, with the instance as first argument.
func (r *Instance) Invoke(extra ...any) ([]any, error) {
	if r.t.behavior.IsValid() {
		return callValue(r.t.behavior, prepend(r, extra))
	}
	if m, ok := r.method("Call"); ok {
		return callValue(m, prepend(r, extra))
	}
	return nil, fmt.Errorf("record type %q has no invocation behavior", r.t.name)
}

// CallMethod invokes a merged prototype method by name, with the instance
// as first argument. Methods resolve in merge order: requested bases first,
// then the user class.
func (r *Instance) CallMethod(name string, extra ...any) ([]any, error) {
	m, ok := r.method(name)
	if !ok {
		return nil, fmt.Errorf("record type %q has no method %q", r.t.name, name)
	}
	return callValue(m, prepend(r, extra))
}

// method resolves a prototype method in merge order.
func (r *Instance) method(name string) (reflect.Value, bool) {
	for _, pv := range r.t.protos {
		if m := pv.MethodByName(name); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

func prepend(r *Instance, extra []any) []any {
	args := make([]any, 0, len(extra)+1)
	args = append(args, r)
	return append(args, extra...)
}

// callValue invokes fn with args, coercing each to the parameter type and
// splitting off a trailing error result.
func callValue(fn reflect.Value, args []any) ([]any, error) {
	t := fn.Type()
	if len(args) > t.NumIn() {
		return nil, &signature.BindError{
			Code:    signature.ErrCodeTooManyPositional,
			Message: "too many positional arguments",
		}
	}
	if len(args) < t.NumIn() {
		return nil, &signature.BindError{
			Code:    signature.ErrCodeMissingRequired,
			Message: fmt.Sprintf("not enough arguments: takes %d, got %d", t.NumIn(), len(args)),
		}
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		rv, err := signature.Coerce(a, t.In(i))
		if err != nil {
			return nil, &signature.BindError{
				Code:    signature.ErrCodeTypeMismatch,
				Message: fmt.Sprintf("argument %d: %v", i, err),
			}
		}
		in[i] = rv
	}

	out := fn.Call(in)
	var err error
	if n := t.NumOut(); n > 0 && t.Out(n-1).Implements(errorType) {
		if e, ok := out[n-1].Interface().(error); ok && e != nil {
			err = e
		}
		out = out[:n-1]
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, err
}
