package record

import (
	"fmt"
	"reflect"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/signature"
)

// Builder accumulates a record synthesis request. Two explicit merge entry
// points replace the original's polymorphic decorator: WithClass merges a
// user-defined prototype whose methods become the record's behavior, and
// WithBehavior installs a plain function as the record's invocation body.
// The two are mutually exclusive; WithBase may be combined with either.
type Builder struct {
	src      any
	name     string
	bases    []any
	class    any
	hasClass bool
	behavior any
	hasFn    bool
}

// Define starts a record synthesis for src, which may be a *command.Command
// or any rebound callable carrying an Unwrap back-reference. The guard is
// followed at build time so an already-rebound command still contributes
// its true descriptor-bearing declaration.
func Define(src any) *Builder {
	return &Builder{src: src}
}

// WithName overrides the record type's name. The default is the command's
// own name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithBase appends an extra base prototype. It never replaces bases already
// requested; repeated calls accumulate in order.
func (b *Builder) WithBase(proto any) *Builder {
	b.bases = append(b.bases, proto)
	return b
}

// WithClass merges a user-defined prototype: its methods (taking the record
// instance as their first argument) become part of the new type, resolved
// after any requested bases.
func (b *Builder) WithClass(proto any) *Builder {
	b.class = proto
	b.hasClass = true
	return b
}

// WithBehavior installs fn as the record's invocation behavior. fn's first
// parameter receives the instance.
func (b *Builder) WithBehavior(fn any) *Builder {
	b.behavior = fn
	b.hasFn = true
	return b
}

// Fields derives the record's field list without building the type. It
// runs the same guard resolution and ordering checks as Build.
func (b *Builder) Fields() ([]Field, error) {
	cmd, err := command.Resolve(b.src)
	if err != nil {
		return nil, err
	}
	return DeriveFields(cmd)
}

// Build synthesizes the record type. All validation is eager: guard
// resolution, normalization, the strict field-ordering check, and merge
// validation all happen here, before any instance can exist.
func (b *Builder) Build() (*Type, error) {
	cmd, err := command.Resolve(b.src)
	if err != nil {
		return nil, err
	}
	fields, err := DeriveFields(cmd)
	if err != nil {
		return nil, err
	}
	if b.hasClass && b.hasFn {
		return nil, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: "cannot merge both a class prototype and a behavior function",
		}
	}

	name := b.name
	if name == "" {
		name = cmd.Name()
	}

	st := structType(fields)
	ctorParams := make([]signature.Parameter, len(fields))
	for i, f := range fields {
		// Record construction is positional-or-keyword for every field.
		ctorParams[i] = signature.Parameter{
			Name:       f.Name,
			Type:       f.Type,
			Default:    f.Default,
			HasDefault: f.HasDefault,
		}
	}
	ctorSig, err := signature.New(ctorParams)
	if err != nil {
		return nil, err
	}

	t := &Type{
		name:       name,
		fields:     fields,
		structType: st,
		index:      make(map[string]int, len(fields)),
		cmd:        cmd,
		ctorSig:    ctorSig,
	}
	for i, f := range fields {
		t.index[f.Name] = i
	}

	for _, base := range b.bases {
		pv, err := prototype(base)
		if err != nil {
			return nil, err
		}
		t.protos = append(t.protos, pv)
	}
	if b.hasClass {
		pv, err := prototype(b.class)
		if err != nil {
			return nil, err
		}
		t.protos = append(t.protos, pv)
	}
	if b.hasFn {
		fv, err := behaviorFunc(b.behavior)
		if err != nil {
			return nil, err
		}
		t.behavior = fv
	}

	// The lifecycle hook comes from the first prototype that defines one,
	// in merge order. Raw Init-style constructors are never consulted.
	for _, pv := range t.protos {
		if h, ok := pv.Interface().(AfterIniter); ok {
			t.afterInit = h
			break
		}
	}

	return t, nil
}

// prototype normalizes a base or class merge value to an addressable
// pointer, so pointer-receiver methods are reachable. The prototype value
// itself is shared by every instance; its initializers are never run.
func prototype(v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: "nil prototype",
		}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return reflect.Value{}, &signature.SignatureError{
				Code:    signature.ErrCodeBadMerge,
				Message: fmt.Sprintf("prototype must be a struct or non-nil pointer to struct, got %T", v),
			}
		}
		return rv, nil
	case reflect.Struct:
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		return pv, nil
	default:
		return reflect.Value{}, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: fmt.Sprintf("prototype must be a struct or non-nil pointer to struct, got %T", v),
		}
	}
}

var instanceType = reflect.TypeOf((*Instance)(nil))

// behaviorFunc validates an invocation-behavior function: a func whose
// first parameter accepts the record instance.
func behaviorFunc(fn any) (reflect.Value, error) {
	if fn == nil {
		return reflect.Value{}, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: "nil behavior function",
		}
	}
	fv := reflect.ValueOf(fn)
	t := fv.Type()
	if t.Kind() != reflect.Func || t.IsVariadic() {
		return reflect.Value{}, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: fmt.Sprintf("behavior must be a non-variadic function, got %T", fn),
		}
	}
	if t.NumIn() < 1 || !instanceType.AssignableTo(t.In(0)) {
		return reflect.Value{}, &signature.SignatureError{
			Code:    signature.ErrCodeBadMerge,
			Message: "behavior function must take the record instance as its first parameter",
		}
	}
	return fv, nil
}
