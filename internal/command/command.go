package command

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/cmdrec/cmdrec/internal/param"
	"github.com/cmdrec/cmdrec/internal/signature"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Command is a declared command: a function plus one spec per parameter.
// The corrected signature is computed at declaration time and is immutable
// thereafter.
type Command struct {
	name  string
	fn    reflect.Value
	specs []param.Spec
	sig   *signature.Signature
}

// New declares a command. name may be empty, in which case the function's
// own name is used. New normalizes the signature eagerly and fails with a
// SignatureError on an invalid declaration.
func New(name string, fn any, specs ...param.Spec) (*Command, error) {
	sig, err := signature.Normalize(fn, specs)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = funcName(fn)
	}
	return &Command{
		name:  name,
		fn:    reflect.ValueOf(fn),
		specs: specs,
		sig:   sig,
	}, nil
}

// Name returns the command's externally visible name.
func (c *Command) Name() string { return c.name }

// Signature returns the corrected signature.
func (c *Command) Signature() *signature.Signature { return c.sig }

// Specs returns the declared parameter specs in order.
func (c *Command) Specs() []param.Spec {
	out := make([]param.Spec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Func returns the original, descriptor-bearing function.
func (c *Command) Func() any { return c.fn.Interface() }

// invoke calls the underlying function with fully bound values. When the
// function's final result is an error it is split off and returned; the
// remaining results are returned as a slice.
func (c *Command) invoke(in []reflect.Value) ([]any, error) {
	out := c.fn.Call(in)

	var err error
	t := c.fn.Type()
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

// funcName returns the bare name of fn for use as a default command name.
func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// Anonymous functions end in a numeric suffix like "func1".
	return strings.TrimSuffix(name, "-fm")
}

// Func is a rebound callable: it accepts calls against the corrected
// signature, applies defaults, and forwards to the original function.
// It never mutates the Command it wraps.
type Func struct {
	cmd *Command
}

// Rebind produces the directly invocable wrapper for a command.
func Rebind(c *Command) *Func {
	return &Func{cmd: c}
}

// Name preserves the original command's externally visible name.
func (f *Func) Name() string { return f.cmd.name }

// Signature returns the corrected signature the wrapper binds against.
func (f *Func) Signature() *signature.Signature { return f.cmd.sig }

// Unwrap returns the pre-rebind Command. This is the back-reference the
// record synthesizer follows so that double decoration never reads an
// already-corrected signature.
func (f *Func) Unwrap() *Command { return f.cmd }

// Call invokes the command with positional values only.
func (f *Func) Call(args ...any) ([]any, error) {
	return f.CallNamed(nil, args...)
}

// CallNamed invokes the command with positional and named values. Binding
// failures are BindErrors; an error returned by the command itself
// propagates unchanged.
func (f *Func) CallNamed(named map[string]any, args ...any) ([]any, error) {
	b, err := f.cmd.sig.Bind(args, named)
	if err != nil {
		return nil, err
	}
	b.ApplyDefaults()
	return f.cmd.invoke(b.Values())
}

// Unwrapper is implemented by any callable that remembers its pre-rebind
// original.
type Unwrapper interface {
	Unwrap() *Command
}

// Resolve follows rebind back-references until it reaches the original,
// descriptor-bearing Command.
func Resolve(src any) (*Command, error) {
	switch v := src.(type) {
	case *Command:
		return v, nil
	case Unwrapper:
		return v.Unwrap(), nil
	default:
		return nil, fmt.Errorf("not a command or rebound command: %T", src)
	}
}
