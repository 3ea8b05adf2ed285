package cliapp

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/param"
	"github.com/cmdrec/cmdrec/internal/signature"
)

// BridgeOption configures Bridge.
type BridgeOption func(*bridgeConfig)

type bridgeConfig struct {
	summary      string
	defaultsFile string
}

// WithSummary sets the cobra command's one-line description.
func WithSummary(s string) BridgeOption {
	return func(c *bridgeConfig) { c.summary = s }
}

// WithDefaultsFile reads call-time defaults for keyword parameters from a
// YAML document of parameter name to value. Explicit flags and environment
// fallbacks both take precedence over the file.
func WithDefaultsFile(path string) BridgeOption {
	return func(c *bridgeConfig) { c.defaultsFile = path }
}

// Bridge builds a cobra command for a declared command.
//
// Keyword-only parameters register as flags named after the parameter
// (underscores become dashes); positional parameters are validated by count
// and converted from their string form. Running the cobra command binds all
// values through the rebound callable, so omitted flags pick up the same
// defaults a direct call would.
func Bridge(cmd *command.Command, opts ...BridgeOption) (*cobra.Command, error) {
	var cfg bridgeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sig := cmd.Signature()
	positionals := sig.Positional()
	descriptors := descriptorsByName(cmd)
	fn := command.Rebind(cmd)

	cc := &cobra.Command{
		Use:   useLine(cmd.Name(), positionals),
		Short: cfg.summary,
		Args:  cobra.RangeArgs(sig.RequiredPositional(), len(positionals)),
	}

	var keyword []signature.Parameter
	for _, p := range sig.Params() {
		if !p.KeywordOnly {
			continue
		}
		keyword = append(keyword, p)
		if err := registerFlag(cc.Flags(), p, descriptors[p.Name]); err != nil {
			return nil, err
		}
		if !p.HasDefault {
			if err := cc.MarkFlagRequired(flagName(p.Name)); err != nil {
				return nil, err
			}
		}
	}

	cc.RunE = func(cc *cobra.Command, args []string) error {
		named := make(map[string]any)

		var fileDefaults map[string]any
		if cfg.defaultsFile != "" {
			var err error
			fileDefaults, err = loadDefaultsFile(cfg.defaultsFile)
			if err != nil {
				return err
			}
		}

		for _, p := range keyword {
			fl := cc.Flags().Lookup(flagName(p.Name))
			if fl.Changed {
				v, err := flagValue(cc.Flags(), p)
				if err != nil {
					return err
				}
				named[p.Name] = v
				continue
			}
			d := descriptors[p.Name]
			if d != nil && d.Env() != "" {
				if s, ok := os.LookupEnv(d.Env()); ok {
					v, err := parseValue(s, p.Type)
					if err != nil {
						return fmt.Errorf("environment %s: %w", d.Env(), err)
					}
					named[p.Name] = v
					continue
				}
			}
			if raw, ok := fileDefaults[p.Name]; ok {
				v, err := adaptValue(raw, p.Type)
				if err != nil {
					return fmt.Errorf("defaults file %s: %w", cfg.defaultsFile, err)
				}
				named[p.Name] = v
			}
		}

		pos := make([]any, len(args))
		for i, a := range args {
			v, err := parseValue(a, positionals[i].Type)
			if err != nil {
				return fmt.Errorf("argument %q: %w", positionals[i].Name, err)
			}
			pos[i] = v
		}

		results, err := fn.CallNamed(named, pos...)
		if err != nil {
			return err
		}
		if len(results) > 0 {
			fmt.Fprintln(cc.OutOrStdout(), results...)
		}
		return nil
	}

	return cc, nil
}

// descriptorsByName indexes the command's rich descriptors for shorthand,
// help text, and env lookups.
func descriptorsByName(cmd *command.Command) map[string]*param.Descriptor {
	out := make(map[string]*param.Descriptor)
	for _, spec := range cmd.Specs() {
		if d, ok := spec.(*param.Descriptor); ok {
			out[d.Name()] = d
		}
	}
	return out
}

// useLine renders "name <required> [optional]" for the positionals.
func useLine(name string, positionals []signature.Parameter) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range positionals {
		if p.HasDefault {
			fmt.Fprintf(&b, " [%s]", p.Name)
		} else {
			fmt.Fprintf(&b, " <%s>", p.Name)
		}
	}
	return b.String()
}

func flagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

var durationType = reflect.TypeOf(time.Duration(0))

// registerFlag registers one keyword parameter as a typed flag. Pointer
// parameters register on their element type with a zero default; the flag
// only contributes a value when explicitly set, so an untouched flag falls
// back to the parameter's normalized default (often nil).
func registerFlag(flags *pflag.FlagSet, p signature.Parameter, d *param.Descriptor) error {
	name := flagName(p.Name)
	var short, help string
	if d != nil {
		short = d.Short()
		help = d.Help()
	}

	t := p.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	def := p.Default
	if rv := reflect.ValueOf(def); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		def = rv.Elem().Interface()
	}

	switch {
	case t == durationType:
		flags.DurationP(name, short, durationDefault(def), help)
	case t.Kind() == reflect.String:
		s, _ := def.(string)
		flags.StringP(name, short, s, help)
	case t.Kind() == reflect.Bool:
		b, _ := def.(bool)
		flags.BoolP(name, short, b, help)
	case t.Kind() == reflect.Int:
		n, _ := def.(int)
		flags.IntP(name, short, n, help)
	case t.Kind() == reflect.Int64:
		n, _ := def.(int64)
		flags.Int64P(name, short, n, help)
	case t.Kind() == reflect.Uint:
		n, _ := def.(uint)
		flags.UintP(name, short, n, help)
	case t.Kind() == reflect.Float64:
		f, _ := def.(float64)
		flags.Float64P(name, short, f, help)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		ss, _ := def.([]string)
		flags.StringSliceP(name, short, ss, help)
	default:
		return fmt.Errorf("parameter %q: no flag type for %s", p.Name, p.Type)
	}
	return nil
}

func durationDefault(def any) time.Duration {
	d, _ := def.(time.Duration)
	return d
}

// flagValue reads a set flag back as the parameter's Go type, re-wrapping
// pointers for optional parameters declared as *T.
func flagValue(flags *pflag.FlagSet, p signature.Parameter) (any, error) {
	name := flagName(p.Name)
	t := p.Type
	ptr := t.Kind() == reflect.Pointer
	if ptr {
		t = t.Elem()
	}

	var v any
	var err error
	switch {
	case t == durationType:
		v, err = flags.GetDuration(name)
	case t.Kind() == reflect.String:
		v, err = flags.GetString(name)
	case t.Kind() == reflect.Bool:
		v, err = flags.GetBool(name)
	case t.Kind() == reflect.Int:
		v, err = flags.GetInt(name)
	case t.Kind() == reflect.Int64:
		v, err = flags.GetInt64(name)
	case t.Kind() == reflect.Uint:
		v, err = flags.GetUint(name)
	case t.Kind() == reflect.Float64:
		v, err = flags.GetFloat64(name)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		v, err = flags.GetStringSlice(name)
	default:
		return nil, fmt.Errorf("parameter %q: no flag type for %s", p.Name, p.Type)
	}
	if err != nil {
		return nil, err
	}
	if ptr {
		return pointerTo(v, p.Type)
	}
	return v, nil
}

// pointerTo boxes v into a new *T for pointer-typed parameters.
func pointerTo(v any, t reflect.Type) (any, error) {
	rv, err := signature.Coerce(v, t.Elem())
	if err != nil {
		return nil, err
	}
	pv := reflect.New(t.Elem())
	pv.Elem().Set(rv)
	return pv.Interface(), nil
}

// adaptValue coerces a raw decoded value (YAML scalar or sequence) to the
// parameter's type, boxing pointers as needed.
func adaptValue(raw any, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer && raw != nil {
		return pointerTo(raw, t)
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String {
		if xs, ok := raw.([]any); ok {
			ss := make([]string, len(xs))
			for i, x := range xs {
				s, ok := x.(string)
				if !ok {
					return nil, fmt.Errorf("element %d: %T is not a string", i, x)
				}
				ss[i] = s
			}
			return ss, nil
		}
	}
	rv, err := signature.Coerce(raw, t)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}
