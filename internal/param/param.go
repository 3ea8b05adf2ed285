package param

// Spec is a sealed interface describing one declared parameter.
// Only Descriptor and PlainSpec implement it.
type Spec interface {
	// Name returns the declared parameter name, unique within a command.
	Name() string

	spec() // Sealed - only these types implement it
}

// requiredType is the required-sentinel: a default of this type means
// "no usable default; the caller must supply a value".
type requiredType struct{}

func (requiredType) String() string { return "<required>" }

// Required is the required-sentinel value. Use it as the default of an
// Argument or Option to declare the parameter mandatory.
var Required any = requiredType{}

// IsRequired reports whether v is the required-sentinel.
func IsRequired(v any) bool {
	_, ok := v.(requiredType)
	return ok
}

// Descriptor is a rich parameter spec produced by the declaration layer.
// It bundles the true default with help text and CLI metadata. A Descriptor
// with Keyword()==true was declared as a named option; the normalizer forces
// such parameters to keyword-only calling convention.
type Descriptor struct {
	name    string
	def     any
	keyword bool
	help    string
	short   string
	env     string
}

// Argument declares a positional parameter. def may be Required.
func Argument(name string, def any, help string) *Descriptor {
	return &Descriptor{name: name, def: def, help: help}
}

// Option declares a named (keyword-style) parameter. def may be Required.
func Option(name string, def any, help string) *Descriptor {
	return &Descriptor{name: name, def: def, help: help, keyword: true}
}

func (d *Descriptor) spec() {}

// Name returns the declared parameter name.
func (d *Descriptor) Name() string { return d.name }

// Default returns the inner default, which may be the required-sentinel.
func (d *Descriptor) Default() any { return d.def }

// Keyword reports whether this parameter was declared as a named option.
func (d *Descriptor) Keyword() bool { return d.keyword }

// Help returns the help text, passed through unchanged to the CLI layer.
func (d *Descriptor) Help() string { return d.help }

// Short returns the single-letter flag shorthand, if any.
func (d *Descriptor) Short() string { return d.short }

// Env returns the environment variable consulted by the CLI bridge when the
// flag is not set, if any.
func (d *Descriptor) Env() string { return d.env }

// WithShort returns a copy of the descriptor with a flag shorthand.
func (d *Descriptor) WithShort(short string) *Descriptor {
	c := *d
	c.short = short
	return &c
}

// WithEnv returns a copy of the descriptor with an environment fallback.
func (d *Descriptor) WithEnv(env string) *Descriptor {
	c := *d
	c.env = env
	return &c
}

// PlainSpec is a parameter spec without CLI metadata: an ordinary default
// value, or no default at all.
type PlainSpec struct {
	name       string
	def        any
	hasDefault bool
}

// Plain declares a parameter with an ordinary default value and no metadata.
func Plain(name string, def any) *PlainSpec {
	return &PlainSpec{name: name, def: def, hasDefault: true}
}

// Bare declares a parameter with no default at all.
func Bare(name string) *PlainSpec {
	return &PlainSpec{name: name}
}

func (p *PlainSpec) spec() {}

// Name returns the declared parameter name.
func (p *PlainSpec) Name() string { return p.name }

// Default returns the default value and whether one was declared.
func (p *PlainSpec) Default() (any, bool) { return p.def, p.hasDefault }
