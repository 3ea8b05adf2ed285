package cmdrec

import (
	"github.com/cmdrec/cmdrec/internal/cliapp"
	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/param"
	"github.com/cmdrec/cmdrec/internal/record"
	"github.com/cmdrec/cmdrec/internal/signature"
)

// Declaration layer.
type (
	// Spec describes one declared parameter.
	Spec = param.Spec
	// Descriptor is a parameter spec with a true default plus CLI metadata.
	Descriptor = param.Descriptor
	// PlainSpec is a parameter spec without CLI metadata.
	PlainSpec = param.PlainSpec
)

var (
	// Argument declares a positional parameter.
	Argument = param.Argument
	// Option declares a named, keyword-only parameter.
	Option = param.Option
	// Plain declares a parameter with an ordinary default and no metadata.
	Plain = param.Plain
	// Bare declares a parameter with no default at all.
	Bare = param.Bare
	// Required is the sentinel default meaning "caller must supply this".
	Required = param.Required
)

// Signatures and commands.
type (
	// Parameter is one normalized parameter.
	Parameter = signature.Parameter
	// Signature is a corrected parameter list.
	Signature = signature.Signature
	// Command is a declared command.
	Command = command.Command
	// Func is a rebound, directly invocable command.
	Func = command.Func
)

var (
	// NewCommand declares a command, normalizing its signature eagerly.
	NewCommand = command.New
	// Rebind produces the directly invocable wrapper for a command.
	Rebind = command.Rebind
	// Resolve follows rebind back-references to the original declaration.
	Resolve = command.Resolve
)

// Record synthesis.
type (
	// RecordBuilder accumulates a record synthesis request.
	RecordBuilder = record.Builder
	// RecordType is a synthesized record type.
	RecordType = record.Type
	// Record is one constructed record instance.
	Record = record.Instance
	// Field describes one synthesized record field.
	Field = record.Field
	// AfterIniter is the post-construction lifecycle hook.
	AfterIniter = record.AfterIniter
)

var (
	// Define starts a record synthesis for a command or rebound command.
	Define = record.Define
	// DeriveFields returns the ordered field list a record would have.
	DeriveFields = record.DeriveFields
)

// CLI bridge.
type (
	// App couples a cobra root with register-and-rebind declaration.
	App = cliapp.App
	// BridgeOption configures Bridge.
	BridgeOption = cliapp.BridgeOption
)

var (
	// NewApp creates an application root.
	NewApp = cliapp.NewApp
	// Bridge builds a cobra command for a declared command.
	Bridge = cliapp.Bridge
	// WithSummary sets the bridged command's one-line description.
	WithSummary = cliapp.WithSummary
	// WithDefaultsFile supplies YAML call-time defaults to a bridged command.
	WithDefaultsFile = cliapp.WithDefaultsFile
)

// Errors.
type (
	// SignatureError is a decoration-time failure.
	SignatureError = signature.SignatureError
	// BindError is a call- or construction-time binding failure.
	BindError = signature.BindError
)

var (
	// IsMissingRequired matches omitted parameters with no default.
	IsMissingRequired = signature.IsMissingRequired
	// IsUnexpectedKeyword matches named values for unknown parameters.
	IsUnexpectedKeyword = signature.IsUnexpectedKeyword
	// IsTooManyPositional matches surplus positional values.
	IsTooManyPositional = signature.IsTooManyPositional
	// IsRequiredAfterOptional matches the strict field-ordering violation.
	IsRequiredAfterOptional = signature.IsRequiredAfterOptional
)
