package signature

import (
	"errors"
	"fmt"
)

// SignatureError represents an error detected while normalizing a command
// declaration or deriving a record's field list. Signature errors are
// decoration-time failures: they occur before any callable is rebound or any
// record type exists, and are never recovered internally.
type SignatureError struct {
	// Code identifies the error category.
	Code SignatureErrorCode

	// Message is a human-readable description.
	Message string

	// Param identifies the offending parameter, when one exists.
	Param string
}

// SignatureErrorCode categorizes signature errors.
type SignatureErrorCode string

const (
	// ErrCodeNotAFunction indicates the declared callable is not a function.
	ErrCodeNotAFunction SignatureErrorCode = "NOT_A_FUNCTION"

	// ErrCodeVariadicFunction indicates the declared callable is variadic.
	ErrCodeVariadicFunction SignatureErrorCode = "VARIADIC_FUNCTION"

	// ErrCodeArityMismatch indicates the spec count does not match the
	// function's parameter count.
	ErrCodeArityMismatch SignatureErrorCode = "ARITY_MISMATCH"

	// ErrCodeDuplicateParameter indicates two specs share a name.
	ErrCodeDuplicateParameter SignatureErrorCode = "DUPLICATE_PARAMETER"

	// ErrCodeEmptyParameterName indicates a spec with no name.
	ErrCodeEmptyParameterName SignatureErrorCode = "EMPTY_PARAMETER_NAME"

	// ErrCodeDefaultMismatch indicates a declared default is not assignable
	// to the parameter's type.
	ErrCodeDefaultMismatch SignatureErrorCode = "DEFAULT_TYPE_MISMATCH"

	// ErrCodeRequiredAfterOptional indicates a required field declared after
	// an optional one in a record's field list.
	ErrCodeRequiredAfterOptional SignatureErrorCode = "REQUIRED_AFTER_OPTIONAL"

	// ErrCodeBadMerge indicates an invalid base, class, or behavior merge
	// request during record synthesis.
	ErrCodeBadMerge SignatureErrorCode = "BAD_MERGE"

	// ErrCodeInvalidFieldName indicates a parameter name that cannot be
	// mapped to an exported Go field name.
	ErrCodeInvalidFieldName SignatureErrorCode = "INVALID_FIELD_NAME"
)

// Error implements the error interface.
func (e *SignatureError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param=%s)", e.Code, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// BindError represents a call-time binding failure: the same failure
// categories a direct call to the corrected signature would produce.
// Record construction reuses the same taxonomy.
type BindError struct {
	// Code identifies the error category.
	Code BindErrorCode

	// Message is a human-readable description naming the offending
	// parameter or count mismatch.
	Message string

	// Param identifies the offending parameter, when one exists.
	Param string
}

// BindErrorCode categorizes binding errors.
type BindErrorCode string

const (
	// ErrCodeUnexpectedKeyword indicates a named value for an unknown
	// parameter.
	ErrCodeUnexpectedKeyword BindErrorCode = "UNEXPECTED_KEYWORD"

	// ErrCodeTooManyPositional indicates more positional values than
	// positional parameters.
	ErrCodeTooManyPositional BindErrorCode = "TOO_MANY_POSITIONAL"

	// ErrCodeMissingRequired indicates an omitted parameter with no default.
	ErrCodeMissingRequired BindErrorCode = "MISSING_REQUIRED"

	// ErrCodeDuplicateValue indicates a parameter supplied both positionally
	// and by name.
	ErrCodeDuplicateValue BindErrorCode = "DUPLICATE_VALUE"

	// ErrCodeTypeMismatch indicates a supplied value not assignable to the
	// parameter's type.
	ErrCodeTypeMismatch BindErrorCode = "TYPE_MISMATCH"
)

// Error implements the error interface.
func (e *BindError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param=%s)", e.Code, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMissingRequired reports whether err is a missing-required binding error.
// Uses errors.As to handle wrapped errors.
func IsMissingRequired(err error) bool {
	var be *BindError
	return errors.As(err, &be) && be.Code == ErrCodeMissingRequired
}

// IsUnexpectedKeyword reports whether err is an unexpected-keyword binding
// error. Uses errors.As to handle wrapped errors.
func IsUnexpectedKeyword(err error) bool {
	var be *BindError
	return errors.As(err, &be) && be.Code == ErrCodeUnexpectedKeyword
}

// IsTooManyPositional reports whether err is a too-many-positional binding
// error. Uses errors.As to handle wrapped errors.
func IsTooManyPositional(err error) bool {
	var be *BindError
	return errors.As(err, &be) && be.Code == ErrCodeTooManyPositional
}

// IsRequiredAfterOptional reports whether err is the strict field-ordering
// violation raised at record decoration time.
func IsRequiredAfterOptional(err error) bool {
	var se *SignatureError
	return errors.As(err, &se) && se.Code == ErrCodeRequiredAfterOptional
}
