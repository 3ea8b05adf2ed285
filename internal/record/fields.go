package record

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/signature"
)

// Field describes one synthesized record field.
type Field struct {
	// Name is the declared parameter name, e.g. "out_file".
	Name string

	// GoName is the exported struct field name, e.g. "OutFile".
	GoName string

	// Type is the field's Go type.
	Type reflect.Type

	// Default is the field's default value, applied at construction time
	// when the field is omitted. Only meaningful when HasDefault is true.
	Default any

	// HasDefault reports whether the field is optional.
	HasDefault bool
}

// titleCaser maps name parts to their exported spelling. Und avoids
// language-specific casing rules.
var titleCaser = cases.Title(language.Und, cases.NoLower)

// DeriveFields builds the ordered field list for a command's record type.
//
// It enforces the strict ordering invariant: once any field has a default,
// every subsequent field must also have one, so that purely positional
// construction stays unambiguous. Violations fail here, at decoration time,
// with a SignatureError - never at construction time.
func DeriveFields(cmd *command.Command) ([]Field, error) {
	params := cmd.Signature().Params()
	fields := make([]Field, 0, len(params))
	seen := make(map[string]string, len(params))

	optional := ""
	for _, p := range params {
		if p.HasDefault {
			optional = p.Name
		} else if optional != "" {
			return nil, &signature.SignatureError{
				Code: signature.ErrCodeRequiredAfterOptional,
				Message: fmt.Sprintf("required parameter %q follows optional parameter %q",
					p.Name, optional),
				Param: p.Name,
			}
		}

		goName, err := exportedName(p.Name)
		if err != nil {
			return nil, &signature.SignatureError{
				Code:    signature.ErrCodeInvalidFieldName,
				Message: err.Error(),
				Param:   p.Name,
			}
		}
		if prev, ok := seen[goName]; ok {
			return nil, &signature.SignatureError{
				Code: signature.ErrCodeInvalidFieldName,
				Message: fmt.Sprintf("parameters %q and %q map to the same field name %s",
					prev, p.Name, goName),
				Param: p.Name,
			}
		}
		seen[goName] = p.Name

		fields = append(fields, Field{
			Name:       p.Name,
			GoName:     goName,
			Type:       p.Type,
			Default:    p.Default,
			HasDefault: p.HasDefault,
		})
	}

	return fields, nil
}

// exportedName maps a declared parameter name to an exported Go identifier:
// "bucket" becomes "Bucket", "out_file" becomes "OutFile".
func exportedName(name string) (string, error) {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("parameter name %q has no identifier characters", name)
	}
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(titleCaser.String(part))
	}
	out := b.String()
	for i, r := range out {
		if i == 0 && !unicode.IsLetter(r) {
			return "", fmt.Errorf("parameter name %q does not start with a letter", name)
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("parameter name %q is not a valid field name", name)
		}
	}
	return out, nil
}

// structType synthesizes the backing struct type for a field list. Every
// field is exported and tagged with its declared parameter name so JSON
// output uses CLI-facing names.
func structType(fields []Field) reflect.Type {
	sf := make([]reflect.StructField, len(fields))
	for i, f := range fields {
		sf[i] = reflect.StructField{
			Name: f.GoName,
			Type: f.Type,
			Tag:  reflect.StructTag(fmt.Sprintf(`json:"%s"`, f.Name)),
		}
	}
	return reflect.StructOf(sf)
}
