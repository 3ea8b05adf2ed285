package cliapp

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// parseValue converts a command-line string to the parameter's Go type.
// Pointer types parse on their element type and box the result.
func parseValue(s string, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer {
		v, err := parseValue(s, t.Elem())
		if err != nil {
			return nil, err
		}
		return pointerTo(v, t)
	}
	if t == durationType {
		return time.ParseDuration(s)
	}

	switch t.Kind() {
	case reflect.String:
		return s, nil
	case reflect.Bool:
		return strconv.ParseBool(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			if s == "" {
				return []string{}, nil
			}
			return strings.Split(s, ","), nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as %s", s, t)
}

// loadDefaultsFile reads a YAML document of parameter name to value.
func loadDefaultsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return m, nil
}
