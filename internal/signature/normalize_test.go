package signature

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdrec/cmdrec/internal/param"
)

func exportKeys(bucket, keys string, pid *int) (string, string, *int) {
	return bucket, keys, pid
}

func exportKeysSpecs() []param.Spec {
	return []param.Spec{
		param.Argument("bucket", param.Required, "The bucket to use"),
		param.Argument("keys", "keys", "The keys to download"),
		param.Option("pid", nil, "pid"),
	}
}

func TestNormalizeUnwrapsDescriptors(t *testing.T) {
	sig, err := Normalize(exportKeys, exportKeysSpecs())
	require.NoError(t, err)
	require.Equal(t, 3, sig.Len())

	params := sig.Params()

	// Required-sentinel becomes "no default".
	assert.Equal(t, "bucket", params[0].Name)
	assert.False(t, params[0].HasDefault)
	assert.False(t, params[0].KeywordOnly)
	assert.Equal(t, reflect.TypeOf(""), params[0].Type)

	// Descriptor default is unwrapped to its inner value.
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, "keys", params[1].Default)
	assert.False(t, params[1].KeywordOnly)

	// Option-style descriptors are reclassified keyword-only.
	assert.True(t, params[2].HasDefault)
	assert.Nil(t, params[2].Default)
	assert.True(t, params[2].KeywordOnly)
	assert.Equal(t, reflect.TypeOf((*int)(nil)), params[2].Type)
}

func TestNormalizePlainDefaults(t *testing.T) {
	fn := func(a string, b int) {}
	sig, err := Normalize(fn, []param.Spec{
		param.Bare("a"),
		param.Plain("b", 7),
	})
	require.NoError(t, err)

	params := sig.Params()
	assert.False(t, params[0].HasDefault)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, 7, params[1].Default)
}

func TestNormalizeAllowsRequiredAfterOptional(t *testing.T) {
	// The general binding path enforces no ordering invariant; only the
	// record synthesizer is stricter.
	fn := func(keys string, pod int) {}
	sig, err := Normalize(fn, []param.Spec{
		param.Argument("keys", "keys", ""),
		param.Option("pod", param.Required, ""),
	})
	require.NoError(t, err)
	params := sig.Params()
	assert.True(t, params[0].HasDefault)
	assert.False(t, params[1].HasDefault)
}

func TestNormalizeErrors(t *testing.T) {
	fn := func(a, b string) {}
	tests := []struct {
		name  string
		fn    any
		specs []param.Spec
		code  SignatureErrorCode
	}{
		{
			name: "nil function",
			fn:   nil,
			code: ErrCodeNotAFunction,
		},
		{
			name: "not a function",
			fn:   42,
			code: ErrCodeNotAFunction,
		},
		{
			name: "variadic",
			fn:   func(xs ...string) {},
			code: ErrCodeVariadicFunction,
		},
		{
			name:  "arity mismatch",
			fn:    fn,
			specs: []param.Spec{param.Bare("a")},
			code:  ErrCodeArityMismatch,
		},
		{
			name:  "duplicate name",
			fn:    fn,
			specs: []param.Spec{param.Bare("a"), param.Bare("a")},
			code:  ErrCodeDuplicateParameter,
		},
		{
			name:  "empty name",
			fn:    fn,
			specs: []param.Spec{param.Bare("a"), param.Bare("")},
			code:  ErrCodeEmptyParameterName,
		},
		{
			name:  "default type mismatch",
			fn:    fn,
			specs: []param.Spec{param.Plain("a", 3), param.Bare("b")},
			code:  ErrCodeDefaultMismatch,
		},
		{
			name:  "nil default for value type",
			fn:    fn,
			specs: []param.Spec{param.Plain("a", nil), param.Bare("b")},
			code:  ErrCodeDefaultMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.fn, tt.specs)
			require.Error(t, err)
			var se *SignatureError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
		})
	}
}

func TestSignatureAccessors(t *testing.T) {
	sig, err := Normalize(exportKeys, exportKeysSpecs())
	require.NoError(t, err)

	p, ok := sig.Param("keys")
	require.True(t, ok)
	assert.Equal(t, "keys", p.Default)

	_, ok = sig.Param("frog")
	assert.False(t, ok)

	pos := sig.Positional()
	require.Len(t, pos, 2)
	assert.Equal(t, "bucket", pos[0].Name)
	assert.Equal(t, "keys", pos[1].Name)
	assert.Equal(t, 1, sig.RequiredPositional())
}

func TestCoerce(t *testing.T) {
	intPtr := reflect.TypeOf((*int)(nil))

	t.Run("assignable", func(t *testing.T) {
		v, err := Coerce("x", reflect.TypeOf(""))
		require.NoError(t, err)
		assert.Equal(t, "x", v.Interface())
	})

	t.Run("numeric conversion", func(t *testing.T) {
		v, err := Coerce(3, reflect.TypeOf(int64(0)))
		require.NoError(t, err)
		assert.Equal(t, int64(3), v.Interface())
	})

	t.Run("cross genre rejected", func(t *testing.T) {
		_, err := Coerce(3.5, reflect.TypeOf(0))
		assert.Error(t, err)
		_, err = Coerce("3", reflect.TypeOf(0))
		assert.Error(t, err)
	})

	t.Run("nil for pointer", func(t *testing.T) {
		v, err := Coerce(nil, intPtr)
		require.NoError(t, err)
		assert.True(t, v.IsNil())
	})

	t.Run("nil for value type rejected", func(t *testing.T) {
		_, err := Coerce(nil, reflect.TypeOf(0))
		assert.Error(t, err)
	})

	t.Run("boxing into pointer", func(t *testing.T) {
		v, err := Coerce(3, intPtr)
		require.NoError(t, err)
		require.IsType(t, (*int)(nil), v.Interface())
		assert.Equal(t, 3, *v.Interface().(*int))
	})
}
