package cmdrec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdrec/cmdrec"
)

func exportKeys(bucket, keys string, pid *int) (string, string, *int) {
	return bucket, keys, pid
}

func declare(t *testing.T) *cmdrec.Command {
	t.Helper()
	cmd, err := cmdrec.NewCommand("export_keys", exportKeys,
		cmdrec.Argument("bucket", cmdrec.Required, "The bucket to use"),
		cmdrec.Argument("keys", "keys", "The keys to download"),
		cmdrec.Option("pid", nil, "pid"),
	)
	require.NoError(t, err)
	return cmd
}

func TestDeclareRebindInvoke(t *testing.T) {
	fn := cmdrec.Rebind(declare(t))

	results, err := fn.CallNamed(map[string]any{"pid": 3}, "bukket")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "bukket", results[0])
	assert.Equal(t, "keys", results[1])
	assert.Equal(t, 3, *results[2].(*int))

	_, err = fn.CallNamed(map[string]any{"frog": 30}, "bukket")
	assert.True(t, cmdrec.IsUnexpectedKeyword(err))

	_, err = fn.Call()
	assert.True(t, cmdrec.IsMissingRequired(err))
}

func TestSynthesizeRecord(t *testing.T) {
	cmd := declare(t)
	rt, err := cmdrec.Define(cmdrec.Rebind(cmd)).Build()
	require.NoError(t, err)

	// The rebound wrapper's back-reference was followed: the record reads
	// the original declaration, not an already-corrected signature.
	assert.Same(t, cmd, rt.Command())

	inst, err := rt.New("bukket")
	require.NoError(t, err)
	assert.Equal(t, "bukket", inst.Get("bucket"))
	assert.Equal(t, "keys", inst.Get("keys"))
	assert.Nil(t, inst.Get("pid"))

	_, err = rt.New()
	require.Error(t, err)
	assert.True(t, cmdrec.IsMissingRequired(err))
	assert.Contains(t, err.Error(), "bucket")
}

func TestAppEndToEnd(t *testing.T) {
	app := cmdrec.NewApp("demo", "Demo application")

	fn, err := app.Command("export_keys", exportKeys,
		cmdrec.Argument("bucket", cmdrec.Required, "The bucket to use"),
		cmdrec.Argument("keys", "keys", "The keys to download"),
		cmdrec.Option("pid", nil, "pid"),
	)
	require.NoError(t, err)

	results, err := fn.Call("bukket")
	require.NoError(t, err)
	assert.Equal(t, "bukket", results[0])
	assert.Equal(t, "keys", results[1])

	require.True(t, app.Root().HasSubCommands())
}

func TestStrictOrderingOnlyAtSynthesis(t *testing.T) {
	// Mixed ordering is legal for a callable command but refused when the
	// same declaration is turned into a record.
	cmd, err := cmdrec.NewCommand("less_simple", func(bucket, keys, pod string) string {
		return bucket + "-" + keys + "-" + pod
	},
		cmdrec.Argument("bucket", cmdrec.Required, ""),
		cmdrec.Argument("keys", "keys", ""),
		cmdrec.Option("pod", cmdrec.Required, ""),
	)
	require.NoError(t, err)

	results, err := cmdrec.Rebind(cmd).CallNamed(map[string]any{"pod": "pod"}, "bukket")
	require.NoError(t, err)
	assert.Equal(t, []any{"bukket-keys-pod"}, results)

	_, err = cmdrec.Define(cmd).Build()
	require.Error(t, err)
	assert.True(t, cmdrec.IsRequiredAfterOptional(err))
}
