package cliapp

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/param"
)

type call struct {
	bucket string
	keys   string
	pid    *int
}

// exportKeysCapture returns a command whose invocations are recorded in
// *got, so tests can assert on the exact bound values.
func exportKeysCapture(t *testing.T, got *call) *command.Command {
	t.Helper()
	cmd, err := command.New("export_keys",
		func(bucket, keys string, pid *int) {
			*got = call{bucket: bucket, keys: keys, pid: pid}
		},
		param.Argument("bucket", param.Required, "The bucket to use"),
		param.Argument("keys", "keys", "The keys to download"),
		param.Option("pid", nil, "pid").WithShort("p").WithEnv("EXPORT_PID"),
	)
	require.NoError(t, err)
	return cmd
}

func execute(t *testing.T, cmd *command.Command, args []string, opts ...BridgeOption) error {
	t.Helper()
	cc, err := Bridge(cmd, opts...)
	require.NoError(t, err)
	cc.SetOut(new(bytes.Buffer))
	cc.SetErr(new(bytes.Buffer))
	cc.SetArgs(args)
	return cc.Execute()
}

func TestBridgeUseLine(t *testing.T) {
	var got call
	cc, err := Bridge(exportKeysCapture(t, &got), WithSummary("Export keys from a bucket"))
	require.NoError(t, err)
	assert.Equal(t, "export_keys <bucket> [keys]", cc.Use)
	assert.Equal(t, "Export keys from a bucket", cc.Short)
	assert.NotNil(t, cc.Flags().Lookup("pid"))
}

func TestBridgeExecute(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	require.NoError(t, execute(t, cmd, []string{"bukket", "--pid", "3"}))
	assert.Equal(t, "bukket", got.bucket)
	assert.Equal(t, "keys", got.keys)
	require.NotNil(t, got.pid)
	assert.Equal(t, 3, *got.pid)
}

func TestBridgeOmittedFlagUsesDefault(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	require.NoError(t, execute(t, cmd, []string{"bukket", "other_keys"}))
	assert.Equal(t, "other_keys", got.keys)
	assert.Nil(t, got.pid)
}

func TestBridgePositionalCount(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	err := execute(t, cmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg(s)")

	err = execute(t, cmd, []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg(s)")
}

func TestBridgeRequiredFlag(t *testing.T) {
	var gotRegion string
	cmd, err := command.New("sync",
		func(region string) { gotRegion = region },
		param.Option("region", param.Required, "Target region"),
	)
	require.NoError(t, err)

	err = execute(t, cmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")

	require.NoError(t, execute(t, cmd, []string{"--region", "eu-west-1"}))
	assert.Equal(t, "eu-west-1", gotRegion)
}

func TestBridgeEnvFallback(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	t.Setenv("EXPORT_PID", "41")
	require.NoError(t, execute(t, cmd, []string{"bukket"}))
	require.NotNil(t, got.pid)
	assert.Equal(t, 41, *got.pid)

	// An explicit flag wins over the environment.
	require.NoError(t, execute(t, cmd, []string{"bukket", "--pid", "3"}))
	require.NotNil(t, got.pid)
	assert.Equal(t, 3, *got.pid)
}

func TestBridgeDefaultsFile(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pid: 7\n"), 0o644))

	require.NoError(t, execute(t, cmd, []string{"bukket"}, WithDefaultsFile(path)))
	require.NotNil(t, got.pid)
	assert.Equal(t, 7, *got.pid)

	// Flag > defaults file.
	require.NoError(t, execute(t, cmd, []string{"bukket", "--pid", "3"}, WithDefaultsFile(path)))
	require.NotNil(t, got.pid)
	assert.Equal(t, 3, *got.pid)

	err := execute(t, cmd, []string{"bukket"}, WithDefaultsFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read defaults file")
}

func TestBridgeEnvBeatsDefaultsFile(t *testing.T) {
	var got call
	cmd := exportKeysCapture(t, &got)

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pid: 7\n"), 0o644))

	t.Setenv("EXPORT_PID", "41")
	require.NoError(t, execute(t, cmd, []string{"bukket"}, WithDefaultsFile(path)))
	require.NotNil(t, got.pid)
	assert.Equal(t, 41, *got.pid)
}

func TestBridgePrintsResults(t *testing.T) {
	cmd, err := command.New("greet",
		func(name string) string { return "hello " + name },
		param.Bare("name"),
	)
	require.NoError(t, err)

	cc, err := Bridge(cmd)
	require.NoError(t, err)
	out := new(bytes.Buffer)
	cc.SetOut(out)
	cc.SetErr(new(bytes.Buffer))
	cc.SetArgs([]string{"frog"})
	require.NoError(t, cc.Execute())
	assert.Equal(t, "hello frog\n", out.String())
}

func TestBridgeRejectsUnsupportedFlagType(t *testing.T) {
	cmd, err := command.New("bad",
		func(m map[string]int) {},
		param.Option("m", param.Required, ""),
	)
	require.NoError(t, err)

	_, err = Bridge(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no flag type")
}

func TestBridgeUsageGolden(t *testing.T) {
	var got call
	cc, err := Bridge(exportKeysCapture(t, &got))
	require.NoError(t, err)
	cc.InitDefaultHelpFlag()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "bridge_usage", []byte(cc.UsageString()))
}

func TestAppRegisterAndRebind(t *testing.T) {
	app := NewApp("demo", "Demo application")

	var got call
	fn, err := app.Command("export_keys",
		func(bucket, keys string, pid *int) {
			got = call{bucket: bucket, keys: keys, pid: pid}
		},
		param.Argument("bucket", param.Required, "The bucket to use"),
		param.Argument("keys", "keys", "The keys to download"),
		param.Option("pid", nil, "pid"),
	)
	require.NoError(t, err)

	// Direct invocation applies the corrected defaults.
	_, err = fn.Call("bukket")
	require.NoError(t, err)
	assert.Equal(t, "bukket", got.bucket)
	assert.Equal(t, "keys", got.keys)

	// The same declaration is mounted as a CLI subcommand.
	root := app.Root()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"export_keys", "other", "--pid", "3"})
	require.NoError(t, app.Execute())
	assert.Equal(t, "other", got.bucket)
	require.NotNil(t, got.pid)
	assert.Equal(t, 3, *got.pid)

	_, err = app.Command("broken", func(n int) {})
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{"string", "frog", "frog"},
		{"bool", "true", true},
		{"int", "42", 42},
		{"int64", "42", int64(42)},
		{"uint", "7", uint(7)},
		{"float", "2.5", 2.5},
		{"duration", "1m30s", 90 * time.Second},
		{"slice", "a,b,c", []string{"a", "b", "c"}},
		{"empty slice", "", []string{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseValue(tc.in, reflect.TypeOf(tc.want))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("pointer", func(t *testing.T) {
		got, err := parseValue("3", reflect.TypeOf((*int)(nil)))
		require.NoError(t, err)
		require.IsType(t, (*int)(nil), got)
		assert.Equal(t, 3, *got.(*int))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := parseValue("frog", reflect.TypeOf(0))
		assert.Error(t, err)
		_, err = parseValue("x", reflect.TypeOf(map[string]int{}))
		assert.Error(t, err)
	})
}
