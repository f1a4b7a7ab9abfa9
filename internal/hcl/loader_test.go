package hcl

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/recordrt/internal/config"
	"github.com/vk/recordrt/internal/ctxlog"
	"github.com/vk/recordrt/internal/shape"
	"github.com/vk/recordrt/internal/testutil"
)

func TestLoader_Load_Basic(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `
record "pair" {
  positional = [1, "hi"]
}

record "mixed" {
  positional = [1]
  named = {
    b = 2
  }
}

record "labels" {
  named = {
    zeta  = true
    alpha = 1.5
    mid   = null
  }
}

record "empty" {}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	expected := []*config.Literal{
		{Name: "pair", Key: "2;", Positional: 2, Values: []any{int64(1), "hi"}},
		{Name: "mixed", Key: "2;b,", Positional: 1, Labels: []string{"b"}, Values: []any{int64(1), int64(2)}},
		{Name: "labels", Key: "3;alpha,mid,zeta,", Positional: 0, Labels: []string{"alpha", "mid", "zeta"}, Values: []any{1.5, nil, true}},
		{Name: "empty", Key: "0;", Positional: 0, Values: []any{}},
	}
	if diff := cmp.Diff(expected, model.Literals); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_NestedLiterals(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"nested.hcl": `
record "outer" {
  positional = [[1, 2]]
  named = {
    inner = { y = "a", x = 1 }
  }
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Literals, 1)

	outer := model.Literals[0]
	assert.Equal(t, shape.Key("2;inner,"), outer.Key)

	tuple, ok := outer.Values[0].(*config.Literal)
	require.True(t, ok, "nested tuple should become a literal")
	assert.Equal(t, "outer.$1", tuple.Name)
	assert.Equal(t, shape.Key("2;"), tuple.Key)
	assert.Equal(t, []any{int64(1), int64(2)}, tuple.Values)

	object, ok := outer.Values[1].(*config.Literal)
	require.True(t, ok, "nested object should become a literal")
	assert.Equal(t, "outer.inner", object.Name)
	assert.Equal(t, shape.Key("2;x,y,"), object.Key)
	assert.Equal(t, []string{"x", "y"}, object.Labels)
	assert.Equal(t, []any{int64(1), "a"}, object.Values)
}

func TestLoader_Load_KeysMatchDeriveKey(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `record "a" { positional = [1, 2, 3] }`,
		"b.hcl": `record "b" { named = { c = 1, a = 2 } }`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Literals, 2)
	for _, lit := range model.Literals {
		assert.Equal(t, shape.DeriveKey(lit.Positional, lit.Labels), lit.Key, lit.Name)
		assert.Equal(t, lit.Len(), len(lit.Values), lit.Name)
	}
}

func TestLoader_Load_SingleFileAndExpressions(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"expr.hcl": `
record "computed" {
  positional = [1 + 2, "a${"b"}", 7 / 2]
}
`,
	})

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "expr.hcl"))
	require.NoError(t, err)
	require.Len(t, model.Literals, 1)
	assert.Equal(t, []any{int64(3), "ab", 3.5}, model.Literals[0].Values)
}

func TestLoader_Load_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		files  map[string]string
		errMsg string
	}{
		{
			name:   "syntax error",
			files:  map[string]string{"bad.hcl": `record "x" {`},
			errMsg: "failed to parse HCL file",
		},
		{
			name:   "unknown attribute",
			files:  map[string]string{"bad.hcl": `record "x" { extra = 1 }`},
			errMsg: "failed to decode HCL file",
		},
		{
			name:   "positional is not a tuple",
			files:  map[string]string{"bad.hcl": `record "x" { positional = "nope" }`},
			errMsg: "positional must be a tuple",
		},
		{
			name:   "named is not an object",
			files:  map[string]string{"bad.hcl": `record "x" { named = [1] }`},
			errMsg: "named must be an object",
		},
		{
			name:   "unknown variable",
			files:  map[string]string{"bad.hcl": `record "x" { positional = [nope] }`},
			errMsg: "record \"x\", positional",
		},
		{
			name:   "label containing a key separator",
			files:  map[string]string{"bad.hcl": `record "x" { named = { "a,b" = 2 } }`},
			errMsg: "must not contain ';' or ','",
		},
		{
			name:   "label shadowing a positional accessor",
			files:  map[string]string{"bad.hcl": `record "x" { positional = [1] named = { "$1" = 2 } }`},
			errMsg: "must not start with '$'",
		},
		{
			name:   "invalid label in a nested object",
			files:  map[string]string{"bad.hcl": `record "x" { positional = [{ "a;b" = 1 }] }`},
			errMsg: "x.$1",
		},
		{
			name: "duplicate name",
			files: map[string]string{
				"a.hcl": `record "x" {}`,
				"b.hcl": `record "x" {}`,
			},
			errMsg: "already defined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, tc.files)
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoader_Load_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}

func TestLoader_Load_LogsWithFileAttribute(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `record "p" { positional = [1] }`,
	})
	logs := &testutil.SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	_, err := NewLoader().Load(ctx, dir)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), `msg="Translated record literal." file=`+filepath.Join(dir, "main.hcl"))
}
