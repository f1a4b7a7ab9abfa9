package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/recordrt/internal/app"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		expected   *app.Config
		shouldExit bool
		errMsg     string
	}{
		{
			name: "positional path with defaults",
			args: []string{"records.hcl"},
			expected: &app.Config{
				LiteralPath: "records.hcl",
				LogFormat:   "text",
				LogLevel:    "info",
				Mode:        app.ModePlain,
				WorkerCount: 4,
			},
		},
		{
			name: "all flags",
			args: []string{"-f", "dir", "--mode", "SAFE", "--log-format", "json", "--log-level", "debug", "--workers", "8", "--check-keys"},
			expected: &app.Config{
				LiteralPath: "dir",
				LogFormat:   "json",
				LogLevel:    "debug",
				Mode:        app.ModeSafe,
				WorkerCount: 8,
				CheckKeys:   true,
			},
		},
		{name: "help", args: []string{"--help"}, shouldExit: true},
		{name: "no path", args: nil, shouldExit: true},
		{name: "unknown flag", args: []string{"--nope"}, errMsg: "unknown flag: --nope"},
		{name: "bad log format", args: []string{"--log-format", "xml", "x.hcl"}, errMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"--log-level", "loud", "x.hcl"}, errMsg: "invalid log-level"},
		{name: "bad mode", args: []string{"--mode", "fancy", "x.hcl"}, errMsg: "invalid mode"},
		{name: "extra argument", args: []string{"a.hcl", "b.hcl"}, errMsg: "unexpected argument: b.hcl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.errMsg != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, 2, exitErr.ExitCode())
				assert.Contains(t, exitErr.Error(), tc.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestParse_UsageMentionsFlags(t *testing.T) {
	out := &bytes.Buffer{}
	_, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--check-keys")
}
