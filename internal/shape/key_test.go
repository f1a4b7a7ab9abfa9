package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	testCases := []struct {
		name       string
		positional int
		labels     []string
		expected   Key
	}{
		{name: "empty record", positional: 0, labels: nil, expected: "0;"},
		{name: "positional only", positional: 2, labels: nil, expected: "2;"},
		{name: "one positional one named", positional: 1, labels: []string{"b"}, expected: "2;b,"},
		{name: "named only", positional: 0, labels: []string{"a", "b"}, expected: "2;a,b,"},
		{name: "mixed", positional: 1, labels: []string{"a", "b"}, expected: "3;a,b,"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveKey(tc.positional, tc.labels))
		})
	}
}

func TestPositionalLabel(t *testing.T) {
	assert.Equal(t, "$1", PositionalLabel(0))
	assert.Equal(t, "$10", PositionalLabel(9))
}

func TestValidateLabel(t *testing.T) {
	for _, label := range []string{"a", "b_2", "name", "x$"} {
		assert.NoError(t, ValidateLabel(label), "label %q", label)
	}

	testCases := []struct {
		label  string
		errMsg string
	}{
		{label: "", errMsg: "must not be empty"},
		{label: "$1", errMsg: "must not start with '$'"},
		{label: "a,b", errMsg: "must not contain"},
		{label: "2;a", errMsg: "must not contain"},
	}
	for _, tc := range testCases {
		err := ValidateLabel(tc.label)
		require.Error(t, err, "label %q", tc.label)
		assert.Contains(t, err.Error(), tc.errMsg)
	}
}

// Valid labels keep keys apart that would otherwise render identically.
func TestDeriveKey_SeparatorLabelRejected(t *testing.T) {
	assert.Equal(t, DeriveKey(1, []string{"a,b"}), DeriveKey(0, []string{"a", "b"}))
	assert.Error(t, ValidateLabel("a,b"))
}
