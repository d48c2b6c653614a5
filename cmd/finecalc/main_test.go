package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	in := "3\n35 G S 0\n2 G T 0\n16 T S 0\n"
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), "", "text", "RM", strings.NewReader(in), &out))

	assert.Equal(t, `--- Case 1 ---
Total Fine: RM 36.50
--- Case 2 ---
Total Fine: RM 0.80
--- Case 3 ---
Total Fine: RM 360.00
`, out.String())
}

func TestRunFromFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n3 G S 0\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), path, "json", "RM", strings.NewReader(""), &out))

	assert.Contains(t, out.String(), `"total":"0.75"`)
	assert.Contains(t, out.String(), `"discount_kind":"good_borrower"`)
}

func TestRunReportsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing count", "", "Missing number of test cases.\n"},
		{"truncated", "2\n1 G S 0\n4 G", "--- Case 1 ---\nTotal Fine: RM 0.25\nInvalid or incomplete test case input.\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(context.Background(), "", "text", "RM", strings.NewReader(tc.in), &out))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	err := run(context.Background(), "", "xml", "RM", strings.NewReader("0"), &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunMissingFile(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "nope"), "text", "RM", nil, &bytes.Buffer{})
	require.ErrorIs(t, err, os.ErrNotExist)
}
