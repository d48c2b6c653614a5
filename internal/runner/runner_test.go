package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/library-fines/internal/domain"
	"github.com/josh-kwaku/library-fines/internal/fine"
	"github.com/josh-kwaku/library-fines/internal/intake"
)

func newReader(t *testing.T, in string) *intake.Reader {
	t.Helper()
	rd, err := intake.NewReader(strings.NewReader(in))
	require.NoError(t, err)
	return rd
}

func TestRunTextReceipts(t *testing.T) {
	in := `4
35 G S 0
2 G T 0
-3 M S 0
61 G S 3
`
	var out bytes.Buffer
	tw := NewTextWriter(&out, "RM")
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(context.Background(), newReader(t, in), tw.Write)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "--- Case 1 ---\nTotal Fine: RM 36.50\n")
	assert.Contains(t, got, "--- Case 2 ---\nTotal Fine: RM 0.80\n")
	assert.Contains(t, got, "--- Case 3 ---\nSkipped: ")
	assert.Contains(t, got, "--- Case 4 ---\nTotal Fine: RM 123.50\n")
}

func TestRunSkipsUnrecognizedCodes(t *testing.T) {
	var results []Result
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(context.Background(), newReader(t, "3\n1 Z S 0\n1 G Q 0\n1 R S 0"), func(res Result) error {
		results = append(results, res)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.ErrorIs(t, results[0].Err, domain.ErrUnrecognizedCode)
	assert.ErrorIs(t, results[1].Err, domain.ErrUnrecognizedCode)
	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Assessment.Total.Equal(fine.Round(results[2].Assessment.Total)))
	assert.Equal(t, "50.00", results[2].Assessment.Total.StringFixed(2))
}

func TestRunStopsOnTruncatedInput(t *testing.T) {
	var results []Result
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(context.Background(), newReader(t, "3\n5 M S 0\n7 G"), func(res Result) error {
		results = append(results, res)
		return nil
	})
	require.ErrorIs(t, err, domain.ErrIncompleteRecord)
	require.Len(t, results, 1)
	assert.Equal(t, "1.00", results[0].Assessment.Total.StringFixed(2))
}

func TestRunPropagatesEmitError(t *testing.T) {
	boom := errors.New("disk full")
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(context.Background(), newReader(t, "2\n1 G S 0\n1 G S 0"), func(Result) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(ctx, newReader(t, "1\n1 G S 0"), func(Result) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

type failingAssessor struct{ err error }

func (f failingAssessor) Assess(domain.LoanRecord) (*fine.Assessment, error) {
	return nil, f.err
}

func TestRunCaseWrapsCalculatorError(t *testing.T) {
	r := New(failingAssessor{err: domain.ErrInvalidInput})

	res := r.RunCase(context.Background(), intake.Case{Number: 7})
	require.ErrorIs(t, res.Err, domain.ErrInvalidInput)
	assert.Equal(t, 7, res.Number)
	assert.Nil(t, res.Assessment)
}

func TestJSONWriter(t *testing.T) {
	var out bytes.Buffer
	jw := NewJSONWriter(&out, "RM")
	r := New(fine.NewCalculator(fine.DefaultRules()))

	err := r.Run(context.Background(), newReader(t, "2\n61 G T 3\n1 X S 0"), jw.Write)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "general", first["category"])
	assert.Equal(t, "staff", first["borrower"])
	assert.Equal(t, "88.50", first["base_fine"])
	assert.Equal(t, "35.00", first["penalties"])
	assert.Equal(t, "staff", first["discount_kind"])
	assert.Equal(t, "98.80", first["total"])
	assert.Equal(t, "RM", first["currency"])

	var second map[string]any
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal([]byte(lines[1]), &second))
	assert.Contains(t, second["error"], "unrecognized code")
	assert.EqualValues(t, 2, second["case"])
}
