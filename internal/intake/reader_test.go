package intake

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/library-fines/internal/domain"
)

func TestNewReaderMissingCount(t *testing.T) {
	for _, in := range []string{"", "   \n", "three", "-1"} {
		_, err := NewReader(strings.NewReader(in))
		require.ErrorIs(t, err, domain.ErrMissingCaseCount, "input %q", in)
	}
}

func TestReadAll(t *testing.T) {
	in := `5
35 G S 0
2 general staff 0
-1 M S 0
4 X S 1
61 t T 3
`
	r, err := NewReader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 5, r.Total())

	cases, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, cases, 5)

	assert.Equal(t, 1, cases[0].Number)
	assert.NoError(t, cases[0].Err)
	assert.Equal(t, domain.LoanRecord{
		Category:    domain.MediaGeneral,
		Borrower:    domain.BorrowerStudent,
		DaysOverdue: 35,
	}, cases[0].Loan)

	assert.NoError(t, cases[1].Err)
	assert.Equal(t, domain.BorrowerStaff, cases[1].Loan.Borrower)

	assert.Equal(t, 3, cases[2].Number)
	assert.ErrorIs(t, cases[2].Err, domain.ErrInvalidInput)

	assert.ErrorIs(t, cases[3].Err, domain.ErrUnrecognizedCode)

	assert.NoError(t, cases[4].Err)
	assert.Equal(t, domain.LoanRecord{
		Category:         domain.MediaThesis,
		Borrower:         domain.BorrowerStaff,
		DaysOverdue:      61,
		PriorLateReturns: 3,
	}, cases[4].Loan)
}

func TestReadAllTruncated(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantCases int
	}{
		{name: "stream ends mid record", in: "3\n1 G S 0\n2 M", wantCases: 1},
		{name: "days not an integer", in: "2\nabc G S 0\n1 G S 0", wantCases: 0},
		{name: "prior not an integer", in: "2\n1 G S 0\n1 G S x", wantCases: 1},
		{name: "fewer records than declared", in: "2\n1 G S 0\n", wantCases: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(tc.in))
			require.NoError(t, err)

			cases, err := r.ReadAll()
			require.ErrorIs(t, err, domain.ErrIncompleteRecord)
			assert.Len(t, cases, tc.wantCases)

			_, err = r.Next()
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestReadIgnoresTrailingInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("1 3 R S 0 99 G S 0"))
	require.NoError(t, err)

	cases, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, domain.MediaReference, cases[0].Loan.Category)
}
