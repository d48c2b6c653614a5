package intake

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/josh-kwaku/library-fines/internal/domain"
)

// Case is one record read from a batch. Number is the 1-based position in
// the input. Err is set when the record was read but cannot be evaluated.
type Case struct {
	Number int
	Loan   domain.LoanRecord
	Err    error
}

// Reader parses the batch format: a case count followed by that many
// records of "days category borrower priorLate", whitespace separated.
type Reader struct {
	sc    *bufio.Scanner
	total int
	next  int
}

// NewReader reads the leading case count. It fails with
// domain.ErrMissingCaseCount when the input does not start with an integer.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	rd := &Reader{sc: sc, next: 1}
	n, ok := rd.readInt()
	if !ok || n < 0 {
		return nil, fmt.Errorf("NewReader: %w", domain.ErrMissingCaseCount)
	}
	rd.total = n
	return rd, nil
}

func (r *Reader) Total() int {
	return r.total
}

// Next returns the next case. It returns io.EOF once the declared number
// of cases has been read, and domain.ErrIncompleteRecord when the stream is
// truncated or a numeric field is not an integer; nothing after that is
// trustworthy, so callers should stop.
func (r *Reader) Next() (Case, error) {
	if r.next > r.total {
		return Case{}, io.EOF
	}
	num := r.next

	days, ok := r.readInt()
	if !ok {
		return Case{}, r.incomplete(num)
	}
	bookToken, ok := r.readWord()
	if !ok {
		return Case{}, r.incomplete(num)
	}
	borrowerToken, ok := r.readWord()
	if !ok {
		return Case{}, r.incomplete(num)
	}
	prior, ok := r.readInt()
	if !ok {
		return Case{}, r.incomplete(num)
	}
	r.next++

	c := Case{Number: num}
	if days < 0 || prior < 0 {
		c.Err = fmt.Errorf("case %d: days=%d prior=%d: %w", num, days, prior, domain.ErrInvalidInput)
		return c, nil
	}

	category, err := ParseCategory(bookToken)
	if err != nil {
		c.Err = fmt.Errorf("case %d: %w", num, err)
		return c, nil
	}
	borrower, err := ParseBorrower(borrowerToken)
	if err != nil {
		c.Err = fmt.Errorf("case %d: %w", num, err)
		return c, nil
	}

	c.Loan = domain.LoanRecord{
		Category:         category,
		Borrower:         borrower,
		DaysOverdue:      days,
		PriorLateReturns: prior,
	}
	return c, nil
}

// ReadAll collects every case. On a truncated stream it returns the cases
// read so far together with the error.
func (r *Reader) ReadAll() ([]Case, error) {
	var cases []Case
	for {
		c, err := r.Next()
		if err == io.EOF {
			return cases, nil
		}
		if err != nil {
			return cases, err
		}
		cases = append(cases, c)
	}
}

func (r *Reader) incomplete(num int) error {
	r.next = r.total + 1
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("case %d: %w: %w", num, domain.ErrIncompleteRecord, err)
	}
	return fmt.Errorf("case %d: %w", num, domain.ErrIncompleteRecord)
}

func (r *Reader) readWord() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	return r.sc.Text(), true
}

func (r *Reader) readInt() (int, bool) {
	w, ok := r.readWord()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0, false
	}
	return n, true
}
