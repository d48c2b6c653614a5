package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/josh-kwaku/library-fines/internal/domain"
	"github.com/josh-kwaku/library-fines/internal/fine"
	"github.com/josh-kwaku/library-fines/internal/intake"
	"github.com/josh-kwaku/library-fines/internal/logging"
)

type assessor interface {
	Assess(loan domain.LoanRecord) (*fine.Assessment, error)
}

// Result is the outcome of one case. Exactly one of Assessment and Err is set.
type Result struct {
	Number     int
	Assessment *fine.Assessment
	Err        error
}

type Runner struct {
	fines assessor
}

func New(fines assessor) *Runner {
	return &Runner{fines: fines}
}

// RunCase evaluates a single case read from a batch.
func (r *Runner) RunCase(ctx context.Context, c intake.Case) Result {
	if c.Err != nil {
		logging.FromContext(ctx).Warn("skipping case", "case", c.Number, "error", c.Err)
		return Result{Number: c.Number, Err: c.Err}
	}

	a, err := r.fines.Assess(c.Loan)
	if err != nil {
		logging.FromContext(ctx).Warn("skipping case", "case", c.Number, "error", err)
		return Result{Number: c.Number, Err: fmt.Errorf("case %d: %w", c.Number, err)}
	}
	return Result{Number: c.Number, Assessment: a}
}

// Run streams every case from rd through the calculator and hands each
// result to emit. Bad records are skipped; a truncated stream stops the
// run and its error is returned after the cases already read were emitted.
func (r *Runner) Run(ctx context.Context, rd *intake.Reader, emit func(Result) error) error {
	log := logging.FromContext(ctx)
	evaluated, skipped := 0, 0

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("Run: %w", err)
		}

		c, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn("stopping batch", "error", err, "evaluated", evaluated, "skipped", skipped)
			return fmt.Errorf("Run: %w", err)
		}

		res := r.RunCase(ctx, c)
		if res.Err != nil {
			skipped++
		} else {
			evaluated++
		}
		if err := emit(res); err != nil {
			return fmt.Errorf("Run: emit case %d: %w", c.Number, err)
		}
	}

	log.Info("batch completed", "cases", rd.Total(), "evaluated", evaluated, "skipped", skipped)
	return nil
}
