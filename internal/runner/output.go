package runner

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/josh-kwaku/library-fines/internal/fine"
)

// TextWriter prints the receipt lines of the original desk tool.
type TextWriter struct {
	w     io.Writer
	label string
}

func NewTextWriter(w io.Writer, currencyLabel string) *TextWriter {
	return &TextWriter{w: w, label: currencyLabel}
}

func (t *TextWriter) Write(res Result) error {
	if res.Err != nil {
		_, err := fmt.Fprintf(t.w, "--- Case %d ---\nSkipped: %v\n", res.Number, res.Err)
		return err
	}
	_, err := fmt.Fprintf(t.w, "--- Case %d ---\nTotal Fine: %s\n", res.Number, fine.Format(t.label, res.Assessment.Total))
	return err
}

type caseLine struct {
	Case             int    `json:"case"`
	Category         string `json:"category,omitempty"`
	Borrower         string `json:"borrower,omitempty"`
	DaysOverdue      int    `json:"days_overdue"`
	PriorLateReturns int    `json:"prior_late_returns"`
	BaseFine         string `json:"base_fine,omitempty"`
	Penalties        string `json:"penalties,omitempty"`
	DiscountKind     string `json:"discount_kind,omitempty"`
	Discount         string `json:"discount,omitempty"`
	Total            string `json:"total,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Error            string `json:"error,omitempty"`
}

// JSONWriter emits one JSON object per case, newline separated.
type JSONWriter struct {
	enc   *jsoniter.Encoder
	label string
}

func NewJSONWriter(w io.Writer, currencyLabel string) *JSONWriter {
	return &JSONWriter{enc: jsoniter.ConfigFastest.NewEncoder(w), label: currencyLabel}
}

func (j *JSONWriter) Write(res Result) error {
	line := caseLine{Case: res.Number}
	if res.Err != nil {
		line.Error = res.Err.Error()
	} else {
		a := res.Assessment
		line.Category = string(a.Loan.Category)
		line.Borrower = string(a.Loan.Borrower)
		line.DaysOverdue = a.Loan.DaysOverdue
		line.PriorLateReturns = a.Loan.PriorLateReturns
		line.BaseFine = a.Base.StringFixed(fine.Places)
		line.Penalties = a.Penalties.Total().StringFixed(fine.Places)
		line.DiscountKind = string(a.Discount.Kind)
		line.Discount = a.Discount.Amount.String()
		line.Total = a.Total.StringFixed(fine.Places)
		line.Currency = j.label
	}
	if err := j.enc.Encode(line); err != nil {
		return fmt.Errorf("JSONWriter.Write: %w", err)
	}
	return nil
}
