package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/josh-kwaku/library-fines/internal/domain"
	"github.com/josh-kwaku/library-fines/internal/fine"
	"github.com/josh-kwaku/library-fines/internal/intake"
	"github.com/josh-kwaku/library-fines/internal/logging"
)

const maxBodyBytes = 1 << 20

type fineAssessor interface {
	Assess(loan domain.LoanRecord) (*fine.Assessment, error)
}

type FineHandler struct {
	fines         fineAssessor
	currencyLabel string
	maxBatchSize  int
}

func NewFineHandler(fines fineAssessor, currencyLabel string, maxBatchSize int) *FineHandler {
	return &FineHandler{fines: fines, currencyLabel: currencyLabel, maxBatchSize: maxBatchSize}
}

type evaluateRequest struct {
	Category         string `json:"category"`
	Borrower         string `json:"borrower"`
	DaysOverdue      *int   `json:"days_overdue"`
	PriorLateReturns *int   `json:"prior_late_returns"`
}

func (r evaluateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "required"})
	}
	if r.Borrower == "" {
		errs = append(errs, FieldError{Field: "borrower", Message: "required"})
	}

	if r.DaysOverdue == nil {
		errs = append(errs, FieldError{Field: "days_overdue", Message: "required"})
	} else if *r.DaysOverdue < 0 {
		errs = append(errs, FieldError{Field: "days_overdue", Message: "must be 0 or greater"})
	}

	if r.PriorLateReturns == nil {
		errs = append(errs, FieldError{Field: "prior_late_returns", Message: "required"})
	} else if *r.PriorLateReturns < 0 {
		errs = append(errs, FieldError{Field: "prior_late_returns", Message: "must be 0 or greater"})
	}

	return errs
}

// toLoan maps the raw category and borrower tokens onto the closed enums.
// It must only be called on a request that passed Validate.
func (r evaluateRequest) toLoan() (domain.LoanRecord, []FieldError, error) {
	var fields []FieldError

	category, catErr := intake.ParseCategory(r.Category)
	if catErr != nil {
		fields = append(fields, FieldError{Field: "category", Message: fmt.Sprintf("unrecognized code %q", r.Category)})
	}
	borrower, borErr := intake.ParseBorrower(r.Borrower)
	if borErr != nil {
		fields = append(fields, FieldError{Field: "borrower", Message: fmt.Sprintf("unrecognized code %q", r.Borrower)})
	}
	if catErr != nil {
		return domain.LoanRecord{}, fields, catErr
	}
	if borErr != nil {
		return domain.LoanRecord{}, fields, borErr
	}

	return domain.LoanRecord{
		Category:         category,
		Borrower:         borrower,
		DaysOverdue:      *r.DaysOverdue,
		PriorLateReturns: *r.PriorLateReturns,
	}, nil, nil
}

type discountDTO struct {
	Kind   string `json:"kind"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type assessmentDTO struct {
	Category           string      `json:"category"`
	Borrower           string      `json:"borrower"`
	DaysOverdue        int         `json:"days_overdue"`
	PriorLateReturns   int         `json:"prior_late_returns"`
	BaseFine           string      `json:"base_fine"`
	LongOverduePenalty string      `json:"long_overdue_penalty"`
	HabitualPenalty    string      `json:"habitual_penalty"`
	Discount           discountDTO `json:"discount"`
	TotalUnrounded     string      `json:"total_unrounded"`
	Total              string      `json:"total"`
	Currency           string      `json:"currency"`
	Display            string      `json:"display"`
}

func (h *FineHandler) toDTO(a *fine.Assessment) assessmentDTO {
	return assessmentDTO{
		Category:           string(a.Loan.Category),
		Borrower:           string(a.Loan.Borrower),
		DaysOverdue:        a.Loan.DaysOverdue,
		PriorLateReturns:   a.Loan.PriorLateReturns,
		BaseFine:           a.Base.StringFixed(fine.Places),
		LongOverduePenalty: a.Penalties.LongOverdue.StringFixed(fine.Places),
		HabitualPenalty:    a.Penalties.Habitual.StringFixed(fine.Places),
		Discount: discountDTO{
			Kind:   string(a.Discount.Kind),
			Rate:   a.Discount.Rate.String(),
			Amount: a.Discount.Amount.String(),
		},
		TotalUnrounded: a.Unrounded.String(),
		Total:          a.Total.StringFixed(fine.Places),
		Currency:       h.currencyLabel,
		Display:        fine.Format(h.currencyLabel, a.Total),
	}
}

func (h *FineHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	loan, fields, err := req.toLoan()
	if err != nil {
		logging.FromContext(r.Context()).Warn("fine evaluation rejected", "error", err)
		RespondAppError(w, appErrorFor(err), fields)
		return
	}

	a, err := h.fines.Assess(loan)
	if err != nil {
		logging.FromContext(r.Context()).Warn("fine evaluation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("fine evaluated",
		"category", loan.Category,
		"borrower", loan.Borrower,
		"days_overdue", loan.DaysOverdue,
		"total", a.Total.StringFixed(fine.Places),
	)
	RespondSuccess(w, http.StatusOK, h.toDTO(a))
}

type batchRequest struct {
	Loans []evaluateRequest `json:"loans"`
}

type batchItem struct {
	Index int            `json:"index"`
	Data  *assessmentDTO `json:"data,omitempty"`
	Error *APIError      `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchItem `json:"results"`
	Evaluated int         `json:"evaluated"`
	Skipped   int         `json:"skipped"`
}

// EvaluateBatch assesses every loan independently. A bad loan is reported
// in its slot and does not affect the others.
func (h *FineHandler) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if len(req.Loans) == 0 {
		RespondValidationError(w, []FieldError{{Field: "loans", Message: "must contain at least one loan"}})
		return
	}
	if len(req.Loans) > h.maxBatchSize {
		RespondAppError(w, ErrBatchTooLarge, map[string]int{"max": h.maxBatchSize, "got": len(req.Loans)})
		return
	}

	log := logging.FromContext(r.Context())
	resp := batchResponse{Results: make([]batchItem, 0, len(req.Loans))}

	for i, item := range req.Loans {
		res := batchItem{Index: i}

		if fields := item.Validate(); len(fields) > 0 {
			res.Error = &APIError{Code: ErrValidationFailed.Code, Message: ErrValidationFailed.Message, Details: fields}
		} else if loan, fields, err := item.toLoan(); err != nil {
			appErr := appErrorFor(err)
			res.Error = &APIError{Code: appErr.Code, Message: appErr.Message, Details: fields}
		} else if a, err := h.fines.Assess(loan); err != nil {
			appErr := appErrorFor(err)
			res.Error = &APIError{Code: appErr.Code, Message: appErr.Message}
		} else {
			dto := h.toDTO(a)
			res.Data = &dto
		}

		if res.Error != nil {
			log.Warn("skipping batch loan", "index", i, "code", res.Error.Code)
			resp.Skipped++
		} else {
			resp.Evaluated++
		}
		resp.Results = append(resp.Results, res)
	}

	log.Info("fine batch evaluated", "loans", len(req.Loans), "evaluated", resp.Evaluated, "skipped", resp.Skipped)
	RespondSuccess(w, http.StatusOK, resp)
}
