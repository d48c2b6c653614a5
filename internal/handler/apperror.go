package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}
	ErrInvalidInput     = &AppError{http.StatusBadRequest, "INVALID_INPUT", "Loan record is invalid"}
	ErrUnrecognizedCode = &AppError{http.StatusBadRequest, "UNRECOGNIZED_CODE", "Unrecognized category or borrower code"}
	ErrBatchTooLarge    = &AppError{http.StatusBadRequest, "BATCH_TOO_LARGE", "Batch exceeds the maximum number of loans"}
)
