package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnrecognizedCode = errors.New("unrecognized code")
	ErrMissingCaseCount = errors.New("missing number of test cases")
	ErrIncompleteRecord = errors.New("invalid or incomplete test case input")
)
