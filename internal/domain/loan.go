package domain

import "fmt"

type MediaCategory string

const (
	MediaReference  MediaCategory = "reference"
	MediaGeneral    MediaCategory = "general"
	MediaMagazine   MediaCategory = "magazine"
	MediaMultimedia MediaCategory = "multimedia"
	MediaThesis     MediaCategory = "thesis"
)

// MediaCategories lists every category in display order.
var MediaCategories = []MediaCategory{
	MediaReference,
	MediaGeneral,
	MediaMagazine,
	MediaMultimedia,
	MediaThesis,
}

func (c MediaCategory) IsValid() bool {
	switch c {
	case MediaReference, MediaGeneral, MediaMagazine, MediaMultimedia, MediaThesis:
		return true
	}
	return false
}

type BorrowerClass string

const (
	BorrowerStudent BorrowerClass = "student"
	BorrowerStaff   BorrowerClass = "staff"
)

func (b BorrowerClass) IsValid() bool {
	return b == BorrowerStudent || b == BorrowerStaff
}

// LoanRecord is the input to a single fine computation. It carries no
// identity and is never modified once built.
type LoanRecord struct {
	Category         MediaCategory
	Borrower         BorrowerClass
	DaysOverdue      int
	PriorLateReturns int
}

func (l LoanRecord) Validate() error {
	if l.DaysOverdue < 0 {
		return fmt.Errorf("days overdue %d is negative: %w", l.DaysOverdue, ErrInvalidInput)
	}
	if l.PriorLateReturns < 0 {
		return fmt.Errorf("prior late returns %d is negative: %w", l.PriorLateReturns, ErrInvalidInput)
	}
	if !l.Category.IsValid() {
		return fmt.Errorf("media category %q: %w", l.Category, ErrInvalidInput)
	}
	if !l.Borrower.IsValid() {
		return fmt.Errorf("borrower class %q: %w", l.Borrower, ErrInvalidInput)
	}
	return nil
}
