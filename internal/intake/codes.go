package intake

import (
	"fmt"
	"strings"

	"github.com/josh-kwaku/library-fines/internal/domain"
)

var categoryCodes = map[string]domain.MediaCategory{
	"R":          domain.MediaReference,
	"G":          domain.MediaGeneral,
	"M":          domain.MediaMagazine,
	"C":          domain.MediaMultimedia,
	"T":          domain.MediaThesis,
	"REFERENCE":  domain.MediaReference,
	"GENERAL":    domain.MediaGeneral,
	"MAGAZINE":   domain.MediaMagazine,
	"MULTIMEDIA": domain.MediaMultimedia,
	"CD":         domain.MediaMultimedia,
	"THESIS":     domain.MediaThesis,
}

var borrowerCodes = map[string]domain.BorrowerClass{
	"S":       domain.BorrowerStudent,
	"T":       domain.BorrowerStaff,
	"STUDENT": domain.BorrowerStudent,
	"STAFF":   domain.BorrowerStaff,
	"TEACHER": domain.BorrowerStaff,
}

// ParseCategory maps a single-letter code or a category word, in any case,
// to a media category.
func ParseCategory(token string) (domain.MediaCategory, error) {
	c, ok := categoryCodes[normalize(token)]
	if !ok {
		return "", fmt.Errorf("ParseCategory: book code %q: %w", token, domain.ErrUnrecognizedCode)
	}
	return c, nil
}

// ParseBorrower maps S/T or student/staff/teacher, in any case, to a
// borrower class.
func ParseBorrower(token string) (domain.BorrowerClass, error) {
	b, ok := borrowerCodes[normalize(token)]
	if !ok {
		return "", fmt.Errorf("ParseBorrower: borrower code %q: %w", token, domain.ErrUnrecognizedCode)
	}
	return b, nil
}

func normalize(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}
