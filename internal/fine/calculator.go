package fine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/library-fines/internal/domain"
)

// Places is the number of decimal places a final fine is rounded to.
const Places = 2

type DiscountKind string

const (
	DiscountNone         DiscountKind = "none"
	DiscountStaff        DiscountKind = "staff"
	DiscountGoodBorrower DiscountKind = "good_borrower"
)

type Discount struct {
	Kind   DiscountKind
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

type Penalties struct {
	LongOverdue decimal.Decimal
	Habitual    decimal.Decimal
}

func (p Penalties) Total() decimal.Decimal {
	return p.LongOverdue.Add(p.Habitual)
}

// Assessment is the full breakdown of one fine computation. Only Total is
// rounded; every other amount is exact.
type Assessment struct {
	Loan           domain.LoanRecord
	Base           decimal.Decimal
	Penalties      Penalties
	AfterPenalties decimal.Decimal
	Discount       Discount
	Unrounded      decimal.Decimal
	Total          decimal.Decimal
}

// Calculator evaluates loans against a fixed rule set. It holds no mutable
// state and is safe for concurrent use.
type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules.clone()}
}

func (c *Calculator) BaseFine(category domain.MediaCategory, daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}
	s, ok := c.rules.Schedules[category]
	if !ok {
		return decimal.Zero
	}
	return s.charge(daysOverdue)
}

func (c *Calculator) ApplyPenalties(fine decimal.Decimal, daysOverdue, priorLateReturns int) decimal.Decimal {
	return fine.Add(c.penalties(daysOverdue, priorLateReturns).Total())
}

func (c *Calculator) penalties(daysOverdue, priorLateReturns int) Penalties {
	p := Penalties{LongOverdue: decimal.Zero, Habitual: decimal.Zero}
	if daysOverdue <= 0 {
		return p
	}
	if daysOverdue > c.rules.LongOverdueAfter {
		p.LongOverdue = c.rules.LongOverduePenalty
	}
	if priorLateReturns >= c.rules.HabitualThreshold {
		p.Habitual = c.rules.HabitualPenalty
	}
	return p
}

func (c *Calculator) ApplyDiscounts(fine decimal.Decimal, borrower domain.BorrowerClass, daysOverdue, priorLateReturns int) decimal.Decimal {
	return fine.Sub(c.discount(fine, borrower, daysOverdue, priorLateReturns).Amount)
}

// discount picks at most one reduction. Staff always wins over the good
// borrower reward.
func (c *Calculator) discount(fine decimal.Decimal, borrower domain.BorrowerClass, daysOverdue, priorLateReturns int) Discount {
	none := Discount{Kind: DiscountNone, Rate: decimal.Zero, Amount: decimal.Zero}
	if fine.IsZero() {
		return none
	}

	if borrower == domain.BorrowerStaff {
		return Discount{
			Kind:   DiscountStaff,
			Rate:   c.rules.StaffDiscountRate,
			Amount: fine.Mul(c.rules.StaffDiscountRate),
		}
	}

	if priorLateReturns == 0 && daysOverdue > 0 && daysOverdue <= c.rules.GoodBorrowerMaxDays {
		return Discount{
			Kind:   DiscountGoodBorrower,
			Rate:   c.rules.GoodBorrowerDiscountRate,
			Amount: fine.Mul(c.rules.GoodBorrowerDiscountRate),
		}
	}

	return none
}

// Assess runs base fine, penalties and discounts in that order and rounds
// the result once at the end.
func (c *Calculator) Assess(loan domain.LoanRecord) (*Assessment, error) {
	if err := loan.Validate(); err != nil {
		return nil, fmt.Errorf("Assess: %w", err)
	}

	base := c.BaseFine(loan.Category, loan.DaysOverdue)
	penalties := c.penalties(loan.DaysOverdue, loan.PriorLateReturns)
	afterPenalties := base.Add(penalties.Total())
	discount := c.discount(afterPenalties, loan.Borrower, loan.DaysOverdue, loan.PriorLateReturns)
	unrounded := afterPenalties.Sub(discount.Amount)

	return &Assessment{
		Loan:           loan,
		Base:           base,
		Penalties:      penalties,
		AfterPenalties: afterPenalties,
		Discount:       discount,
		Unrounded:      unrounded,
		Total:          Round(unrounded),
	}, nil
}

// Evaluate returns the rounded fine for a loan.
func (c *Calculator) Evaluate(loan domain.LoanRecord) (decimal.Decimal, error) {
	a, err := c.Assess(loan)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Evaluate: %w", err)
	}
	return a.Total, nil
}

// Round rounds to cents, half away from zero (2.345 -> 2.35).
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Format renders an amount with exactly two decimals and an optional
// currency label, e.g. "RM 12.50".
func Format(label string, amount decimal.Decimal) string {
	s := Round(amount).StringFixed(Places)
	if label == "" {
		return s
	}
	return label + " " + s
}
