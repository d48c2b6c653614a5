package fine

import (
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/library-fines/internal/domain"
)

// Tier charges Rate per day for the days between the previous tier's
// bound (exclusive) and UpTo (inclusive). UpTo of 0 means unbounded and
// is only meaningful on the last tier.
type Tier struct {
	UpTo int
	Rate decimal.Decimal
}

// Schedule is the base-rate definition for one media category.
type Schedule struct {
	// Flat is charged once as soon as the item is overdue at all.
	Flat  decimal.Decimal
	Tiers []Tier
	// Surcharge is added once when days overdue exceed SurchargeAfter.
	Surcharge      decimal.Decimal
	SurchargeAfter int
}

type Rules struct {
	Schedules map[domain.MediaCategory]Schedule

	LongOverdueAfter   int
	LongOverduePenalty decimal.Decimal
	HabitualThreshold  int
	HabitualPenalty    decimal.Decimal

	StaffDiscountRate        decimal.Decimal
	GoodBorrowerDiscountRate decimal.Decimal
	GoodBorrowerMaxDays      int
}

// DefaultRules returns the library's published fine schedule. Each call
// builds a fresh value so callers may derive variants without affecting
// other calculators.
func DefaultRules() Rules {
	return Rules{
		Schedules: map[domain.MediaCategory]Schedule{
			domain.MediaReference: {
				Flat: decimal.RequireFromString("100.00"),
			},
			domain.MediaGeneral: {
				Tiers: []Tier{
					{UpTo: 7, Rate: decimal.RequireFromString("0.50")},
					{UpTo: 30, Rate: decimal.RequireFromString("1.00")},
					{Rate: decimal.RequireFromString("2.00")},
				},
			},
			domain.MediaMagazine: {
				Tiers: []Tier{{Rate: decimal.RequireFromString("0.20")}},
			},
			domain.MediaMultimedia: {
				Tiers: []Tier{
					{UpTo: 10, Rate: decimal.RequireFromString("2.00")},
					{Rate: decimal.RequireFromString("5.00")},
				},
			},
			domain.MediaThesis: {
				Tiers:          []Tier{{Rate: decimal.RequireFromString("10.00")}},
				Surcharge:      decimal.RequireFromString("200.00"),
				SurchargeAfter: 15,
			},
		},

		LongOverdueAfter:   60,
		LongOverduePenalty: decimal.RequireFromString("25.00"),
		HabitualThreshold:  3,
		HabitualPenalty:    decimal.RequireFromString("10.00"),

		StaffDiscountRate:        decimal.RequireFromString("0.20"),
		GoodBorrowerDiscountRate: decimal.RequireFromString("0.50"),
		GoodBorrowerMaxDays:      3,
	}
}

// clone deep-copies the schedule map and tier slices.
func (r Rules) clone() Rules {
	out := r
	out.Schedules = make(map[domain.MediaCategory]Schedule, len(r.Schedules))
	for cat, s := range r.Schedules {
		s.Tiers = append([]Tier(nil), s.Tiers...)
		out.Schedules[cat] = s
	}
	return out
}

// charge computes the base amount for days > 0 in closed form: one
// multiplication per tier, independent of the day count.
func (s Schedule) charge(days int) decimal.Decimal {
	total := s.Flat
	lower := 0
	for _, t := range s.Tiers {
		upper := t.UpTo
		if upper == 0 || upper > days {
			upper = days
		}
		if n := upper - lower; n > 0 {
			total = total.Add(t.Rate.Mul(decimal.NewFromInt(int64(n))))
		}
		if upper >= days {
			break
		}
		lower = upper
	}
	if days > s.SurchargeAfter && !s.Surcharge.IsZero() {
		total = total.Add(s.Surcharge)
	}
	return total
}
