package domain

import (
	"regexp"
	"time"
)

// Input collects everything one month's revenue derives from. All amounts
// are cents.
type Input struct {
	// ConsultingPayments are the positive student payment amounts dated
	// within the month.
	ConsultingPayments []int64
	// AnnualMemberPayments are the annual community payments whose join date
	// falls within the month.
	AnnualMemberPayments []int64
	// CommunityMonthlyCount is the current monthly-subscription count. No
	// historical snapshot exists, so past months are approximated with
	// today's count.
	CommunityMonthlyCount int
	CommunityUnitPrice    int64
	AgencyRevenue         int64
	GumroadRevenue        int64
	Goal                  int64
}

// Breakdown is one month's revenue decomposed by source, plus progress
// toward the global goal.
type Breakdown struct {
	MonthKey          string  `json:"month_key"`
	ConsultingRevenue int64   `json:"consulting_revenue"`
	CommunityRevenue  int64   `json:"community_revenue"`
	AgencyRevenue     int64   `json:"agency_revenue"`
	ProductRevenue    int64   `json:"product_revenue"`
	Total             int64   `json:"total"`
	Goal              int64   `json:"goal"`
	ProgressPercent   float64 `json:"progress_percent"`
}

// Compute sums the four revenue sources for one month. Pure and
// order-independent; computing it twice over the same inputs yields the same
// breakdown.
func Compute(monthKey string, in Input) Breakdown {
	var consulting int64
	for _, amount := range in.ConsultingPayments {
		if amount > 0 {
			consulting += amount
		}
	}

	var community int64
	for _, amount := range in.AnnualMemberPayments {
		if amount > 0 {
			community += amount
		}
	}
	if in.CommunityMonthlyCount > 0 && in.CommunityUnitPrice > 0 {
		community += int64(in.CommunityMonthlyCount) * in.CommunityUnitPrice
	}

	total := consulting + community + in.AgencyRevenue + in.GumroadRevenue

	// A goal of zero or less falls back to a denominator of one cent so the
	// percentage never divides by zero.
	goal := in.Goal
	denominator := goal
	if denominator <= 0 {
		denominator = 1
	}
	progress := float64(total) / float64(denominator) * 100
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}

	return Breakdown{
		MonthKey:          monthKey,
		ConsultingRevenue: consulting,
		CommunityRevenue:  community,
		AgencyRevenue:     in.AgencyRevenue,
		ProductRevenue:    in.GumroadRevenue,
		Total:             total,
		Goal:              goal,
		ProgressPercent:   progress,
	}
}

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonthKey reports whether key has the "YYYY-MM" shape.
func ValidMonthKey(key string) bool {
	return monthKeyPattern.MatchString(key)
}

// MonthBounds returns the half-open [start, end) UTC range for a month key.
func MonthBounds(key string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
