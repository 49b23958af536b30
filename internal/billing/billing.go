// Package billing derives a student's payment status from their program start
// date and payment history.
//
// One rule is used everywhere: the due date is a rolling window of
// Rules.CycleDays anchored to the latest positive payment (or the program
// start when no payment exists). A calendar-month rollover never resets an
// unpaid account to current. Every surface that asks "is this student current
// on payments" calls Compute with the same inputs and therefore agrees
// exactly.
package billing

import "time"

// Rules carries the billing tunables. Zero values fall back to defaults so a
// zero Rules behaves like DefaultRules().
type Rules struct {
	CycleDays        int
	UrgentWindowDays int
}

func DefaultRules() Rules {
	return Rules{CycleDays: 30, UrgentWindowDays: 5}
}

// PaymentEvent is the slice of a payment relevant to cycle math. Amounts are
// cents; non-positive amounts stay in history but never count toward status.
type PaymentEvent struct {
	Amount int64
	PaidAt time.Time
}

// Input is a point-in-time snapshot of one student's billing inputs.
type Input struct {
	StartDate  time.Time
	PaidInFull bool
	Payments   []PaymentEvent
	AsOf       time.Time
	Rules      Rules
}

// Status is the derived billing state shared by card badges, the detail
// panel, overview KPIs and the assistant snapshot.
type Status struct {
	CurrentProgramMonth int       `json:"current_program_month"`
	PaymentsCount       int       `json:"payments_count"`
	MonthsOwed          int       `json:"months_owed"`
	TotalPaid           int64     `json:"total_paid"`
	DueDate             time.Time `json:"due_date"`
	DaysUntilDue        int       `json:"days_until_due"`
	IsOverdue           bool      `json:"is_overdue"`
	IsUrgent            bool      `json:"is_urgent"`
}

// Compute derives the billing status. Pure: inputs are not mutated and the
// clock is injected through Input.AsOf. Cycle arithmetic runs at day
// granularity; time-of-day on payments is kept only for picking the latest
// payment.
func Compute(in Input) Status {
	rules := in.Rules
	if rules.CycleDays <= 0 {
		rules.CycleDays = DefaultRules().CycleDays
	}
	if rules.UrgentWindowDays <= 0 {
		rules.UrgentWindowDays = DefaultRules().UrgentWindowDays
	}

	start := DateOnly(in.StartDate)
	asOf := DateOnly(in.AsOf)

	currentMonth := monthsElapsed(start, asOf) + 1
	if currentMonth < 1 {
		currentMonth = 1
	}

	var (
		paymentsCount int
		totalPaid     int64
		latest        *PaymentEvent
	)
	for i := range in.Payments {
		p := in.Payments[i]
		if p.Amount <= 0 {
			continue
		}
		paymentsCount++
		totalPaid += p.Amount
		if latest == nil || p.PaidAt.After(latest.PaidAt) {
			latest = &in.Payments[i]
		}
	}

	anchor := start
	if latest != nil {
		anchor = DateOnly(latest.PaidAt)
	}
	dueDate := anchor.AddDate(0, 0, rules.CycleDays)

	daysUntilDue := int(dueDate.Sub(asOf).Hours() / 24)

	monthsOwed := currentMonth - paymentsCount
	if monthsOwed < 0 {
		monthsOwed = 0
	}

	// Overdue only once AsOf is strictly past the due date; the due day
	// itself is still current.
	overdue := asOf.After(dueDate)

	if in.PaidInFull {
		monthsOwed = 0
		overdue = false
	}

	urgent := !in.PaidInFull && !overdue &&
		daysUntilDue >= 0 && daysUntilDue <= rules.UrgentWindowDays

	return Status{
		CurrentProgramMonth: currentMonth,
		PaymentsCount:       paymentsCount,
		MonthsOwed:          monthsOwed,
		TotalPaid:           totalPaid,
		DueDate:             dueDate,
		DaysUntilDue:        daysUntilDue,
		IsOverdue:           overdue,
		IsUrgent:            urgent,
	}
}

// NextDueDate is the due date that recording a payment on paidAt produces.
// The record-payment write persists this onto the student row as a cache;
// reads always recompute via Compute.
func NextDueDate(paidAt time.Time, rules Rules) time.Time {
	days := rules.CycleDays
	if days <= 0 {
		days = DefaultRules().CycleDays
	}
	return DateOnly(paidAt).AddDate(0, 0, days)
}

// DateOnly strips time-of-day, normalizing to midnight UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthsElapsed counts whole calendar months between two dates: the counter
// increments once the day-of-month of asOf reaches the day-of-month of start.
func monthsElapsed(start, asOf time.Time) int {
	if asOf.Before(start) {
		return 0
	}
	months := (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
	if asOf.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
