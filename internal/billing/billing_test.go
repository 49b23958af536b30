package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute_NoPayments_DueThirtyDaysAfterStart(t *testing.T) {
	start := date(2024, time.January, 10)

	status := Compute(Input{
		StartDate: start,
		AsOf:      date(2024, time.January, 20),
	})

	assert.Equal(t, date(2024, time.February, 9), status.DueDate)
	assert.Equal(t, 1, status.CurrentProgramMonth)
	assert.Equal(t, 0, status.PaymentsCount)
	assert.False(t, status.IsOverdue)
	assert.Equal(t, 20, status.DaysUntilDue)
}

func TestCompute_DueDayItselfIsNotOverdue(t *testing.T) {
	start := date(2024, time.January, 10)

	onDueDay := Compute(Input{StartDate: start, AsOf: date(2024, time.February, 9)})
	assert.False(t, onDueDay.IsOverdue)
	assert.Equal(t, 0, onDueDay.DaysUntilDue)
	assert.True(t, onDueDay.IsUrgent)

	dayAfter := Compute(Input{StartDate: start, AsOf: date(2024, time.February, 10)})
	assert.True(t, dayAfter.IsOverdue)
	assert.Equal(t, -1, dayAfter.DaysUntilDue)
	assert.False(t, dayAfter.IsUrgent)
}

func TestCompute_PaymentExtendsWindowFromPaymentDate(t *testing.T) {
	start := date(2024, time.January, 10)
	payments := []PaymentEvent{
		{Amount: 50000, PaidAt: date(2024, time.February, 11)},
	}

	status := Compute(Input{
		StartDate: start,
		Payments:  payments,
		AsOf:      date(2024, time.February, 11),
	})

	// 2024-02-11 + 30 days lands on 2024-03-12 (leap year February).
	assert.Equal(t, date(2024, time.March, 12), status.DueDate)
	assert.False(t, status.IsOverdue)
	assert.Equal(t, 1, status.PaymentsCount)
	assert.Equal(t, int64(50000), status.TotalPaid)
}

func TestCompute_OverdueFlipsFalseImmediatelyAfterPayment(t *testing.T) {
	start := date(2024, time.January, 10)
	asOf := date(2024, time.February, 11)

	before := Compute(Input{StartDate: start, AsOf: asOf})
	require.True(t, before.IsOverdue)
	require.Equal(t, 2, before.CurrentProgramMonth)
	require.Equal(t, 2, before.MonthsOwed)

	after := Compute(Input{
		StartDate: start,
		Payments:  []PaymentEvent{{Amount: 50000, PaidAt: asOf}},
		AsOf:      asOf,
	})
	assert.False(t, after.IsOverdue)
	assert.Equal(t, 1, after.MonthsOwed)
}

func TestCompute_PaidInFullNeverOwes(t *testing.T) {
	start := date(2023, time.March, 1)

	// Two years in with zero payments: the override still reports no debt.
	status := Compute(Input{
		StartDate:  start,
		PaidInFull: true,
		AsOf:       date(2025, time.March, 1),
	})

	assert.False(t, status.IsOverdue)
	assert.False(t, status.IsUrgent)
	assert.Equal(t, 0, status.MonthsOwed)

	withHistory := Compute(Input{
		StartDate:  start,
		PaidInFull: true,
		Payments: []PaymentEvent{
			{Amount: 10000, PaidAt: date(2023, time.March, 15)},
		},
		AsOf: date(2025, time.March, 1),
	})
	assert.False(t, withHistory.IsOverdue)
	assert.Equal(t, 0, withHistory.MonthsOwed)
	assert.Equal(t, 1, withHistory.PaymentsCount)
}

func TestCompute_NonPositivePaymentsExcludedFromCounts(t *testing.T) {
	start := date(2024, time.January, 10)
	payments := []PaymentEvent{
		{Amount: 50000, PaidAt: date(2024, time.February, 1)},
		{Amount: 0, PaidAt: date(2024, time.February, 20)},
		{Amount: -500, PaidAt: date(2024, time.March, 1)},
	}

	status := Compute(Input{
		StartDate: start,
		Payments:  payments,
		AsOf:      date(2024, time.March, 2),
	})

	assert.Equal(t, 1, status.PaymentsCount)
	assert.Equal(t, int64(50000), status.TotalPaid)
	// The zero/negative rows do not anchor the window either.
	assert.Equal(t, date(2024, time.March, 2), status.DueDate)
}

func TestCompute_LatestPaymentAnchorsWindow(t *testing.T) {
	start := date(2024, time.January, 1)
	payments := []PaymentEvent{
		{Amount: 30000, PaidAt: date(2024, time.January, 28)},
		{Amount: 30000, PaidAt: date(2024, time.March, 3)},
		{Amount: 30000, PaidAt: date(2024, time.February, 27)},
	}

	status := Compute(Input{
		StartDate: start,
		Payments:  payments,
		AsOf:      date(2024, time.March, 10),
	})

	assert.Equal(t, date(2024, time.April, 2), status.DueDate)
	assert.Equal(t, 3, status.PaymentsCount)
}

func TestCompute_TimeOfDayIgnoredForCycleMath(t *testing.T) {
	start := time.Date(2024, time.January, 10, 17, 45, 2, 0, time.UTC)
	paidAt := time.Date(2024, time.February, 11, 23, 59, 59, 0, time.UTC)

	status := Compute(Input{
		StartDate: start,
		Payments:  []PaymentEvent{{Amount: 1000, PaidAt: paidAt}},
		AsOf:      time.Date(2024, time.March, 12, 0, 0, 1, 0, time.UTC),
	})

	assert.Equal(t, date(2024, time.March, 12), status.DueDate)
	assert.False(t, status.IsOverdue)
}

func TestCompute_ProgramMonthIncrementsOnAnniversaryDay(t *testing.T) {
	start := date(2024, time.January, 10)

	cases := []struct {
		asOf  time.Time
		month int
	}{
		{date(2024, time.January, 10), 1},
		{date(2024, time.February, 9), 1},
		{date(2024, time.February, 10), 2},
		{date(2024, time.July, 9), 6},
		{date(2024, time.July, 10), 7},
		{date(2025, time.January, 10), 13},
	}
	for _, tc := range cases {
		status := Compute(Input{StartDate: start, AsOf: tc.asOf})
		assert.Equal(t, tc.month, status.CurrentProgramMonth, "asOf %s", tc.asOf)
	}
}

func TestCompute_AsOfBeforeStartClampsToFirstMonth(t *testing.T) {
	status := Compute(Input{
		StartDate: date(2024, time.June, 1),
		AsOf:      date(2024, time.May, 1),
	})
	assert.Equal(t, 1, status.CurrentProgramMonth)
	assert.False(t, status.IsOverdue)
}

func TestCompute_CustomRules(t *testing.T) {
	start := date(2024, time.January, 1)

	status := Compute(Input{
		StartDate: start,
		AsOf:      date(2024, time.January, 8),
		Rules:     Rules{CycleDays: 14, UrgentWindowDays: 7},
	})

	assert.Equal(t, date(2024, time.January, 15), status.DueDate)
	assert.Equal(t, 7, status.DaysUntilDue)
	assert.True(t, status.IsUrgent)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	payments := []PaymentEvent{
		{Amount: 100, PaidAt: date(2024, time.February, 1)},
		{Amount: 200, PaidAt: date(2024, time.January, 1)},
	}
	in := Input{
		StartDate: date(2024, time.January, 1),
		Payments:  payments,
		AsOf:      date(2024, time.March, 1),
	}

	first := Compute(in)
	second := Compute(in)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(100), payments[0].Amount)
	assert.Equal(t, int64(200), payments[1].Amount)
}

func TestNextDueDate(t *testing.T) {
	paidAt := time.Date(2024, time.February, 11, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, date(2024, time.March, 12), NextDueDate(paidAt, DefaultRules()))
	assert.Equal(t, date(2024, time.February, 25), NextDueDate(paidAt, Rules{CycleDays: 14}))
}
