package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSumsAllSources(t *testing.T) {
	in := Input{
		ConsultingPayments:    []int64{30000},
		AnnualMemberPayments:  []int64{34800},
		CommunityMonthlyCount: 10,
		CommunityUnitPrice:    5900,
		AgencyRevenue:         100000,
		GumroadRevenue:        0,
		Goal:                  500000,
	}

	out := Compute("2024-05", in)

	assert.Equal(t, int64(30000), out.ConsultingRevenue)
	assert.Equal(t, int64(34800+59000), out.CommunityRevenue)
	assert.Equal(t, int64(100000), out.AgencyRevenue)
	assert.Equal(t, int64(0), out.ProductRevenue)
	assert.Equal(t, int64(223800), out.Total)
	assert.InDelta(t, 44.76, out.ProgressPercent, 0.001)
}

func TestComputeIgnoresNonPositiveAmounts(t *testing.T) {
	out := Compute("2024-05", Input{
		ConsultingPayments:   []int64{10000, -5000, 0},
		AnnualMemberPayments: []int64{-100},
		Goal:                 100000,
	})

	assert.Equal(t, int64(10000), out.ConsultingRevenue)
	assert.Equal(t, int64(0), out.CommunityRevenue)
	assert.Equal(t, int64(10000), out.Total)
}

func TestComputeGoalFallback(t *testing.T) {
	out := Compute("2024-05", Input{ConsultingPayments: []int64{100}, Goal: 0})

	assert.Equal(t, int64(0), out.Goal)
	assert.Equal(t, float64(100), out.ProgressPercent, "any revenue against no goal caps at 100")

	out = Compute("2024-05", Input{Goal: -50})
	assert.Equal(t, float64(0), out.ProgressPercent)
}

func TestComputeProgressCappedAtHundred(t *testing.T) {
	out := Compute("2024-05", Input{ConsultingPayments: []int64{200000}, Goal: 100000})
	assert.Equal(t, float64(100), out.ProgressPercent)
}

func TestComputeIsDeterministic(t *testing.T) {
	in := Input{
		ConsultingPayments:    []int64{100, 200, 300},
		AnnualMemberPayments:  []int64{400},
		CommunityMonthlyCount: 2,
		CommunityUnitPrice:    5900,
		AgencyRevenue:         50,
		GumroadRevenue:        25,
		Goal:                  100000,
	}

	assert.Equal(t, Compute("2024-05", in), Compute("2024-05", in))
}

func TestComputeTotalIsSumOfParts(t *testing.T) {
	out := Compute("2024-06", Input{
		ConsultingPayments:    []int64{111, 222},
		AnnualMemberPayments:  []int64{333},
		CommunityMonthlyCount: 1,
		CommunityUnitPrice:    5900,
		AgencyRevenue:         444,
		GumroadRevenue:        555,
		Goal:                  1,
	})

	assert.Equal(t, out.ConsultingRevenue+out.CommunityRevenue+out.AgencyRevenue+out.ProductRevenue, out.Total)
}

func TestValidMonthKey(t *testing.T) {
	assert.True(t, ValidMonthKey("2024-01"))
	assert.True(t, ValidMonthKey("2024-12"))
	assert.False(t, ValidMonthKey("2024-13"))
	assert.False(t, ValidMonthKey("2024-00"))
	assert.False(t, ValidMonthKey("2024-1"))
	assert.False(t, ValidMonthKey("24-01"))
	assert.False(t, ValidMonthKey("2024-01-01"))
	assert.False(t, ValidMonthKey(""))
}

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds("2024-02")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, err = MonthBounds("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
}
