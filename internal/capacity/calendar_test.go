package capacity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
)

func testProfile() *domain.Profile {
	return &domain.Profile{
		DailyHours:      4,
		WorkDaysPerWeek: 5,
		FocusSessionMin: 45,
		Procrastination: domain.ProcrastinationMedium,
	}
}

func TestCompute_InvalidRange(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err := Compute(testProfile(), start, end, config.DefaultPolicy())
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCompute_InvalidProfile(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := map[string]func(p *domain.Profile){
		"zero hours":      func(p *domain.Profile) { p.DailyHours = 0 },
		"too many hours":  func(p *domain.Profile) { p.DailyHours = 17 },
		"zero work days":  func(p *domain.Profile) { p.WorkDaysPerWeek = 0 },
		"eight work days": func(p *domain.Profile) { p.WorkDaysPerWeek = 8 },
		"zero focus":      func(p *domain.Profile) { p.FocusSessionMin = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := testProfile()
			mutate(p)
			_, err := Compute(p, start, end, config.DefaultPolicy())
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestCompute_TwelveWeekWindow(t *testing.T) {
	// 2025-03-03 is a Monday; 84 days cover exactly 12 weeks.
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 83)

	cal, err := Compute(testProfile(), start, end, config.DefaultPolicy())
	require.NoError(t, err)

	assert.Len(t, cal.Days, 84)
	// 60 work days x 4h x 0.85 buffer = 204h.
	assert.InDelta(t, 204.0, cal.TotalHours(), 0.01)

	// Weekends carry zero capacity.
	for _, d := range cal.Days {
		if d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday {
			assert.Zero(t, d.AvailableMin, "weekend day %s should have no capacity", d.Date)
		}
	}
}

func TestCompute_BufferScalesWithProcrastination(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	policy := config.DefaultPolicy()

	expected := map[domain.ProcrastinationLevel]int{
		domain.ProcrastinationLow:    216, // 240 x 0.90
		domain.ProcrastinationMedium: 204, // 240 x 0.85
		domain.ProcrastinationHigh:   180, // 240 x 0.75
	}
	for level, wantMin := range expected {
		p := testProfile()
		p.Procrastination = level
		cal, err := Compute(p, start, start, policy)
		require.NoError(t, err)
		assert.Equal(t, wantMin, cal.Days[0].AvailableMin, "level %s", level)
	}
}

func TestCompute_From(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 13)
	cal, err := Compute(testProfile(), start, end, config.DefaultPolicy())
	require.NoError(t, err)

	sub := cal.From(start.AddDate(0, 0, 7))
	assert.Len(t, sub.Days, 7)
	assert.Equal(t, start.AddDate(0, 0, 7), sub.Days[0].Date)
}

// TestCompute_Monotonicity property-tests that raising dailyHours or
// workDaysPerWeek never reduces total capacity over a fixed range.
func TestCompute_Monotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 59)
	policy := config.DefaultPolicy()

	for trial := 0; trial < 200; trial++ {
		p := testProfile()
		p.DailyHours = float64(rng.Intn(15) + 1)
		p.WorkDaysPerWeek = rng.Intn(7) + 1

		base, err := Compute(p, start, end, policy)
		require.NoError(t, err)

		moreHours := *p
		moreHours.DailyHours++
		calHours, err := Compute(&moreHours, start, end, policy)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, calHours.TotalMinutes(), base.TotalMinutes(),
			"trial %d: extra daily hour must not lose capacity", trial)

		if p.WorkDaysPerWeek < 7 {
			moreDays := *p
			moreDays.WorkDaysPerWeek++
			calDays, err := Compute(&moreDays, start, end, policy)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, calDays.TotalMinutes(), base.TotalMinutes(),
				"trial %d: extra work day must not lose capacity", trial)
		}
	}
}
