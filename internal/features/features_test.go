package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stormrisk/internal/types"
)

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

// series returns observations for June 1..n with simple linear values so
// expectations stay readable.
func series(n int) types.HistoricalSeries {
	out := make(types.HistoricalSeries, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, types.DailyObservation{
			Date:        day(i),
			Temperature: 20 + float64(i),
			TempMax:     25 + float64(i),
			TempMin:     15 + float64(i),
			Precip:      float64(i),
			WindSpeed:   5,
			Humidity:    60,
			Pressure:    101,
			CloudAmount: 40,
		})
	}
	return out
}

func TestTemporal(t *testing.T) {
	// 2026-06-13 is a Saturday.
	v := Temporal(day(13))

	assert.Equal(t, 164.0, v["day_of_year"])
	assert.Equal(t, 6.0, v["month"])
	assert.Equal(t, 5.0, v["day_of_week"])
	assert.Equal(t, 1.0, v["is_weekend"])
	assert.Equal(t, 2026.0, v["year"])
	assert.Equal(t, 3.0, v["season"])

	assert.InDelta(t, math.Sin(2*math.Pi*164/365.25), v["day_of_year_sin"], 1e-12)
	assert.InDelta(t, math.Cos(2*math.Pi*6/12), v["month_cos"], 1e-12)
}

func TestTemporal_SeasonBuckets(t *testing.T) {
	tests := []struct {
		month  time.Month
		season float64
	}{
		{time.December, 1},
		{time.January, 1},
		{time.March, 2},
		{time.June, 3},
		{time.September, 4},
		{time.November, 4},
	}
	for _, tt := range tests {
		v := Temporal(time.Date(2026, tt.month, 10, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.season, v["season"], "month %s", tt.month)
	}
}

func TestTemporal_WeekdayIsMondayIndexed(t *testing.T) {
	// 2026-06-15 is a Monday.
	v := Temporal(day(15))
	assert.Equal(t, 0.0, v["day_of_week"])
	assert.Equal(t, 0.0, v["is_weekend"])

	// Sunday maps to 6 and counts as weekend.
	v = Temporal(day(14))
	assert.Equal(t, 6.0, v["day_of_week"])
	assert.Equal(t, 1.0, v["is_weekend"])
}

func TestLag(t *testing.T) {
	b := NewBuilder([]int{1, 7, 30}, nil)
	v := b.Lag(series(20), day(20))

	assert.Equal(t, 20.0+19, v["T2M_lag_1"])
	assert.Equal(t, 20.0+13, v["T2M_lag_7"])
	assert.Equal(t, 13.0, v["PRECTOTCORR_lag_7"])

	// The 30-day lag predates the series and defaults to zero.
	assert.Equal(t, 0.0, v["T2M_lag_30"])
}

func TestRolling_WindowIsHalfOpen(t *testing.T) {
	b := NewBuilder(nil, []int{3})
	v := b.Rolling(series(20), day(20))

	// Window covers days 17, 18, 19 and never the target day itself.
	assert.InDelta(t, 38.0, v["T2M_rolling_mean_3"], 1e-12)
	assert.Equal(t, 39.0, v["T2M_rolling_max_3"])
	assert.Equal(t, 37.0, v["T2M_rolling_min_3"])
	assert.InDelta(t, 1.0, v["T2M_rolling_std_3"], 1e-12)
}

func TestRolling_SingleObservationStdIsZero(t *testing.T) {
	b := NewBuilder(nil, []int{3})

	// Only day 1 exists before a day-2 target.
	v := b.Rolling(series(1), day(2))

	assert.Equal(t, 0.0, v["T2M_rolling_std_3"])
	assert.Equal(t, 21.0, v["T2M_rolling_mean_3"])
}

func TestRolling_EmptyWindowIsAllZero(t *testing.T) {
	b := NewBuilder(nil, []int{7})
	v := b.Rolling(series(5), day(30))

	assert.Equal(t, 0.0, v["T2M_rolling_mean_7"])
	assert.Equal(t, 0.0, v["T2M_rolling_std_7"])
	assert.Equal(t, 0.0, v["T2M_rolling_max_7"])
	assert.Equal(t, 0.0, v["T2M_rolling_min_7"])
}

func TestTrend(t *testing.T) {
	v := Trend(series(20), day(20))

	assert.InDelta(t, 1.0, v["T2M_change_1d"], 1e-12)
	assert.InDelta(t, 1.0/39.0, v["T2M_pct_change_1d"], 1e-12)
	assert.InDelta(t, 7.0, v["T2M_change_7d"], 1e-12)
}

func TestTrend_ZeroGuardOnPercentChange(t *testing.T) {
	s := types.HistoricalSeries{
		{Date: day(1), Precip: 0},
		{Date: day(2), Precip: 4},
	}
	v := Trend(s, day(2))

	assert.Equal(t, 4.0, v["PRECTOTCORR_change_1d"])
	assert.Equal(t, 0.0, v["PRECTOTCORR_pct_change_1d"])
}

func TestTrend_MissingTargetRowEmitsNothing(t *testing.T) {
	v := Trend(series(5), day(10))
	assert.Empty(t, v)
}

func TestInteraction(t *testing.T) {
	s := types.HistoricalSeries{{
		Date:        day(3),
		Temperature: 30,
		TempMax:     36,
		TempMin:     24,
		Precip:      2,
		WindSpeed:   8,
		Humidity:    70,
	}}
	v := Interaction(s, day(3))

	assert.Equal(t, 2100.0, v["temp_humidity_interaction"])
	assert.Equal(t, 16.0, v["wind_precip_interaction"])
	assert.Equal(t, 12.0, v["temp_range"])
	assert.InDelta(t, HeatIndex(30, 70), v["heat_index"], 1e-12)
}

func TestHeatIndex(t *testing.T) {
	// T=30, RH=70: 30 + 0.5*(30 + 61 + (30-68)*1.2 + 70*0.094)
	assert.InDelta(t, 55.99, HeatIndex(30, 70), 1e-9)
}

func TestBuild_MergesAllGroups(t *testing.T) {
	b := NewBuilder([]int{1}, []int{3})
	v := b.Build(series(20), day(20))

	assert.Equal(t, 40.0, v["T2M"])
	assert.Contains(t, v, "day_of_year_sin")
	assert.Contains(t, v, "T2M_lag_1")
	assert.Contains(t, v, "RH2M_rolling_std_3")
	assert.Contains(t, v, "CLOUD_AMT_change_7d")
	assert.Contains(t, v, "heat_index")
}
