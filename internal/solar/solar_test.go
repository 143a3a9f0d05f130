package solar

import (
	"testing"
	"time"

	"github.com/sixdouglas/suncalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 1, Date{2024, time.January, 1}.DayOfYear())
	assert.Equal(t, 173, Date{2024, time.June, 21}.DayOfYear())
	// Leap year
	assert.Equal(t, 366, Date{2024, time.December, 31}.DayOfYear())
	assert.Equal(t, 365, Date{2023, time.December, 31}.DayOfYear())
}

func TestComputeSolarEvents_MidLatitudes(t *testing.T) {
	// Well inside the polar circles both events occur every day of the year
	// and land in [0, 24). The sweep stays at |lat| <= 60 because with the
	// 90.833 degree zenith the midnight-sun branch already triggers slightly
	// below 66.5 degrees at the solstices.
	dates := []Date{
		{2024, time.March, 20},
		{2024, time.June, 21},
		{2024, time.September, 22},
		{2024, time.December, 21},
	}

	for lat := -60.0; lat <= 60.0; lat += 15.0 {
		for _, date := range dates {
			sunrise, sunset := ComputeSolarEvents(lat, 0, date)

			require.Equal(t, Rise, sunrise.Kind, "lat=%v date=%v", lat, date)
			require.Equal(t, Set, sunset.Kind, "lat=%v date=%v", lat, date)
			assert.GreaterOrEqual(t, sunrise.Hours, 0.0)
			assert.Less(t, sunrise.Hours, 24.0)
			assert.GreaterOrEqual(t, sunset.Hours, 0.0)
			assert.Less(t, sunset.Hours, 24.0)
			assert.NotEqual(t, sunrise.Hours, sunset.Hours)
		}
	}
}

func TestComputeSolarEvents_EquatorDayLength(t *testing.T) {
	// At the equator the day is close to 12 hours year round (slightly more
	// because of the refraction-adjusted zenith).
	dates := []Date{
		{2024, time.January, 15},
		{2024, time.April, 10},
		{2024, time.June, 21},
		{2024, time.October, 5},
		{2024, time.December, 21},
	}

	for _, date := range dates {
		sunrise, sunset := ComputeSolarEvents(0, 0, date)
		require.False(t, sunrise.Polar())
		require.False(t, sunset.Polar())

		span := sunset.Hours - sunrise.Hours
		if span < 0 {
			span += 24
		}
		assert.InDelta(t, 12.0, span, 0.2, "date=%v", date)
	}
}

func TestComputeSolarEvents_PolarConditions(t *testing.T) {
	// Midnight sun at high northern latitude in midsummer.
	_, sunset := ComputeSolarEvents(70, 0, Date{2024, time.June, 21})
	assert.Equal(t, NeverSets, sunset.Kind)

	// Polar night in midwinter.
	sunrise, _ := ComputeSolarEvents(70, 0, Date{2024, time.December, 21})
	assert.Equal(t, NeverRises, sunrise.Kind)

	// Southern hemisphere mirrors the seasons.
	_, sunsetS := ComputeSolarEvents(-70, 0, Date{2024, time.December, 21})
	assert.Equal(t, NeverSets, sunsetS.Kind)
	sunriseS, _ := ComputeSolarEvents(-70, 0, Date{2024, time.June, 21})
	assert.Equal(t, NeverRises, sunriseS.Kind)
}

func TestComputeSolarEvents_TokyoSolstice(t *testing.T) {
	// Reference-algorithm values for (35.0, 139.0) on the 2024 northern
	// summer solstice: sunrise 19.5064 UTC (04:30 JST), sunset 10.0205 UTC
	// (19:01 JST). Two minutes of tolerance.
	sunrise, sunset := ComputeSolarEvents(35.0, 139.0, Date{2024, time.June, 21})

	require.Equal(t, Rise, sunrise.Kind)
	require.Equal(t, Set, sunset.Kind)
	assert.InDelta(t, 19.506, sunrise.Hours, 2.0/60)
	assert.InDelta(t, 10.020, sunset.Hours, 2.0/60)
}

func TestComputeSolarEvents_Deterministic(t *testing.T) {
	date := Date{2024, time.June, 21}
	r1, s1 := ComputeSolarEvents(60.1695, 24.9354, date)
	r2, s2 := ComputeSolarEvents(60.1695, 24.9354, date)

	// Bit-identical, not merely close.
	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)
}

func TestComputeSolarEvents_AgreesWithSuncalc(t *testing.T) {
	// Cross-check against an independent implementation. suncalc uses a
	// different approximation, so agreement is only expected to within a
	// few minutes.
	cases := []struct {
		lat, lon float64
		date     Date
	}{
		{60.1695, 24.9354, Date{2024, time.June, 21}},  // Helsinki
		{35.0, 139.0, Date{2024, time.June, 21}},       // Tokyo-like
		{-33.87, 151.21, Date{2024, time.December, 1}}, // Sydney
		{51.51, -0.13, Date{2024, time.March, 20}},     // London
	}

	for _, tc := range cases {
		sunrise, sunset := ComputeSolarEvents(tc.lat, tc.lon, tc.date)
		require.False(t, sunrise.Polar())
		require.False(t, sunset.Polar())

		noon := time.Date(tc.date.Year, tc.date.Month, tc.date.Day, 12, 0, 0, 0, time.UTC)
		times := suncalc.GetTimes(noon, tc.lat, tc.lon)

		wantRise := utcHoursOfDay(times[suncalc.Sunrise].Value)
		wantSet := utcHoursOfDay(times[suncalc.Sunset].Value)

		assert.InDelta(t, wantRise, sunrise.Hours, 0.25, "sunrise lat=%v lon=%v", tc.lat, tc.lon)
		assert.InDelta(t, wantSet, sunset.Hours, 0.25, "sunset lat=%v lon=%v", tc.lat, tc.lon)
	}
}

func utcHoursOfDay(t time.Time) float64 {
	u := t.UTC()
	return float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600
}
