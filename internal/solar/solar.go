// Package solar computes sunrise and sunset times using the NOAA
// approximate algorithm (Almanac for Computers, 1990). The algorithm is a
// fixed published formula sequence; results agree with exact ephemerides to
// within a couple of minutes at non-polar latitudes.
package solar

import (
	"fmt"
	"math"
	"time"
)

// Zenith angle for official sunrise/sunset: 90 degrees plus atmospheric
// refraction and the sun's apparent radius.
const zenith = 90.833

// EventKind identifies the variant of an Event.
type EventKind int

const (
	// Rise is a sunrise time in UTC hours.
	Rise EventKind = iota
	// Set is a sunset time in UTC hours.
	Set
	// NeverRises means the sun stays below the horizon all day (polar night).
	NeverRises
	// NeverSets means the sun stays above the horizon all day (midnight sun).
	NeverSets
)

func (k EventKind) String() string {
	switch k {
	case Rise:
		return "rise"
	case Set:
		return "set"
	case NeverRises:
		return "sun_never_rises"
	case NeverSets:
		return "sun_never_sets"
	default:
		return fmt.Sprintf("event_kind_%d", int(k))
	}
}

// Event is the result of a sunrise or sunset computation. Hours is only
// meaningful for the Rise and Set kinds, as UTC time-of-day in [0, 24).
// Polar non-occurrence is an explicit variant so a missing event can never
// be mistaken for hour zero.
type Event struct {
	Kind  EventKind
	Hours float64
}

// Polar reports whether the event did not occur on the queried day.
func (e Event) Polar() bool {
	return e.Kind == NeverRises || e.Kind == NeverSets
}

// Date is a calendar date without a timezone. The calculation treats it as
// the UTC calendar day when deriving day-of-year, matching the reference
// algorithm; near year boundaries far from UTC this can be off by one day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DayOfYear returns the 1-based ordinal day number within the year.
func (d Date) DayOfYear() int {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

// ComputeSolarEvents returns the sunrise and sunset events for the given
// location and date. Latitude must be within [-90, 90] and longitude within
// [-180, 180], both finite; callers validate before invoking. The function
// is pure and deterministic: identical inputs yield bit-identical results.
func ComputeSolarEvents(latitude, longitude float64, date Date) (sunrise, sunset Event) {
	day := date.DayOfYear()
	sunrise = eventTime(latitude, longitude, day, true)
	sunset = eventTime(latitude, longitude, day, false)
	return sunrise, sunset
}

// eventTime runs the NOAA approximation for one horizon crossing. The rise
// and set branches differ only in the assumed local hour seeding the time
// estimate (6:00 vs 18:00) and in which root of the arc-cosine is taken.
func eventTime(latitude, longitude float64, dayOfYear int, rise bool) Event {
	lngHour := longitude / 15

	var t float64
	if rise {
		t = float64(dayOfYear) + (6-lngHour)/24
	} else {
		t = float64(dayOfYear) + (18-lngHour)/24
	}

	// Sun's mean anomaly and true longitude.
	m := 0.9856*t - 3.289
	l := wrap360(m + 1.916*sinDeg(m) + 0.020*sinDeg(2*m) + 282.634)

	// Right ascension, placed into the same quadrant as L. The arc-tangent
	// only covers a 180 degree range, so the raw value can land two
	// quadrants away from the true longitude.
	ra := wrap360(atanDeg(0.91764 * tanDeg(l)))
	lQuadrant := math.Floor(l/90) * 90
	raQuadrant := math.Floor(ra/90) * 90
	ra = (ra + (lQuadrant - raQuadrant)) / 15

	// Declination.
	sinDec := 0.39782 * sinDeg(l)
	cosDec := math.Cos(math.Asin(sinDec))

	// Local hour angle at the horizon crossing.
	cosH := (cosDeg(zenith) - sinDec*sinDeg(latitude)) / (cosDec * cosDeg(latitude))
	if cosH > 1 {
		return Event{Kind: NeverRises}
	}
	if cosH < -1 {
		return Event{Kind: NeverSets}
	}

	var h float64
	if rise {
		h = (360 - acosDeg(cosH)) / 15
	} else {
		h = acosDeg(cosH) / 15
	}

	// Local mean time, then UTC.
	localMean := h + ra - 0.06571*t - 6.622
	ut := wrap24(localMean - lngHour)

	kind := Set
	if rise {
		kind = Rise
	}
	return Event{Kind: kind, Hours: ut}
}

// Trig helpers working in degrees at the boundary. Keeping every
// degree/radian conversion in one place guards against the classic
// reimplementation bug of converting at some call sites and not others.

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }

func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }

func tanDeg(d float64) float64 { return math.Tan(d * math.Pi / 180) }

func atanDeg(x float64) float64 { return math.Atan(x) * 180 / math.Pi }

func acosDeg(x float64) float64 { return math.Acos(x) * 180 / math.Pi }

// wrap360 reduces an angle into [0, 360).
func wrap360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// wrap24 reduces an hour value into [0, 24).
func wrap24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}
