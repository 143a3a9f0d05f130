// Package appearance decides between the dark and light desktop modes from
// the day's sunrise and sunset and applies the result to the host.
package appearance

import (
	"fmt"
	"math"
	"time"

	"github.com/mimimiku778/auto-darkmode/internal/solar"
)

// Mode is a desktop appearance mode.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// LocalTime is a clock time at minute granularity. Sub-minute precision is
// discarded intentionally: appearance switching operates on minutes.
type LocalTime struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since local midnight.
func (lt LocalTime) Minutes() int {
	return lt.Hour*60 + lt.Minute
}

func (lt LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", lt.Hour, lt.Minute)
}

// LocalTimeOf converts a UTC time-of-day value to local clock time using the
// given UTC offset in hours.
func LocalTimeOf(utcHours, utcOffsetHours float64) LocalTime {
	local := math.Mod(utcHours+utcOffsetHours, 24)
	if local < 0 {
		local += 24
	}
	h := int(local)
	m := int((local - float64(h)) * 60)
	return LocalTime{Hour: h, Minute: m}
}

// Decision is the outcome of a daylight evaluation. When Indeterminate is
// set no mode was chosen and the caller must not apply a change; Reason then
// names the polar condition. Otherwise Mode holds the target mode and the
// local times describe the evaluated day.
type Decision struct {
	Mode          Mode
	Indeterminate bool
	Reason        string

	Sunrise LocalTime
	Sunset  LocalTime
	Now     LocalTime
}

// Decide determines the target appearance mode. It is pure: "now" is reduced
// to its UTC time-of-day and the host's UTC offset is an explicit parameter,
// so no global timezone state is consulted.
//
// Daytime holds iff sunriseMinutes <= nowMinutes <= sunsetMinutes, inclusive
// on both ends; the target mode is dark iff not daytime. The formula assumes
// sunrise precedes sunset within the local day, which the approximation
// guarantees for every non-polar latitude and date.
func Decide(sunrise, sunset solar.Event, now time.Time, utcOffsetHours float64) Decision {
	if sunrise.Polar() || sunset.Polar() {
		reason := sunrise.Kind
		if !sunrise.Polar() {
			reason = sunset.Kind
		}
		return Decision{Indeterminate: true, Reason: reason.String()}
	}

	d := Decision{
		Sunrise: LocalTimeOf(sunrise.Hours, utcOffsetHours),
		Sunset:  LocalTimeOf(sunset.Hours, utcOffsetHours),
		Now:     LocalTimeOf(utcHoursOf(now), utcOffsetHours),
	}

	daytime := d.Sunrise.Minutes() <= d.Now.Minutes() && d.Now.Minutes() <= d.Sunset.Minutes()
	if daytime {
		d.Mode = ModeLight
		d.Reason = "daytime"
	} else {
		d.Mode = ModeDark
		d.Reason = "nighttime"
	}
	return d
}

// utcHoursOf reduces an instant to its UTC time-of-day in hours.
func utcHoursOf(t time.Time) float64 {
	u := t.UTC()
	return float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600
}
