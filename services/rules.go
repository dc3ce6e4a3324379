package services

import (
	"time"
	_ "time/tzdata"

	"fupa/constants"
)

// Schedule holds the working-day thresholds, as offsets from local midnight.
type Schedule struct {
	ClockInDeadline time.Duration
	ClockOutStart   time.Duration
	OffDays         []time.Weekday
}

// DefaultSchedule is 08:00 clock-in deadline, 16:00 clock-out, Sunday off.
var DefaultSchedule = Schedule{
	ClockInDeadline: 8 * time.Hour,
	ClockOutStart:   16 * time.Hour,
	OffDays:         []time.Weekday{time.Sunday},
}

// Evaluation is the outcome of the status rule.
type Evaluation struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Rules classifies submissions. It is the only place date keys are derived,
// always in Location, so one physical day maps to one key on every device.
type Rules struct {
	Location *time.Location
	Schedule Schedule
}

func NewRules(loc *time.Location, schedule Schedule) Rules {
	if loc == nil {
		loc = time.UTC
	}
	return Rules{Location: loc, Schedule: schedule}
}

// DateKey returns t's calendar day (YYYY-MM-DD) in the fixed zone.
func (r Rules) DateKey(t time.Time) string {
	return t.In(r.location()).Format(constants.DateLayout)
}

// Evaluate classifies a submission of kind at t. Thresholds belong to the
// later side: a clock-in exactly at the deadline is late, a clock-out exactly
// at the start of clock-out time is on time.
func (r Rules) Evaluate(t time.Time, kind string) Evaluation {
	local := t.In(r.location())

	if kind != constants.KindIn && kind != constants.KindOut {
		return Evaluation{Status: constants.StatusInvalid, Reason: "unknown attendance kind"}
	}

	if r.isOffDay(local.Weekday()) {
		return Evaluation{Status: constants.StatusOffDay, Reason: local.Weekday().String() + " is not a working day"}
	}

	sinceMidnight := sinceMidnight(local)

	if kind == constants.KindIn {
		if sinceMidnight < r.Schedule.ClockInDeadline {
			return Evaluation{Status: constants.StatusOnTime, Reason: "clocked in before " + clock(r.Schedule.ClockInDeadline)}
		}
		return Evaluation{Status: constants.StatusLate, Reason: "clocked in at or after " + clock(r.Schedule.ClockInDeadline)}
	}

	if sinceMidnight < r.Schedule.ClockOutStart {
		return Evaluation{Status: constants.StatusEarly, Reason: "clocked out before " + clock(r.Schedule.ClockOutStart)}
	}
	return Evaluation{Status: constants.StatusOnTime, Reason: "clocked out at or after " + clock(r.Schedule.ClockOutStart)}
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r Rules) isOffDay(d time.Weekday) bool {
	for _, off := range r.Schedule.OffDays {
		if off == d {
			return true
		}
	}
	return false
}

// sinceMidnight is measured on the wall clock, so DST days do not shift thresholds.
func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func clock(d time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(constants.TimeLayout)
}
