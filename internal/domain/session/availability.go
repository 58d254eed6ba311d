package session

import (
	"sort"
	"time"

	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/models"
)

// ===============================
// Availability resolution
// ===============================

// Interval is one recurring weekly window, minute-granular "15:04"
// strings in the mentor's timezone.
type Interval struct {
	Weekday int
	Start   string
	End     string
}

type WeeklyPattern []Interval

// BookingSlot is a candidate appointment. Ephemeral, computed on demand,
// never persisted. Available is false when the slot collides with an
// existing blocking session.
type BookingSlot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
	Available   bool      `json:"available"`
}

// Validate enforces the pattern invariants: every interval has
// start < end, and no two intervals on the same day overlap.
func (p WeeklyPattern) Validate() error {
	byDay := make(map[int][]Interval, 7)
	for _, iv := range p {
		if iv.Weekday < 0 || iv.Weekday > 6 {
			return httperr.ErrBusiness("invalid_weekday")
		}
		start, err := time.Parse("15:04", iv.Start)
		if err != nil {
			return httperr.ErrBusiness("invalid_availability_interval")
		}
		end, err := time.Parse("15:04", iv.End)
		if err != nil {
			return httperr.ErrBusiness("invalid_availability_interval")
		}
		if !start.Before(end) {
			return httperr.ErrBusiness("invalid_availability_interval")
		}
		byDay[iv.Weekday] = append(byDay[iv.Weekday], iv)
	}

	for _, ivs := range byDay {
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
		for i := 1; i < len(ivs); i++ {
			if ivs[i].Start < ivs[i-1].End {
				return httperr.ErrBusiness("overlapping_availability_intervals")
			}
		}
	}

	return nil
}

// PatternFromRules converts stored availability rows into the resolver's
// immutable pattern snapshot. Inactive rows are dropped.
func PatternFromRules(rules []models.AvailabilityRule) WeeklyPattern {
	pattern := make(WeeklyPattern, 0, len(rules))
	for _, r := range rules {
		if !r.Active || r.StartTime == "" || r.EndTime == "" {
			continue
		}
		pattern = append(pattern, Interval{
			Weekday: r.Weekday,
			Start:   r.StartTime,
			End:     r.EndTime,
		})
	}
	return pattern
}

// ResolveSlots expands a mentor's weekly pattern over [rangeStart, rangeEnd]
// into candidate slots of exactly durationMin minutes, stepping by stepMin
// through each interval. Slots colliding with a blocking session are kept
// but flagged unavailable; slots starting before now are dropped entirely.
//
// Deterministic pure function of its inputs; output is ascending by start.
func ResolveSlots(
	pattern WeeklyPattern,
	existing []models.Session,
	rangeStart time.Time,
	rangeEnd time.Time,
	durationMin int,
	stepMin int,
	now time.Time,
) ([]BookingSlot, error) {

	if rangeEnd.Before(rangeStart) {
		return nil, InvalidRangeError{Start: rangeStart, End: rangeEnd}
	}
	if durationMin <= 0 {
		return nil, InvalidDurationError{Minutes: durationMin}
	}
	if stepMin <= 0 {
		stepMin = durationMin
	}

	// Intervals sorted by weekday start keep the output ordered without
	// a final sort pass.
	byDay := make(map[int][]Interval, 7)
	for _, iv := range pattern {
		byDay[iv.Weekday] = append(byDay[iv.Weekday], iv)
	}
	for d := range byDay {
		sort.Slice(byDay[d], func(i, j int) bool {
			return byDay[d][i].Start < byDay[d][j].Start
		})
	}

	blocking := make([]models.Session, 0, len(existing))
	for _, s := range existing {
		if Status(s.Status).Blocking() {
			blocking = append(blocking, s)
		}
	}

	loc := rangeStart.Location()
	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(stepMin) * time.Minute

	var slots []BookingSlot

	dayStart := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, loc)
	for day := dayStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		for _, iv := range byDay[int(day.Weekday())] {

			ivStart, err := atClock(day, iv.Start)
			if err != nil {
				continue
			}
			ivEnd, err := atClock(day, iv.End)
			if err != nil || !ivStart.Before(ivEnd) {
				continue
			}

			for cur := ivStart; !cur.Add(duration).After(ivEnd); cur = cur.Add(step) {
				slotStart := cur
				slotEnd := cur.Add(duration)

				if slotStart.Before(rangeStart) || slotEnd.After(rangeEnd) {
					continue
				}
				if slotStart.Before(now) {
					continue
				}

				available := true
				for _, b := range blocking {
					if slotStart.Before(b.ScheduledEndAt) && slotEnd.After(b.ScheduledAt) {
						available = false
						break
					}
				}

				slots = append(slots, BookingSlot{
					Start:       slotStart,
					End:         slotEnd,
					DurationMin: durationMin,
					Available:   available,
				})
			}
		}
	}

	return slots, nil
}

// SlotIsBookable re-validates one concrete window at commit time. This
// view is only advisory; the store's unique constraint is the final
// arbiter for two racing bookings.
func SlotIsBookable(
	pattern WeeklyPattern,
	existing []models.Session,
	start time.Time,
	durationMin int,
	now time.Time,
) bool {

	if durationMin <= 0 || start.Before(now) {
		return false
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	within := false
	for _, iv := range pattern {
		if iv.Weekday != int(start.Weekday()) {
			continue
		}
		ivStart, err := atClock(start, iv.Start)
		if err != nil {
			continue
		}
		ivEnd, err := atClock(start, iv.End)
		if err != nil {
			continue
		}
		if !start.Before(ivStart) && !end.After(ivEnd) {
			within = true
			break
		}
	}
	if !within {
		return false
	}

	for _, s := range existing {
		if !Status(s.Status).Blocking() {
			continue
		}
		if start.Before(s.ScheduledEndAt) && end.After(s.ScheduledAt) {
			return false
		}
	}

	return true
}

// atClock anchors an "15:04" clock string on the given day, in its location.
func atClock(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}
