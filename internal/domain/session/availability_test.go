package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorbase/mentor-scheduler/internal/models"
)

// Monday 2026-09-14 through the following Sunday.
var weekStart = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func mondayFriday(start, end string) WeeklyPattern {
	var p WeeklyPattern
	for wd := 1; wd <= 5; wd++ {
		p = append(p, Interval{Weekday: wd, Start: start, End: end})
	}
	return p
}

func blockingAt(start time.Time, durationMin int) models.Session {
	return models.Session{
		ID:             uuid.New(),
		ScheduledAt:    start,
		ScheduledEndAt: start.Add(time.Duration(durationMin) * time.Minute),
		Status:         string(StatusConfirmed),
	}
}

func TestResolveSlotsWithinPatternAndExactDuration(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")
	rangeEnd := weekStart.AddDate(0, 0, 7)
	now := weekStart.Add(-time.Hour)

	slots, err := ResolveSlots(pattern, nil, weekStart, rangeEnd, 60, 30, now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.Equal(t, 60, slot.DurationMin)
		assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))

		wd := int(slot.Start.Weekday())
		assert.GreaterOrEqual(t, wd, 1)
		assert.LessOrEqual(t, wd, 5)

		dayNine := time.Date(slot.Start.Year(), slot.Start.Month(), slot.Start.Day(), 9, 0, 0, 0, time.UTC)
		dayNoon := dayNine.Add(3 * time.Hour)
		assert.False(t, slot.Start.Before(dayNine), "slot %s starts before 09:00", slot.Start)
		assert.False(t, slot.End.After(dayNoon), "slot %s ends after 12:00", slot.End)
	}

	// 09:00-12:00 stepping 30min fits 5 one-hour slots per day, 5 days
	assert.Len(t, slots, 25)
}

func TestResolveSlotsOrderedAscending(t *testing.T) {
	pattern := mondayFriday("09:00", "11:00")
	slots, err := ResolveSlots(pattern, nil, weekStart, weekStart.AddDate(0, 0, 7), 30, 30, weekStart)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].Start.After(slots[i-1].Start),
			"slot %d (%s) not after slot %d (%s)", i, slots[i].Start, i-1, slots[i-1].Start)
	}
}

func TestResolveSlotsFlagsCollisions(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")

	// Monday 10:00-11:00 is taken
	booked := blockingAt(weekStart.Add(10*time.Hour), 60)

	slots, err := ResolveSlots(pattern, []models.Session{booked}, weekStart, weekStart.AddDate(0, 0, 1), 60, 30, weekStart)
	require.NoError(t, err)

	for _, slot := range slots {
		overlaps := slot.Start.Before(booked.ScheduledEndAt) && slot.End.After(booked.ScheduledAt)
		assert.Equal(t, !overlaps, slot.Available, "slot %s", slot.Start)
	}
}

func TestResolveSlotsIgnoresNonBlockingSessions(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")

	for _, status := range []Status{
		StatusCancelledByMentee,
		StatusCancelledByMentor,
		StatusRejectedByMentor,
		StatusNoShowMentor,
		StatusNoShowMentee,
		StatusCompleted,
	} {
		cancelled := blockingAt(weekStart.Add(10*time.Hour), 60)
		cancelled.Status = string(status)

		slots, err := ResolveSlots(pattern, []models.Session{cancelled}, weekStart, weekStart.AddDate(0, 0, 1), 60, 30, weekStart)
		require.NoError(t, err)

		for _, slot := range slots {
			assert.True(t, slot.Available, "status %s blocked slot %s", status, slot.Start)
		}
	}
}

func TestResolveSlotsDropsPastSlots(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")
	now := weekStart.Add(10*time.Hour + 15*time.Minute) // Monday 10:15

	slots, err := ResolveSlots(pattern, nil, weekStart, weekStart.AddDate(0, 0, 1), 60, 30, now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.False(t, slot.Start.Before(now), "past slot %s returned", slot.Start)
	}
}

func TestResolveSlotsInvalidInputs(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")

	_, err := ResolveSlots(pattern, nil, weekStart, weekStart.AddDate(0, 0, -1), 60, 30, weekStart)
	assert.ErrorAs(t, err, &InvalidRangeError{})

	_, err = ResolveSlots(pattern, nil, weekStart, weekStart.AddDate(0, 0, 1), 0, 30, weekStart)
	assert.ErrorAs(t, err, &InvalidDurationError{})

	_, err = ResolveSlots(pattern, nil, weekStart, weekStart.AddDate(0, 0, 1), -30, 30, weekStart)
	assert.ErrorAs(t, err, &InvalidDurationError{})
}

func TestResolveSlotsEmptyPattern(t *testing.T) {
	slots, err := ResolveSlots(nil, nil, weekStart, weekStart.AddDate(0, 0, 7), 60, 30, weekStart)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotIsBookable(t *testing.T) {
	pattern := mondayFriday("09:00", "12:00")
	now := weekStart

	monday10 := weekStart.Add(10 * time.Hour)

	assert.True(t, SlotIsBookable(pattern, nil, monday10, 60, now))

	// outside the pattern
	assert.False(t, SlotIsBookable(pattern, nil, weekStart.Add(14*time.Hour), 60, now))

	// runs past the interval end
	assert.False(t, SlotIsBookable(pattern, nil, weekStart.Add(11*time.Hour+30*time.Minute), 60, now))

	// collides with an existing booking
	taken := []models.Session{blockingAt(monday10, 60)}
	assert.False(t, SlotIsBookable(pattern, taken, monday10.Add(30*time.Minute), 60, now))

	// in the past
	assert.False(t, SlotIsBookable(pattern, nil, monday10, 60, monday10.Add(time.Minute)))
}

func TestWeeklyPatternValidate(t *testing.T) {
	ok := WeeklyPattern{
		{Weekday: 1, Start: "09:00", End: "12:00"},
		{Weekday: 1, Start: "13:00", End: "17:00"},
		{Weekday: 3, Start: "09:00", End: "12:00"},
	}
	assert.NoError(t, ok.Validate())

	inverted := WeeklyPattern{{Weekday: 1, Start: "12:00", End: "09:00"}}
	assert.Error(t, inverted.Validate())

	overlapping := WeeklyPattern{
		{Weekday: 1, Start: "09:00", End: "12:00"},
		{Weekday: 1, Start: "11:00", End: "14:00"},
	}
	assert.Error(t, overlapping.Validate())

	badDay := WeeklyPattern{{Weekday: 7, Start: "09:00", End: "12:00"}}
	assert.Error(t, badDay.Validate())
}
