package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The advisory view and the booking commit must agree: a slot inside
// the minimum advance window is unbookable, so it is never offered.
func TestAvailabilityHidesMinimumAdvanceWindow(t *testing.T) {
	repo := newFakeRepo(testProfile("60", false), allWeekRules())
	uc := NewGetAvailability(repo, 30)

	now := time.Now().UTC()
	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		MentorID:    mentorID,
		From:        now,
		To:          now.AddDate(0, 0, 3),
		DurationMin: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	earliest := now.Add(120 * time.Minute)
	for _, s := range slots {
		assert.False(t, s.Start.Before(earliest),
			"slot at %s is inside the advance window", s.Start)
	}
}

func TestAvailabilityRespectsMentorAdvanceSetting(t *testing.T) {
	profile := testProfile("60", false)
	profile.MinAdvanceMinutes = 24 * 60
	repo := newFakeRepo(profile, allWeekRules())
	uc := NewGetAvailability(repo, 30)

	now := time.Now().UTC()
	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		MentorID:    mentorID,
		From:        now,
		To:          now.AddDate(0, 0, 3),
		DurationMin: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	earliest := now.Add(24 * time.Hour)
	for _, s := range slots {
		assert.False(t, s.Start.Before(earliest),
			"slot at %s is inside the advance window", s.Start)
	}
}
