package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mentorbase/mentor-scheduler/internal/models"
)

func confirmedSession(start time.Time, durationMin int) *models.Session {
	s := New(1, 2, start, durationMin, PriceBreakdown{}, "EUR")
	s.Status = string(StatusConfirmed)
	return s
}

func TestCanJoinMenteeWindow(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	s := confirmedSession(start, 60) // ends 11:00

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"too early", start.Add(-16 * time.Minute), false},
		{"window opens", start.Add(-15 * time.Minute), true},
		{"at start", start, true},
		{"during", start.Add(30 * time.Minute), true},
		{"after end within grace", start.Add(80 * time.Minute), true},
		{"window closes", start.Add(90 * time.Minute), true},
		{"too late", start.Add(91 * time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanJoin(s, PartyMentee, tc.now))
		})
	}
}

func TestCanJoinMentorWindowIsStricter(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	s := confirmedSession(start, 60)

	assert.False(t, CanJoin(s, PartyMentor, start.Add(-6*time.Minute)))
	assert.True(t, CanJoin(s, PartyMentor, start.Add(-5*time.Minute)))
	assert.True(t, CanJoin(s, PartyMentor, start.Add(30*time.Minute)))
	assert.False(t, CanJoin(s, PartyMentor, start.Add(31*time.Minute)))
}

func TestCanJoinRequiresConfirmed(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	s := New(1, 2, start, 60, PriceBreakdown{}, "EUR") // pending

	assert.False(t, CanJoin(s, PartyMentee, start))
	assert.False(t, CanJoin(s, PartyMentor, start))
}

func TestCanCancel(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	pending := New(1, 2, start, 60, PriceBreakdown{}, "EUR")
	assert.True(t, CanCancel(pending, start.Add(-time.Minute)))
	assert.False(t, CanCancel(pending, start))

	confirmed := confirmedSession(start, 60)
	assert.True(t, CanCancel(confirmed, start.Add(-10*time.Minute)))

	confirmed.Status = string(StatusCompleted)
	assert.False(t, CanCancel(confirmed, start.Add(-10*time.Minute)))
}

func TestCancellationRefundTierBoundaries(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want RefundTier
	}{
		{"30 hours out", start.Add(-30 * time.Hour), TierFull},
		{"just above 24h", start.Add(-24*time.Hour - time.Second), TierFull},
		{"exactly 24h", start.Add(-24 * time.Hour), TierPartial50},
		{"10 hours out", start.Add(-10 * time.Hour), TierPartial50},
		{"just above 2h", start.Add(-2*time.Hour - time.Second), TierPartial50},
		{"exactly 2h", start.Add(-2 * time.Hour), TierNone},
		{"1 hour out", start.Add(-1 * time.Hour), TierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CancellationRefundTier(start, tc.now))
		})
	}
}

func TestRefundTierMonotonicity(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	rank := map[RefundTier]int{TierFull: 2, TierPartial50: 1, TierNone: 0}

	prev := TierFull
	for now := start.Add(-72 * time.Hour); now.Before(start); now = now.Add(13 * time.Minute) {
		tier := CancellationRefundTier(start, now)
		assert.LessOrEqual(t, rank[tier], rank[prev],
			"tier went back up at %s", now)
		prev = tier
	}
}

func TestCountdownUrgency(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, UrgencyNeutral, CountdownUrgency(start, start.Add(-48*time.Hour)))
	assert.Equal(t, UrgencyWarning, CountdownUrgency(start, start.Add(-23*time.Hour)))
	assert.Equal(t, UrgencyUrgent, CountdownUrgency(start, start.Add(-59*time.Minute)))
}
