package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mentorbase/mentor-scheduler/internal/models"
)

// ===============================
// Eligibility windows
// ===============================
//
// Pure functions of "now". Callers must sample the clock fresh on every
// check; nothing here caches across ticks.

const (
	// Mentees may join shortly before the start and linger after the end.
	MenteeJoinEarly = 15 * time.Minute
	MenteeJoinLate  = 30 * time.Minute // after scheduled end

	// Mentors must be present from the start, so their window is stricter.
	MentorJoinEarly = 5 * time.Minute
	MentorJoinLate  = 30 * time.Minute // after scheduled start

	// NoShowGrace: once a confirmed session's mentee join window has fully
	// elapsed with no attendance signal, the sweep marks it a mentee
	// no-show. Mentor absence is only ever asserted by the attendance
	// signal, since an expired window alone cannot tell who was missing.
	NoShowGrace = 30 * time.Minute // after scheduled end
)

// CanJoin reports whether the given party may join the call right now.
func CanJoin(s *models.Session, party Party, now time.Time) bool {
	if Status(s.Status) != StatusConfirmed {
		return false
	}

	var open, close time.Time
	switch party {
	case PartyMentor:
		open = s.ScheduledAt.Add(-MentorJoinEarly)
		close = s.ScheduledAt.Add(MentorJoinLate)
	case PartyMentee:
		open = s.ScheduledAt.Add(-MenteeJoinEarly)
		close = s.ScheduledEndAt.Add(MenteeJoinLate)
	default:
		return false
	}

	return !now.Before(open) && !now.After(close)
}

// CanCancel reports whether the session may still be cancelled.
// Cancellation is always allowed pre-start; only the refund differs.
func CanCancel(s *models.Session, now time.Time) bool {
	st := Status(s.Status)
	if st != StatusPendingConfirmation && st != StatusConfirmed {
		return false
	}
	return now.Before(s.ScheduledAt)
}

// ===============================
// Refund tiers
// ===============================

type RefundTier string

const (
	TierFull      RefundTier = "full"
	TierPartial50 RefundTier = "partial_50"
	TierNone      RefundTier = "none"
)

func (t RefundTier) Fraction() decimal.Decimal {
	switch t {
	case TierFull:
		return decimal.NewFromInt(1)
	case TierPartial50:
		return decimal.New(5, -1)
	default:
		return decimal.Zero
	}
}

// CancellationRefundTier applies to mentee-initiated cancellations only.
// Mentor cancellations and no-shows have fixed outcomes and never consult
// this tiering.
func CancellationRefundTier(scheduledAt, now time.Time) RefundTier {
	until := scheduledAt.Sub(now)
	switch {
	case until > 24*time.Hour:
		return TierFull
	case until > 2*time.Hour:
		return TierPartial50
	default:
		return TierNone
	}
}

// RefundTierFor is the session-level view of the tiering.
func RefundTierFor(s *models.Session, now time.Time) RefundTier {
	return CancellationRefundTier(s.ScheduledAt, now)
}

// ===============================
// Countdown urgency
// ===============================

type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyNeutral Urgency = "neutral"
)

// CountdownUrgency is display priority only; no transition consults it.
func CountdownUrgency(scheduledAt, now time.Time) Urgency {
	until := scheduledAt.Sub(now)
	switch {
	case until < time.Hour:
		return UrgencyUrgent
	case until < 24*time.Hour:
		return UrgencyWarning
	default:
		return UrgencyNeutral
	}
}
