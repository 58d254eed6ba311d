package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mentorbase/mentor-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Only these transitions may mutate a session's status and its
// timestamps. Terminal states reject everything.

// MinReasonLen is the policy minimum for rejection reasons and for
// mentee cancellations below the full refund tier.
const MinReasonLen = 10

// RefundOutcome is what a terminal transition owes the mentee. The
// engine only computes amounts; money movement is the caller's.
type RefundOutcome struct {
	Tier         RefundTier
	Refund       decimal.Decimal
	Compensation decimal.Decimal
}

func refundFor(s *models.Session, tier RefundTier) RefundOutcome {
	return RefundOutcome{
		Tier:   tier,
		Refund: s.Price.Mul(tier.Fraction()),
	}
}

// New builds a session in its initial state. ScheduledEndAt is derived
// once here and never edited afterwards; rescheduling creates a new
// session instead.
func New(
	mentorID uint,
	menteeID uint,
	scheduledAt time.Time,
	durationMin int,
	price PriceBreakdown,
	currency string,
) *models.Session {

	return &models.Session{
		ID:             uuid.New(),
		MentorID:       mentorID,
		MenteeID:       menteeID,
		ScheduledAt:    scheduledAt,
		ScheduledEndAt: scheduledAt.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:    durationMin,
		Status:         string(InitialStatus()),
		Price:          price.Total.Round(2),
		Currency:       currency,
		FreeTrial:      price.FreeTrial,
	}
}

// Confirm: mentor accepts a pending booking.
func Confirm(s *models.Session, actorID uint, now time.Time) error {
	if actorID != s.MentorID {
		return UnauthorizedActorError{SessionID: s.ID, ActorID: actorID, Event: EventConfirm}
	}
	if Status(s.Status) != StatusPendingConfirmation {
		return InvalidTransitionError{SessionID: s.ID, Event: EventConfirm, Current: Status(s.Status)}
	}

	s.Status = string(StatusConfirmed)
	s.ConfirmedAt = &now
	return nil
}

// Reject: mentor declines a pending booking. Always a full refund.
func Reject(s *models.Session, actorID uint, reason string, now time.Time) (RefundOutcome, error) {
	if actorID != s.MentorID {
		return RefundOutcome{}, UnauthorizedActorError{SessionID: s.ID, ActorID: actorID, Event: EventReject}
	}
	if Status(s.Status) != StatusPendingConfirmation {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventReject, Current: Status(s.Status)}
	}
	if len(strings.TrimSpace(reason)) < MinReasonLen {
		return RefundOutcome{}, ReasonRequiredError{SessionID: s.ID, MinLength: MinReasonLen}
	}

	s.Status = string(StatusRejectedByMentor)
	s.CancellationReason = strings.TrimSpace(reason)
	s.RefundTier = string(TierFull)
	s.CancelledAt = &now
	return refundFor(s, TierFull), nil
}

// CancelByMentee: allowed any time before the start; the refund tier is
// the only thing timing changes. A reason is required once the refund
// drops below full.
func CancelByMentee(s *models.Session, actorID uint, reason string, now time.Time) (RefundOutcome, error) {
	if actorID != s.MenteeID {
		return RefundOutcome{}, UnauthorizedActorError{SessionID: s.ID, ActorID: actorID, Event: EventCancel}
	}
	st := Status(s.Status)
	if st != StatusPendingConfirmation && st != StatusConfirmed {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventCancel, Current: st}
	}
	if !now.Before(s.ScheduledAt) {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventCancel, Current: st}
	}

	tier := CancellationRefundTier(s.ScheduledAt, now)
	reason = strings.TrimSpace(reason)
	if tier != TierFull && len(reason) < MinReasonLen {
		return RefundOutcome{}, ReasonRequiredError{SessionID: s.ID, MinLength: MinReasonLen}
	}

	s.Status = string(StatusCancelledByMentee)
	s.CancellationReason = reason
	s.RefundTier = string(tier)
	s.CancelledAt = &now
	return refundFor(s, tier), nil
}

// CancelByMentor: only from CONFIRMED (a pending booking is rejected,
// not cancelled). Always fully refunded regardless of timing.
func CancelByMentor(s *models.Session, actorID uint, reason string, now time.Time) (RefundOutcome, error) {
	if actorID != s.MentorID {
		return RefundOutcome{}, UnauthorizedActorError{SessionID: s.ID, ActorID: actorID, Event: EventCancel}
	}
	if Status(s.Status) != StatusConfirmed {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventCancel, Current: Status(s.Status)}
	}
	if !now.Before(s.ScheduledAt) {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventCancel, Current: Status(s.Status)}
	}

	s.Status = string(StatusCancelledByMentor)
	s.CancellationReason = strings.TrimSpace(reason)
	s.RefundTier = string(TierFull)
	s.CancelledAt = &now
	return refundFor(s, TierFull), nil
}

// MarkNoShow records the terminal state for an elapsed session. The
// attendance verdict comes from the call layer; the engine only records
// it and computes the payout. Mentor absence refunds in full plus 10%
// compensation; mentee absence refunds nothing.
func MarkNoShow(s *models.Session, absent Party, now time.Time) (RefundOutcome, error) {
	if Status(s.Status) != StatusConfirmed {
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventNoShow, Current: Status(s.Status)}
	}

	switch absent {
	case PartyMentor:
		s.Status = string(StatusNoShowMentor)
		s.RefundTier = string(TierFull)
		out := refundFor(s, TierFull)
		out.Compensation = s.Price.Mul(decimal.New(1, -1)) // 10%
		s.CancelledAt = &now
		return out, nil
	case PartyMentee:
		s.Status = string(StatusNoShowMentee)
		s.RefundTier = string(TierNone)
		s.CancelledAt = &now
		return refundFor(s, TierNone), nil
	default:
		return RefundOutcome{}, InvalidTransitionError{SessionID: s.ID, Event: EventNoShow, Current: Status(s.Status)}
	}
}

// Start: a join within the window moves the session in progress. The
// envelope is the wider mentee window; per-party join eligibility is
// checked by CanJoin before the call layer reports the join.
func Start(s *models.Session, now time.Time) error {
	if Status(s.Status) != StatusConfirmed {
		return InvalidTransitionError{SessionID: s.ID, Event: EventStart, Current: Status(s.Status)}
	}
	open := s.ScheduledAt.Add(-MenteeJoinEarly)
	close := s.ScheduledEndAt.Add(MenteeJoinLate)
	if now.Before(open) || now.After(close) {
		return InvalidTransitionError{SessionID: s.ID, Event: EventStart, Current: Status(s.Status)}
	}

	s.Status = string(StatusInProgress)
	s.StartedAt = &now
	return nil
}

// Complete: enables review eligibility downstream.
func Complete(s *models.Session, now time.Time) error {
	if Status(s.Status) != StatusInProgress {
		return InvalidTransitionError{SessionID: s.ID, Event: EventComplete, Current: Status(s.Status)}
	}

	s.Status = string(StatusCompleted)
	s.CompletedAt = &now
	return nil
}
