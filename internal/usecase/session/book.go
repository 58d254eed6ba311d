package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	"github.com/mentorbase/mentor-scheduler/internal/logger"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookSessionInput struct {
	MentorID uint
	MenteeID uint

	// MenteeEmail travels to the payment gateway as the payer.
	MenteeEmail string

	Date        string // YYYY-MM-DD, mentor's timezone
	Time        string // HH:mm
	DurationMin int

	// FreeTrialRequested is only honored when the mentor offers a trial
	// and the pair has no prior session; both are re-checked here, never
	// trusted from the client.
	FreeTrialRequested bool

	// ReplacesSessionID, when set by a reschedule, is excluded from the
	// prior-session check so a rescheduled free trial keeps its pricing.
	ReplacesSessionID uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type BookSession struct {
	repo    domain.Repository
	gateway payments.Gateway
	holds   idempotency.Store
	audit   *audit.Dispatcher
}

func NewBookSession(
	repo domain.Repository,
	gateway payments.Gateway,
	holds idempotency.Store,
	auditDisp *audit.Dispatcher,
) *BookSession {
	return &BookSession{
		repo:    repo,
		gateway: gateway,
		holds:   holds,
		audit:   auditDisp,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSession) Execute(
	ctx context.Context,
	in BookSessionInput,
) (*models.Session, error) {

	if in.DurationMin <= 0 {
		return nil, domain.InvalidDurationError{Minutes: in.DurationMin}
	}

	profile, err := uc.repo.GetMentorProfile(ctx, in.MentorID)
	if err != nil {
		return nil, httperr.ErrBusiness("mentor_not_found")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(profile.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start.Add(time.Duration(in.DurationMin) * time.Minute)

	minAdvance := profile.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(profile.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// Re-validate the slot at commit time. A slot shown as free in an
	// earlier availability read may have been taken since.
	rules, err := uc.repo.ListAvailabilityRules(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListBlockingSessions(ctx, in.MentorID, start, end)
	if err != nil {
		return nil, err
	}

	pattern := domain.PatternFromRules(rules)
	if !domain.SlotIsBookable(pattern, existing, start, in.DurationMin, now) {
		return nil, domain.SlotUnavailableError{MentorID: in.MentorID, StartAt: start}
	}

	// Advisory hold so two in-flight requests for the same slot fail
	// fast; the store's unique index remains the real arbiter.
	holdKey := fmt.Sprintf("slot:%d:%d", in.MentorID, start.Unix())
	held, err := uc.holds.Begin(ctx, holdKey, 2*time.Minute)
	if err == nil && !held {
		return nil, domain.SlotUnavailableError{MentorID: in.MentorID, StartAt: start}
	}

	freeTrial := in.FreeTrialRequested && profile.OffersFreeTrial
	if freeTrial {
		prior, err := uc.repo.HasPriorSession(ctx, in.MentorID, in.MenteeID, in.ReplacesSessionID)
		if err != nil {
			return nil, err
		}
		if prior {
			freeTrial = false
		}
	}

	price := domain.CalculatePrice(profile.HourlyRate, in.DurationMin, freeTrial)

	sess := domain.New(
		in.MentorID,
		in.MenteeID,
		start,
		in.DurationMin,
		price,
		profile.Currency,
	)

	if err := uc.repo.CreateSession(ctx, sess); err != nil {
		uc.holds.Release(ctx, holdKey)
		return nil, err
	}

	if sess.Price.IsPositive() {
		ref, err := uc.gateway.HoldPayment(ctx, payments.Intent{
			SessionID:  sess.ID,
			Amount:     sess.Price,
			Currency:   sess.Currency,
			Payer:      in.MenteeEmail,
			Descriptor: fmt.Sprintf("Mentorship session with %s", profile.User.Name),
		})
		if err != nil {
			// The session itself committed; payment is retried
			// idempotently by the caller, keyed by session id.
			logger.Get().Error("payment hold failed",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err),
			)
			return sess, err
		}

		sess.PaymentRef = ref
		if err := uc.repo.UpdateSession(ctx, sess); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MenteeID,
		Action:   "session_booked",
		Entity:   "session",
		EntityID: sess.ID.String(),
	})

	return sess, nil
}
