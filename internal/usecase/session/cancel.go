package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

type CancelSession struct {
	repo    domain.Repository
	gateway payments.Gateway
	idem    idempotency.Store
	audit   *audit.Dispatcher
}

func NewCancelSession(
	repo domain.Repository,
	gateway payments.Gateway,
	idem idempotency.Store,
	auditDisp *audit.Dispatcher,
) *CancelSession {
	return &CancelSession{
		repo:    repo,
		gateway: gateway,
		idem:    idem,
		audit:   auditDisp,
	}
}

type CancelResult struct {
	Session *models.Session
	Outcome domain.RefundOutcome
}

// Execute routes to the mentor or mentee cancellation rules depending on
// which party the actor is. Anyone else is rejected.
func (uc *CancelSession) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	actorID uint,
	reason string,
) (*CancelResult, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()

	var outcome domain.RefundOutcome
	switch actorID {
	case sess.MentorID:
		outcome, err = domain.CancelByMentor(sess, actorID, reason, now)
	case sess.MenteeID:
		outcome, err = domain.CancelByMentee(sess, actorID, reason, now)
	default:
		err = domain.UnauthorizedActorError{
			SessionID: sess.ID,
			ActorID:   actorID,
			Event:     domain.EventCancel,
		}
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	if err := emitRefund(ctx, uc.gateway, uc.idem, sess, domain.EventCancel, outcome); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "session_cancelled",
		Entity:   "session",
		EntityID: sess.ID.String(),
		Metadata: map[string]string{"refund_tier": string(outcome.Tier)},
	})

	return &CancelResult{Session: sess, Outcome: outcome}, nil
}
