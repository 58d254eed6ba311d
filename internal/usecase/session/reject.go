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

type RejectSession struct {
	repo    domain.Repository
	gateway payments.Gateway
	idem    idempotency.Store
	audit   *audit.Dispatcher
}

func NewRejectSession(
	repo domain.Repository,
	gateway payments.Gateway,
	idem idempotency.Store,
	auditDisp *audit.Dispatcher,
) *RejectSession {
	return &RejectSession{
		repo:    repo,
		gateway: gateway,
		idem:    idem,
		audit:   auditDisp,
	}
}

func (uc *RejectSession) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	actorID uint,
	reason string,
) (*models.Session, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()
	outcome, err := domain.Reject(sess, actorID, reason, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	if err := emitRefund(ctx, uc.gateway, uc.idem, sess, domain.EventReject, outcome); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "session_rejected",
		Entity:   "session",
		EntityID: sess.ID.String(),
	})

	return sess, nil
}
