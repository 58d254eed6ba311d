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

// MarkNoShow records the attendance verdict delivered by the call layer.
// The engine never decides who was absent on its own; see SweepNoShows
// for the timeout default.
type MarkNoShow struct {
	repo    domain.Repository
	gateway payments.Gateway
	idem    idempotency.Store
	audit   *audit.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	gateway payments.Gateway,
	idem idempotency.Store,
	auditDisp *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:    repo,
		gateway: gateway,
		idem:    idem,
		audit:   auditDisp,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	absent domain.Party,
) (*models.Session, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()
	outcome, err := domain.MarkNoShow(sess, absent, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	if err := emitRefund(ctx, uc.gateway, uc.idem, sess, domain.EventNoShow, outcome); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "session_no_show",
		Entity:   "session",
		EntityID: sess.ID.String(),
		Metadata: map[string]string{"absent": string(absent)},
	})

	return sess, nil
}
