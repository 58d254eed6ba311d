package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

type CompleteSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteSession(repo domain.Repository, auditDisp *audit.Dispatcher) *CompleteSession {
	return &CompleteSession{repo: repo, audit: auditDisp}
}

func (uc *CompleteSession) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
) (*models.Session, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()
	if err := domain.Complete(sess, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "session_completed",
		Entity:   "session",
		EntityID: sess.ID.String(),
	})

	return sess, nil
}
