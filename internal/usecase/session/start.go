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

// StartSession moves a confirmed session in progress once the call layer
// reports a join inside the window.
type StartSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartSession(repo domain.Repository, auditDisp *audit.Dispatcher) *StartSession {
	return &StartSession{repo: repo, audit: auditDisp}
}

func (uc *StartSession) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	actorID uint,
) (*models.Session, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	var party domain.Party
	switch actorID {
	case sess.MentorID:
		party = domain.PartyMentor
	case sess.MenteeID:
		party = domain.PartyMentee
	default:
		return nil, domain.UnauthorizedActorError{
			SessionID: sess.ID,
			ActorID:   actorID,
			Event:     domain.EventStart,
		}
	}

	now := timezone.Now()
	if !domain.CanJoin(sess, party, now) {
		return nil, domain.InvalidTransitionError{
			SessionID: sess.ID,
			Event:     domain.EventStart,
			Current:   domain.Status(sess.Status),
		}
	}

	if err := domain.Start(sess, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "session_started",
		Entity:   "session",
		EntityID: sess.ID.String(),
	})

	return sess, nil
}
