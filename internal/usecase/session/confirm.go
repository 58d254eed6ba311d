package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

type ConfirmSession struct {
	repo           domain.Repository
	audit          *audit.Dispatcher
	meetingBaseURL string
}

func NewConfirmSession(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	meetingBaseURL string,
) *ConfirmSession {
	return &ConfirmSession{
		repo:           repo,
		audit:          auditDisp,
		meetingBaseURL: meetingBaseURL,
	}
}

func (uc *ConfirmSession) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	actorID uint,
) (*models.Session, error) {

	sess, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	now := timezone.Now()
	if err := domain.Confirm(sess, actorID, now); err != nil {
		return nil, err
	}

	// The meeting room is minted at confirmation; the video layer only
	// consumes this URL.
	sess.MeetingURL = fmt.Sprintf("%s/%s", uc.meetingBaseURL, uuid.NewString())

	if err := uc.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "session_confirmed",
		Entity:   "session",
		EntityID: sess.ID.String(),
	})

	return sess, nil
}
