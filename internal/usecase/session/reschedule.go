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

// RescheduleSession cancels the original session and books a fresh one
// at the new slot. Scheduled times are never edited in place; the old
// session stays in the ledger as cancelled and the new one carries its
// own id and audit trail.
type RescheduleSession struct {
	cancel *CancelSession
	book   *BookSession
	audit  *audit.Dispatcher
}

func NewRescheduleSession(
	cancel *CancelSession,
	book *BookSession,
	auditDisp *audit.Dispatcher,
) *RescheduleSession {
	return &RescheduleSession{
		cancel: cancel,
		book:   book,
		audit:  auditDisp,
	}
}

type RescheduleInput struct {
	SessionID   uuid.UUID
	ActorID     uint
	MenteeEmail string
	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	Reason      string
}

func (uc *RescheduleSession) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Session, error) {

	old, err := uc.cancel.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	// The replacement booking places a payment hold, so every guard of
	// the cancellation leg (actor, state, reason) must pass before
	// anything is charged. Run the cancel against a scratch copy first.
	now := timezone.Now()
	scratch := *old
	switch in.ActorID {
	case old.MentorID:
		_, err = domain.CancelByMentor(&scratch, in.ActorID, in.Reason, now)
	case old.MenteeID:
		_, err = domain.CancelByMentee(&scratch, in.ActorID, in.Reason, now)
	default:
		err = domain.UnauthorizedActorError{
			SessionID: old.ID,
			ActorID:   in.ActorID,
			Event:     domain.EventCancel,
		}
	}
	if err != nil {
		return nil, err
	}

	// The replacement is booked before the original is given up, so a
	// failed booking leaves the original untouched.
	replacement, err := uc.book.Execute(ctx, BookSessionInput{
		MentorID:           old.MentorID,
		MenteeID:           old.MenteeID,
		MenteeEmail:        in.MenteeEmail,
		Date:               in.Date,
		Time:               in.Time,
		DurationMin:        old.DurationMin,
		FreeTrialRequested: old.FreeTrial,
		ReplacesSessionID:  old.ID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.cancel.Execute(ctx, in.SessionID, in.ActorID, in.Reason); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "session_rescheduled",
		Entity:   "session",
		EntityID: replacement.ID.String(),
		Metadata: map[string]string{"replaces": in.SessionID.String()},
	})

	return replacement, nil
}
