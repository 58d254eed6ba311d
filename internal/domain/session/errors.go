package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ===============================
// Engine errors
// ===============================
//
// Every error carries enough context (session id, attempted event,
// current state) for the caller to decide between surfacing a user
// message and retrying.

// InvalidRangeError: rangeEnd earlier than rangeStart. Caller bug.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s before start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// InvalidDurationError: non-positive session duration. Caller bug.
type InvalidDurationError struct {
	Minutes int
}

func (e InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration: %d minutes", e.Minutes)
}

// SlotUnavailableError: the requested slot was taken between read and
// commit. Caller should re-query availability and may retry.
type SlotUnavailableError struct {
	MentorID uint
	StartAt  time.Time
}

func (e SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot at %s for mentor %d is no longer available",
		e.StartAt.Format(time.RFC3339), e.MentorID)
}

// InvalidTransitionError: transition attempted from a terminal or
// incompatible state. Never retried.
type InvalidTransitionError struct {
	SessionID uuid.UUID
	Event     Event
	Current   Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("session %s: cannot %s from state %s",
		e.SessionID, e.Event, e.Current)
}

// UnauthorizedActorError: the caller is not the party allowed to drive
// this transition.
type UnauthorizedActorError struct {
	SessionID uuid.UUID
	ActorID   uint
	Event     Event
}

func (e UnauthorizedActorError) Error() string {
	return fmt.Sprintf("session %s: actor %d may not %s",
		e.SessionID, e.ActorID, e.Event)
}

// ReasonRequiredError: a cancellation/rejection reason shorter than the
// policy minimum where one is required.
type ReasonRequiredError struct {
	SessionID uuid.UUID
	MinLength int
}

func (e ReasonRequiredError) Error() string {
	return fmt.Sprintf("session %s: a reason of at least %d characters is required",
		e.SessionID, e.MinLength)
}
