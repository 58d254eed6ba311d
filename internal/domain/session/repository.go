package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mentorbase/mentor-scheduler/internal/models"
)

type Repository interface {
	// -------- Mentor --------
	GetMentorProfile(
		ctx context.Context,
		mentorID uint,
	) (*models.MentorProfile, error)

	ListAvailabilityRules(
		ctx context.Context,
		mentorID uint,
	) ([]models.AvailabilityRule, error)

	// -------- Sessions (read) --------
	GetSession(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Session, error)

	// ListBlockingSessions returns the mentor's calendar-occupying
	// sessions overlapping [from, to).
	ListBlockingSessions(
		ctx context.Context,
		mentorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Session, error)

	ListSessionsForUser(
		ctx context.Context,
		userID uint,
		role string,
		from time.Time,
		to time.Time,
	) ([]models.Session, error)

	// HasPriorSession gates free-trial eligibility: any completed or
	// still-scheduled session between the pair counts. A session
	// matching excluding is ignored, so a replacement booking does not
	// count the original it supersedes.
	HasPriorSession(
		ctx context.Context,
		mentorID uint,
		menteeID uint,
		excluding uuid.UUID,
	) (bool, error)

	// ListOverdueConfirmed returns confirmed sessions whose join window
	// fully elapsed before the cutoff, for the no-show sweep.
	ListOverdueConfirmed(
		ctx context.Context,
		cutoff time.Time,
	) ([]models.Session, error)

	// -------- Sessions (write) --------

	// CreateSession persists a new session. The store's unique constraint
	// on (mentor_id, scheduled_at) over non-terminal sessions is the
	// single source of truth for "available"; a lost race surfaces as
	// SlotUnavailableError.
	CreateSession(
		ctx context.Context,
		s *models.Session,
	) error

	UpdateSession(
		ctx context.Context,
		s *models.Session,
	) error
}
