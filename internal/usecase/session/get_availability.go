package session

import (
	"context"
	"time"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo    domain.Repository
	stepMin int
}

func NewGetAvailability(repo domain.Repository, stepMin int) *GetAvailability {
	return &GetAvailability{repo: repo, stepMin: stepMin}
}

type AvailabilityInput struct {
	MentorID    uint
	From        time.Time
	To          time.Time
	DurationMin int
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.BookingSlot, error) {

	profile, err := uc.repo.GetMentorProfile(ctx, in.MentorID)
	if err != nil {
		return nil, httperr.ErrBusiness("mentor_not_found")
	}

	loc := timezone.Location(profile.Timezone)
	from := in.From.In(loc)
	to := in.To.In(loc)

	rules, err := uc.repo.ListAvailabilityRules(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListBlockingSessions(ctx, in.MentorID, from, to)
	if err != nil {
		return nil, err
	}

	// A slot inside the mentor's minimum advance window can never be
	// booked, so it is never shown either. Same cutoff the booking
	// commit enforces.
	minAdvance := profile.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	earliest := timezone.NowIn(profile.Timezone).
		Add(time.Duration(minAdvance) * time.Minute)

	return domain.ResolveSlots(
		domain.PatternFromRules(rules),
		existing,
		from,
		to,
		in.DurationMin,
		uc.stepMin,
		earliest,
	)
}
