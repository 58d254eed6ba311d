package session

import (
	"context"
	"time"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/dto"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	userID uint,
	role string,
	from time.Time,
	to time.Time,
) ([]dto.SessionListDTO, error) {

	sessions, err := uc.repo.ListSessionsForUser(ctx, userID, role, from, to)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()

	out := make([]dto.SessionListDTO, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		party := domain.PartyMentee
		counterpart := s.Mentor.Name
		if role == "mentor" {
			party = domain.PartyMentor
			counterpart = s.Mentee.Name
		}

		out = append(out, dto.SessionListDTO{
			ID:          s.ID,
			ScheduledAt: s.ScheduledAt,
			EndAt:       s.ScheduledEndAt,
			DurationMin: s.DurationMin,
			Status:      s.Status,
			Counterpart: counterpart,
			Price:       s.Price,
			Currency:    s.Currency,
			MeetingURL:  s.MeetingURL,
			CanJoin:     domain.CanJoin(s, party, now),
			CanCancel:   domain.CanCancel(s, now),
			Urgency:     string(domain.CountdownUrgency(s.ScheduledAt, now)),
		})
	}

	return out, nil
}
