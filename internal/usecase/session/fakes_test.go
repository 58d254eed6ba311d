package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
)

// ------- fake repository -------

type fakeRepo struct {
	mu       sync.Mutex
	profile  *models.MentorProfile
	rules    []models.AvailabilityRule
	sessions map[uuid.UUID]*models.Session

	failNextCreate bool
}

func newFakeRepo(profile *models.MentorProfile, rules []models.AvailabilityRule) *fakeRepo {
	return &fakeRepo{
		profile:  profile,
		rules:    rules,
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

func (f *fakeRepo) GetMentorProfile(_ context.Context, mentorID uint) (*models.MentorProfile, error) {
	if f.profile == nil || f.profile.UserID != mentorID {
		return nil, errors.New("record not found")
	}
	return f.profile, nil
}

func (f *fakeRepo) ListAvailabilityRules(_ context.Context, _ uint) ([]models.AvailabilityRule, error) {
	return f.rules, nil
}

func (f *fakeRepo) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) ListBlockingSessions(_ context.Context, mentorID uint, from, to time.Time) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.MentorID != mentorID || !domain.Status(s.Status).Blocking() {
			continue
		}
		if s.ScheduledAt.Before(to) && s.ScheduledEndAt.After(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSessionsForUser(_ context.Context, userID uint, role string, from, to time.Time) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		owner := s.MenteeID
		if role == models.RoleMentor {
			owner = s.MentorID
		}
		if owner == userID && !s.ScheduledAt.Before(from) && s.ScheduledAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasPriorSession(_ context.Context, mentorID, menteeID uint, excluding uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.ID == excluding || s.MentorID != mentorID || s.MenteeID != menteeID {
			continue
		}
		st := domain.Status(s.Status)
		if st.Blocking() || st == domain.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListOverdueConfirmed(_ context.Context, cutoff time.Time) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.Status == string(domain.StatusConfirmed) && s.ScheduledEndAt.Before(cutoff) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateSession(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNextCreate {
		f.failNextCreate = false
		return domain.SlotUnavailableError{MentorID: s.MentorID, StartAt: s.ScheduledAt}
	}

	for _, existing := range f.sessions {
		if existing.MentorID == s.MentorID &&
			existing.ScheduledAt.Equal(s.ScheduledAt) &&
			domain.Status(existing.Status).Blocking() {
			return domain.SlotUnavailableError{MentorID: s.MentorID, StartAt: s.ScheduledAt}
		}
	}

	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateSession(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------- fake payment gateway -------

type fakeGateway struct {
	mu            sync.Mutex
	holds         []payments.Intent
	refunds       []payments.Intent
	compensations []payments.Intent
}

func (g *fakeGateway) HoldPayment(_ context.Context, in payments.Intent) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.holds = append(g.holds, in)
	return "pay-" + in.SessionID.String(), nil
}

func (g *fakeGateway) EmitRefund(_ context.Context, in payments.Intent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds = append(g.refunds, in)
	return nil
}

func (g *fakeGateway) PayCompensation(_ context.Context, in payments.Intent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compensations = append(g.compensations, in)
	return nil
}

var _ payments.Gateway = (*fakeGateway)(nil)

// ------- fake idempotency store -------

type fakeIdem struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{keys: make(map[string]bool)}
}

func (f *fakeIdem) Begin(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdem) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	return nil
}
