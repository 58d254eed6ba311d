package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Mentor
// --------------------------------------------------

func (r *SessionGormRepository) GetMentorProfile(
	ctx context.Context,
	mentorID uint,
) (*models.MentorProfile, error) {

	var profile models.MentorProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", mentorID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SessionGormRepository) ListAvailabilityRules(
	ctx context.Context,
	mentorID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND active = true", mentorID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// --------------------------------------------------
// Sessions (read)
// --------------------------------------------------

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	id uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) ListBlockingSessions(
	ctx context.Context,
	mentorID uint,
	from time.Time,
	to time.Time,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Select("id", "mentor_id", "scheduled_at", "scheduled_end_at", "status").
		Where(
			"mentor_id = ? AND status IN ? AND scheduled_at < ? AND scheduled_end_at > ?",
			mentorID, domain.BlockingStatuses(), to, from,
		).
		Order("scheduled_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) ListSessionsForUser(
	ctx context.Context,
	userID uint,
	role string,
	from time.Time,
	to time.Time,
) ([]models.Session, error) {

	column := "mentee_id"
	if role == models.RoleMentor {
		column = "mentor_id"
	}

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee").
		Where(
			column+" = ? AND scheduled_at >= ? AND scheduled_at < ?",
			userID, from, to,
		).
		Order("scheduled_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) HasPriorSession(
	ctx context.Context,
	mentorID uint,
	menteeID uint,
	excluding uuid.UUID,
) (bool, error) {

	counted := append(domain.BlockingStatuses(), string(domain.StatusCompleted))

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where(
			"mentor_id = ? AND mentee_id = ? AND status IN ? AND id <> ?",
			mentorID, menteeID, counted, excluding,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SessionGormRepository) ListOverdueConfirmed(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND scheduled_end_at < ?",
			string(domain.StatusConfirmed), cutoff,
		).
		Order("scheduled_end_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// --------------------------------------------------
// Sessions (write)
// --------------------------------------------------

func (r *SessionGormRepository) CreateSession(
	ctx context.Context,
	s *models.Session,
) error {

	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		// The partial unique index on (mentor_id, scheduled_at) fires
		// when a concurrent booking won the slot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SlotUnavailableError{
				MentorID: s.MentorID,
				StartAt:  s.ScheduledAt,
			}
		}
		return err
	}
	return nil
}

func (r *SessionGormRepository) UpdateSession(
	ctx context.Context,
	s *models.Session,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
