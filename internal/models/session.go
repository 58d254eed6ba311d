package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is the shared ledger entity for one mentorship appointment.
// Status and its timestamps are mutated only through domain transitions;
// sessions are never deleted.
type Session struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	MentorID uint `gorm:"index" json:"mentor_id"`
	Mentor   User `gorm:"foreignKey:MentorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentor"`

	MenteeID uint `gorm:"index" json:"mentee_id"`
	Mentee   User `gorm:"foreignKey:MenteeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentee"`

	ScheduledAt    time.Time `json:"scheduled_at"`
	ScheduledEndAt time.Time `json:"scheduled_end_at"` // always ScheduledAt + duration, immutable
	DurationMin    int       `json:"duration_min"`

	Status string `gorm:"size:30;default:'pending_confirmation'" json:"status"`

	Price     decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Currency  string          `gorm:"size:3" json:"currency"`
	FreeTrial bool            `gorm:"default:false" json:"free_trial"`

	MeetingURL string `gorm:"size:255" json:"meeting_url"`

	// PaymentRef is the gateway-side id of the held payment, empty for
	// free sessions. Needed to address refunds later.
	PaymentRef string `gorm:"size:64" json:"-"`

	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`
	RefundTier         string `gorm:"size:20" json:"refund_tier"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
