package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionListDTO is the list projection consumed by both dashboards.
// CanJoin/CanCancel/Urgency are evaluated at query time; clients poll
// rather than cache them.
type SessionListDTO struct {
	ID          uuid.UUID       `json:"id"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	EndAt       time.Time       `json:"end_at"`
	DurationMin int             `json:"duration_min"`
	Status      string          `json:"status"`
	Counterpart string          `json:"counterpart"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	MeetingURL  string          `json:"meeting_url,omitempty"`
	CanJoin     bool            `json:"can_join"`
	CanCancel   bool            `json:"can_cancel"`
	Urgency     string          `json:"urgency"`
}
