package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MentorProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Headline string `gorm:"size:255" json:"headline"`

	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2)" json:"hourly_rate"`
	Currency   string          `gorm:"size:3;default:'EUR'" json:"currency"`

	// OffersFreeTrial gates the first-session trial; a zero HourlyRate means
	// the mentor is always free, which is an independent configuration.
	OffersFreeTrial bool `gorm:"default:false" json:"offers_free_trial"`

	Timezone          string `gorm:"size:50;default:'UTC'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
