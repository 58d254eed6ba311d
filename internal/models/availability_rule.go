package models

import "time"

// AvailabilityRule is one recurring weekly interval of a mentor's pattern.
// Times are minute-granular "15:04" strings in the mentor's timezone.
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MentorID uint `gorm:"index" json:"mentor_id"`

	Weekday int `json:"weekday"` // 0 = Sunday .. 6 = Saturday

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
