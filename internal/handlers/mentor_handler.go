package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/httpresp"
	"github.com/mentorbase/mentor-scheduler/internal/middleware"
	"github.com/mentorbase/mentor-scheduler/internal/models"
)

type MentorHandler struct {
	db *gorm.DB
}

func NewMentorHandler(db *gorm.DB) *MentorHandler {
	return &MentorHandler{db: db}
}

// --------- Requests ---------

type UpdateMentorProfileRequest struct {
	Headline        *string          `json:"headline"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	Currency        *string          `json:"currency"`
	OffersFreeTrial *bool            `json:"offers_free_trial"`
	Timezone        *string          `json:"timezone"`
}

// --------- Handlers ---------

func (h *MentorHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.MentorProfile
	if err := h.db.Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "mentor_not_found", "Mentor profile not found.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *MentorHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.MentorProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "mentor_not_found", "Mentor profile not found.")
		return
	}

	var req UpdateMentorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Headline != nil {
		profile.Headline = *req.Headline
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			httperr.BadRequest(c, "invalid_hourly_rate", "Hourly rate cannot be negative.")
			return
		}
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			httperr.BadRequest(c, "invalid_currency", "Currency must be a 3-letter ISO code.")
			return
		}
		profile.Currency = currency
	}
	if req.OffersFreeTrial != nil {
		profile.OffersFreeTrial = *req.OffersFreeTrial
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "mentor_update_failed", "Could not update the profile.")
		return
	}

	httpresp.OK(c, profile)
}

// Quote prices a candidate booking without creating anything.
func (h *MentorHandler) Quote(c *gin.Context) {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "Mentor id must be numeric.")
		return
	}

	durationMin, err := strconv.Atoi(c.DefaultQuery("duration_min", "60"))
	if err != nil || durationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "duration_min must be a positive number.")
		return
	}

	freeTrial := c.Query("free_trial") == "true"

	var profile models.MentorProfile
	if err := h.db.Where("user_id = ?", mentorID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "mentor_not_found", "Mentor profile not found.")
		return
	}

	breakdown := domain.CalculatePrice(profile.HourlyRate, durationMin, freeTrial).Rounded()

	httpresp.OK(c, gin.H{
		"price":    breakdown,
		"currency": profile.Currency,
	})
}
