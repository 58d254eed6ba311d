package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/httpresp"
	"github.com/mentorbase/mentor-scheduler/internal/middleware"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	ucSession "github.com/mentorbase/mentor-scheduler/internal/usecase/session"
)

type AvailabilityHandler struct {
	db             *gorm.DB
	availabilityUC *ucSession.GetAvailability
}

func NewAvailabilityHandler(db *gorm.DB, availabilityUC *ucSession.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, availabilityUC: availabilityUC}
}

// --------- Requests ---------

type AvailabilityRuleRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type PutAvailabilityRequest struct {
	Rules []AvailabilityRuleRequest `json:"rules"`
}

// --------- Public ---------

// Slots exposes a mentor's bookable slots to browsing mentees.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_mentor_id", "Mentor id must be numeric.")
		return
	}

	durationMin, err := strconv.Atoi(c.DefaultQuery("duration_min", "60"))
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "duration_min must be numeric.")
		return
	}

	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucSession.AvailabilityInput{
		MentorID:    uint(mentorID),
		From:        from,
		To:          to,
		DurationMin: durationMin,
	})
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "availability_failed", "Could not resolve availability.")
		}
		return
	}

	httpresp.List(c, slots)
}

// --------- Mentor self-service ---------

func (h *AvailabilityHandler) Get(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("mentor_id = ?", mentorID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "availability_rules_failed", "Could not load availability.")
		return
	}

	httpresp.List(c, rules)
}

// Put replaces the whole weekly pattern. The non-overlap invariant is
// validated before anything is written.
func (h *AvailabilityHandler) Put(c *gin.Context) {
	mentorID := c.MustGet(middleware.ContextUserID).(uint)

	var req PutAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	pattern := make(domain.WeeklyPattern, 0, len(req.Rules))
	rules := make([]models.AvailabilityRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		pattern = append(pattern, domain.Interval{
			Weekday: r.Weekday,
			Start:   r.StartTime,
			End:     r.EndTime,
		})
		rules = append(rules, models.AvailabilityRule{
			MentorID:  mentorID,
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Active:    true,
		})
	}

	if err := pattern.Validate(); err != nil {
		if !writeEngineError(c, err) {
			httperr.BadRequest(c, "invalid_pattern", err.Error())
		}
		return
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mentor_id = ?", mentorID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	}); err != nil {
		httperr.Internal(c, "availability_update_failed", "Could not update availability.")
		return
	}

	httpresp.List(c, rules)
}
