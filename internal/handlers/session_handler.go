package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/httperr"
	"github.com/mentorbase/mentor-scheduler/internal/httpresp"
	"github.com/mentorbase/mentor-scheduler/internal/middleware"
	ucSession "github.com/mentorbase/mentor-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	bookUC       *ucSession.BookSession
	confirmUC    *ucSession.ConfirmSession
	rejectUC     *ucSession.RejectSession
	cancelUC     *ucSession.CancelSession
	noShowUC     *ucSession.MarkNoShow
	startUC      *ucSession.StartSession
	completeUC   *ucSession.CompleteSession
	rescheduleUC *ucSession.RescheduleSession
	sweepUC      *ucSession.SweepNoShows
	listUC       *ucSession.ListSessions
}

func NewSessionHandler(
	bookUC *ucSession.BookSession,
	confirmUC *ucSession.ConfirmSession,
	rejectUC *ucSession.RejectSession,
	cancelUC *ucSession.CancelSession,
	noShowUC *ucSession.MarkNoShow,
	startUC *ucSession.StartSession,
	completeUC *ucSession.CompleteSession,
	rescheduleUC *ucSession.RescheduleSession,
	sweepUC *ucSession.SweepNoShows,
	listUC *ucSession.ListSessions,
) *SessionHandler {
	return &SessionHandler{
		bookUC:       bookUC,
		confirmUC:    confirmUC,
		rejectUC:     rejectUC,
		cancelUC:     cancelUC,
		noShowUC:     noShowUC,
		startUC:      startUC,
		completeUC:   completeUC,
		rescheduleUC: rescheduleUC,
		sweepUC:      sweepUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookSessionRequest struct {
	MentorID    uint   `json:"mentor_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	DurationMin int    `json:"duration_min" binding:"required"`
	FreeTrial   bool   `json:"free_trial"`
	Email       string `json:"email"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type NoShowRequest struct {
	Absent string `json:"absent" binding:"required,oneof=mentor mentee"`
}

type RescheduleRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
	Email  string `json:"email"`
}

// ======================================================
// BOOKING
// ======================================================

func (h *SessionHandler) Book(c *gin.Context) {
	menteeID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sess, err := h.bookUC.Execute(c.Request.Context(), ucSession.BookSessionInput{
		MentorID:           req.MentorID,
		MenteeID:           menteeID,
		MenteeEmail:        req.Email,
		Date:               req.Date,
		Time:               req.Time,
		DurationMin:        req.DurationMin,
		FreeTrialRequested: req.FreeTrial,
	})
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "booking_failed", "Could not create the booking.")
		}
		return
	}

	c.JSON(201, sess)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *SessionHandler) Confirm(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	sess, err := h.confirmUC.Execute(c.Request.Context(), sessionID, actorID)
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "confirm_failed", "Could not confirm the session.")
		}
		return
	}

	httpresp.OK(c, sess)
}

func (h *SessionHandler) Reject(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sess, err := h.rejectUC.Execute(c.Request.Context(), sessionID, actorID, req.Reason)
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "reject_failed", "Could not reject the session.")
		}
		return
	}

	httpresp.OK(c, sess)
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req ReasonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), sessionID, actorID, req.Reason)
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "cancel_failed", "Could not cancel the session.")
		}
		return
	}

	httpresp.OK(c, gin.H{
		"session":      result.Session,
		"refund_tier":  result.Outcome.Tier,
		"refund":       result.Outcome.Refund,
		"compensation": result.Outcome.Compensation,
	})
}

func (h *SessionHandler) MarkNoShow(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req NoShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sess, err := h.noShowUC.Execute(c.Request.Context(), sessionID, domain.Party(req.Absent))
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "no_show_failed", "Could not record the no-show.")
		}
		return
	}

	httpresp.OK(c, sess)
}

func (h *SessionHandler) Start(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	sess, err := h.startUC.Execute(c.Request.Context(), sessionID, actorID)
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "start_failed", "Could not start the session.")
		}
		return
	}

	httpresp.OK(c, sess)
}

func (h *SessionHandler) Complete(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	sess, err := h.completeUC.Execute(c.Request.Context(), sessionID)
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "complete_failed", "Could not complete the session.")
		}
		return
	}

	httpresp.OK(c, sess)
}

func (h *SessionHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sess, err := h.rescheduleUC.Execute(c.Request.Context(), ucSession.RescheduleInput{
		SessionID:   sessionID,
		ActorID:     actorID,
		MenteeEmail: req.Email,
		Date:        req.Date,
		Time:        req.Time,
		Reason:      req.Reason,
	})
	if err != nil {
		if !writeEngineError(c, err) {
			httperr.Internal(c, "reschedule_failed", "Could not reschedule the session.")
		}
		return
	}

	c.JSON(201, sess)
}

// SweepNoShows is invoked by the external scheduler, not by end users.
func (h *SessionHandler) SweepNoShows(c *gin.Context) {
	swept, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "sweep_failed", "No-show sweep failed.")
		return
	}

	httpresp.OK(c, gin.H{"swept": swept})
}

// ======================================================
// LISTING
// ======================================================

func (h *SessionHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	sessions, err := h.listUC.Execute(c.Request.Context(), userID, role, from, to)
	if err != nil {
		httperr.Internal(c, "list_failed", "Could not list sessions.")
		return
	}

	httpresp.List(c, sessions)
}

// ======================================================
// HELPERS
// ======================================================

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "Session id must be a UUID.")
		return uuid.Nil, false
	}
	return id, true
}

func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"

	fromStr := c.DefaultQuery("from", time.Now().UTC().Format(layout))
	from, err := time.Parse(layout, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "from must be YYYY-MM-DD.")
		return time.Time{}, time.Time{}, false
	}

	toStr := c.DefaultQuery("to", from.AddDate(0, 0, 14).Format(layout))
	to, err := time.Parse(layout, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "to must be YYYY-MM-DD.")
		return time.Time{}, time.Time{}, false
	}

	return from, to.AddDate(0, 0, 1), true
}
