package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	"github.com/mentorbase/mentor-scheduler/internal/config"
	"github.com/mentorbase/mentor-scheduler/internal/handlers"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	infraRepo "github.com/mentorbase/mentor-scheduler/internal/infra/repository"
	"github.com/mentorbase/mentor-scheduler/internal/logger"
	"github.com/mentorbase/mentor-scheduler/internal/middleware"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
	ucSession "github.com/mentorbase/mentor-scheduler/internal/usecase/session"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	idemStore := idempotency.NewRedisStore(cfg.RedisAddr)

	var gateway payments.Gateway
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			logger.Get().Fatal("payment gateway init failed")
		}
		gateway = mp
	} else {
		gateway = payments.NewLogGateway(logger.Get())
	}

	// ======================================================
	// SESSION USE CASES
	// ======================================================
	availabilityUC := ucSession.NewGetAvailability(sessionRepo, cfg.SlotGranularityMin)
	bookUC := ucSession.NewBookSession(sessionRepo, gateway, idemStore, auditDispatcher)
	confirmUC := ucSession.NewConfirmSession(sessionRepo, auditDispatcher, cfg.MeetingBaseURL)
	rejectUC := ucSession.NewRejectSession(sessionRepo, gateway, idemStore, auditDispatcher)
	cancelUC := ucSession.NewCancelSession(sessionRepo, gateway, idemStore, auditDispatcher)
	noShowUC := ucSession.NewMarkNoShow(sessionRepo, gateway, idemStore, auditDispatcher)
	startUC := ucSession.NewStartSession(sessionRepo, auditDispatcher)
	completeUC := ucSession.NewCompleteSession(sessionRepo, auditDispatcher)
	rescheduleUC := ucSession.NewRescheduleSession(cancelUC, bookUC, auditDispatcher)
	sweepUC := ucSession.NewSweepNoShows(sessionRepo, gateway, idemStore, auditDispatcher)
	listUC := ucSession.NewListSessions(sessionRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	mentorHandler := handlers.NewMentorHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, availabilityUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	sessionHandler := handlers.NewSessionHandler(
		bookUC,
		confirmUC,
		rejectUC,
		cancelUC,
		noShowUC,
		startUC,
		completeUC,
		rescheduleUC,
		sweepUC,
		listUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/mentors/:id/availability", availabilityHandler.Slots)
		api.GET("/mentors/:id/quote", mentorHandler.Quote)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// MENTOR SELF-SERVICE
			// ------------------------------
			mentor := secured.Group("/me")
			mentor.Use(middleware.RequireRole(models.RoleMentor))
			{
				mentor.GET("/mentor-profile", mentorHandler.GetMe)
				mentor.PATCH("/mentor-profile", mentorHandler.UpdateMe)

				mentor.GET("/availability", availabilityHandler.Get)
				mentor.PUT("/availability", availabilityHandler.Put)
			}

			// ------------------------------
			// SESSIONS
			// ------------------------------
			secured.POST("/sessions", middleware.RequireRole(models.RoleMentee), sessionHandler.Book)
			secured.GET("/sessions", sessionHandler.List)

			secured.PATCH("/sessions/:id/confirm", sessionHandler.Confirm)
			secured.PATCH("/sessions/:id/reject", sessionHandler.Reject)
			secured.PATCH("/sessions/:id/cancel", sessionHandler.Cancel)
			secured.PATCH("/sessions/:id/start", sessionHandler.Start)
			secured.PATCH("/sessions/:id/complete", sessionHandler.Complete)
			secured.PATCH("/sessions/:id/no-show", sessionHandler.MarkNoShow)
			secured.POST("/sessions/:id/reschedule", sessionHandler.Reschedule)

			// invoked by the external scheduler
			secured.POST("/internal/sweep-no-shows", sessionHandler.SweepNoShows)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
