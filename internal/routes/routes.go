package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/admin"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/config"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/handlers"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/middleware"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/session"
)

// Deps are the singletons built in main.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	API      *backend.Client
	Sessions *session.Manager
	Bookings *booking.Service
	Admins   *admin.Registry

	// nil when no database is configured
	Audit     *audit.Dispatcher
	AuditLogs *audit.Logger

	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	limiter := middleware.NewRateLimiter(cfg.PublicRatePerMin).Middleware(d.Logger)
	auth := middleware.AuthMiddleware(d.Sessions, d.Logger)

	d.Sessions.OnClear(d.Admins.Drop)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(d.API, d.Bookings)
	bookingHandler := handlers.NewBookingHandler(d.Bookings)
	authHandler := handlers.NewAuthHandler(d.API, d.Sessions, cfg.SessionTTL, cfg.IsProduction(), d.Logger)
	reservationHandler := handlers.NewReservationHandler(d.API, d.Admins, cfg.Timezone)
	calendarHandler := handlers.NewCalendarHandler(d.API, d.Audit, cfg.Timezone)
	dashboardHandler := handlers.NewDashboardHandler(d.API)
	catalogHandler := handlers.NewCatalogHandler(d.API, d.Audit)
	staffHandler := handlers.NewStaffHandler(d.API, d.Audit)
	blockHandler := handlers.NewBlockHandler(d.API, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", publicHandler.ListServices)
			public.GET("/regions", publicHandler.ListRegions)
			public.GET("/regions/:id/communes", publicHandler.ListCommunes)
			public.GET("/confirm/:token", publicHandler.Confirm)

			public.POST("/availability", limiter, publicHandler.Availability)
			public.POST("/lookup", limiter, publicHandler.Lookup)
			public.POST("/reservations", limiter, publicHandler.CreateReservation)

			flows := public.Group("/bookings")
			{
				flows.POST("", limiter, bookingHandler.Start)
				flows.GET("/:id", bookingHandler.Get)
				flows.PUT("/:id/date", limiter, bookingHandler.ChangeDate)
				flows.POST("/:id/select", bookingHandler.Select)
				flows.POST("/:id/back", bookingHandler.Back)
				flows.PATCH("/:id/form", bookingHandler.UpdateForm)
				flows.POST("/:id/lookup", limiter, bookingHandler.Lookup)
				flows.POST("/:id/submit", limiter, bookingHandler.Submit)
			}
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", limiter, authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/me", auth, authHandler.Me)

		// ------------------------------
		// ADMIN
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(auth, middleware.RequireAdmin())
		{
			secured.GET("/dashboard", dashboardHandler.Get)
			secured.GET("/slots", dashboardHandler.Slots)

			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/today", reservationHandler.Today)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
			secured.POST("/reservations/:id/cancel", reservationHandler.Cancel)
			secured.POST("/reservations/:id/complete", reservationHandler.Complete)

			secured.GET("/calendar", calendarHandler.Get)
			secured.POST("/calendar/entries", calendarHandler.CreateEntry)
			secured.PUT("/calendar/entries/blocks/:id", calendarHandler.UpdateBlockEntry)

			secured.GET("/blocks", blockHandler.List)
			secured.POST("/blocks", blockHandler.Create)
			secured.PUT("/blocks/:id", blockHandler.Update)
			secured.DELETE("/blocks/:id", blockHandler.Delete)

			secured.GET("/professionals", staffHandler.ListProfessionals)
			secured.GET("/professionals/:id", staffHandler.GetProfessional)
			secured.POST("/professionals", staffHandler.CreateProfessional)
			secured.PUT("/professionals/:id", staffHandler.UpdateProfessional)
			secured.DELETE("/professionals/:id", staffHandler.DeleteProfessional)

			secured.GET("/schedules", staffHandler.ListSchedules)
			secured.POST("/schedules", staffHandler.CreateSchedule)
			secured.PUT("/schedules/:id", staffHandler.UpdateSchedule)
			secured.DELETE("/schedules/:id", staffHandler.DeleteSchedule)
			secured.GET("/schedules/:id/breaks", staffHandler.ListBreaks)
			secured.POST("/schedules/:id/breaks", staffHandler.CreateBreak)
			secured.DELETE("/breaks/:id", staffHandler.DeleteBreak)

			secured.GET("/services", catalogHandler.ListServices)
			secured.POST("/services", catalogHandler.CreateService)
			secured.PUT("/services/:id", catalogHandler.UpdateService)
			secured.DELETE("/services/:id", catalogHandler.DeleteService)

			secured.GET("/categories", catalogHandler.ListCategories)
			secured.POST("/categories", catalogHandler.CreateCategory)
			secured.PUT("/categories/:id", catalogHandler.UpdateCategory)
			secured.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			secured.GET("/assignments", catalogHandler.ListAssignments)
			secured.POST("/assignments", catalogHandler.CreateAssignment)
			secured.PUT("/assignments/:id", catalogHandler.UpdateAssignment)
			secured.DELETE("/assignments/:id", catalogHandler.DeleteAssignment)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
