package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/salon-scheduler/internal/bootstrap"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, app *bootstrap.Container, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(app.Logger),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(app.Deps)
	bookingHandler := handlers.NewBookingHandler(app.Deps)

	salonHandler := handlers.NewSalonHandler(app.DB)
	clientHandler := handlers.NewClientHandler(app.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(app.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(app.DB)

	// ======================================================
	// 🔧 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := app.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(publicHandler.ResolveSalon)
		{
			publicAPI.GET("", publicHandler.Salon)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/services/:id/staff", publicHandler.ListStaffForService)
			publicAPI.GET("/staff/:staffId/slots", publicHandler.FreeSlots)

			publicAPI.POST("/bookings", publicHandler.CreateBooking)
			publicAPI.POST("/bookings/confirm/:token", publicHandler.ConfirmBooking)
			publicAPI.POST("/bookings/cancel/:token", publicHandler.CancelBooking)
		}

		// ------------------------------
		// 🔐 API PRIVADA (PAINEL)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/salon", salonHandler.GetMeSalon)
			secured.PATCH("/salon", salonHandler.UpdateMeSalon)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings", bookingHandler.ListByDate)
			secured.GET("/bookings/month", bookingHandler.ListByMonth)
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/staff/:staffId/slots", bookingHandler.FreeSlots)

			secured.PATCH("/bookings/:id/move", bookingHandler.Move)
			secured.PATCH("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/bookings/:id/start", bookingHandler.Start)
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/bookings/:id/no-show", bookingHandler.NoShow)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
