package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"consultation-booking/internal/handler/api"
	"consultation-booking/internal/handler/middleware"
	"consultation-booking/internal/infra/metrics"
	"consultation-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Handlers groups every API handler so the router takes one dependency.
type Handlers struct {
	Consultation *api.ConsultationHandler
	Availability *api.AvailabilityHandler
	Bookings     *api.BookingHandler
	AdminSlots   *api.AdminSlotHandler
	AdminBooking *api.AdminBookingHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, cfg, m, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		engine.Use(m.Middleware())
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/consultation", Handler: h.Consultation.Get},
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.GetDay},
			{Method: http.MethodGet, Path: "/availability/calendar", Handler: h.Availability.ListOpenDates},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
			{Method: http.MethodGet, Path: "/me", Handler: h.Bookings.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Bookings.Cancel},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPut, Path: "/consultation", Handler: h.Consultation.Update},

				{Method: http.MethodGet, Path: "/slots", Handler: h.AdminSlots.List},
				{Method: http.MethodPost, Path: "/slots", Handler: h.AdminSlots.Add},
				{Method: http.MethodPatch, Path: "/slots/:id", Handler: h.AdminSlots.SetActive},
				{Method: http.MethodDelete, Path: "/slots/:id", Handler: h.AdminSlots.Delete},

				{Method: http.MethodGet, Path: "/bookings", Handler: h.AdminBooking.List},
				{Method: http.MethodPost, Path: "/bookings/:id/confirm", Handler: h.AdminBooking.Confirm},
				{Method: http.MethodPost, Path: "/bookings/:id/reject", Handler: h.AdminBooking.Reject},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.AdminBooking.Cancel},
				{Method: http.MethodPost, Path: "/bookings/:id/complete", Handler: h.AdminBooking.Complete},
				{Method: http.MethodPost, Path: "/bookings/:id/payment-failed", Handler: h.AdminBooking.MarkPaymentFailed},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
