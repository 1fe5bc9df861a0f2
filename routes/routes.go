package routes

import (
	"net/http"

	"safecity/internal/config"
	"safecity/internal/handlers"
	"safecity/internal/middleware"
	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything route setup needs.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Report  *handlers.ReportHandler
	Contact *handlers.ContactHandler
	SOS     *handlers.SOSHandler
	Route   *handlers.RouteHandler
	WS      *handlers.WSHandler
}

func Setup(router *gin.Engine, h *Handlers, authService services.AuthService, authConfig *config.AuthConfig, limiter gin.HandlerFunc, log *logger.Logger) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": utils.AppName,
			"version": utils.AppVersion,
		})
	})

	api := router.Group("/api")

	SetupAuthRoutes(api, h.Auth, authService, authConfig)
	SetupReportRoutes(api, h.Report, authService, authConfig, limiter)
	SetupContactRoutes(api, h.Contact, authService, authConfig)
	SetupSOSRoutes(api, h.SOS, authService, authConfig, limiter)
	SetupRouteRoutes(api, h.Route, authService, authConfig)

	SetupModerationRoutes(router, h, authService, authConfig, log)
}

func SetupAuthRoutes(r *gin.RouterGroup, h *handlers.AuthHandler, authService services.AuthService, authConfig *config.AuthConfig) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.SignUp)
		auth.POST("/sign-in", h.SignIn)
		auth.POST("/sign-out", h.SignOut)
		auth.GET("/verify-role", h.VerifyRole)
	}

	me := r.Group("/auth")
	me.Use(middleware.SessionRequired(authService, authConfig))
	{
		me.GET("/me", h.Me)
	}
}

func SetupReportRoutes(r *gin.RouterGroup, h *handlers.ReportHandler, authService services.AuthService, authConfig *config.AuthConfig, limiter gin.HandlerFunc) {
	// public surface: submission, single-report details, and the map
	// listing at its historical path; submission is rate limited since
	// it takes no session
	r.POST("/reports", limiter, h.CreateReport)
	r.GET("/reports/:id/details", h.GetReport)
	r.GET("/location", h.ListMapReports)

	reports := r.Group("/reports")
	reports.Use(middleware.SessionRequired(authService, authConfig))
	{
		reports.GET("", h.ListReports)
	}

	moderation := r.Group("/reports")
	moderation.Use(
		middleware.SessionRequired(authService, authConfig),
		middleware.CapabilityRequired(models.CapModerateReports),
	)
	{
		moderation.PATCH("/:id", h.UpdateReportStatus)
		moderation.GET("/stats", h.GetReportStats)
	}
}

func SetupContactRoutes(r *gin.RouterGroup, h *handlers.ContactHandler, authService services.AuthService, authConfig *config.AuthConfig) {
	contacts := r.Group("/contacts")
	contacts.Use(middleware.SessionRequired(authService, authConfig))
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.DELETE("/:id", h.DeleteContact)
		contacts.GET("/relationships", h.GetRelationshipSuggestions)
	}
}

func SetupSOSRoutes(r *gin.RouterGroup, h *handlers.SOSHandler, authService services.AuthService, authConfig *config.AuthConfig, limiter gin.HandlerFunc) {
	// the trigger is deliberately open: someone in danger may not have
	// a signed-in session. Rate limited per client so the open endpoint
	// cannot be used to flood contacts with SMS.
	r.POST("/sos", limiter, h.TriggerSOS)

	alerts := r.Group("/sos")
	alerts.Use(
		middleware.SessionRequired(authService, authConfig),
		middleware.CapabilityRequired(models.CapViewAlerts),
	)
	{
		alerts.GET("/alerts", h.ListAlerts)
	}
}

func SetupRouteRoutes(r *gin.RouterGroup, h *handlers.RouteHandler, authService services.AuthService, authConfig *config.AuthConfig) {
	routes := r.Group("/routes")
	routes.Use(middleware.SessionRequired(authService, authConfig))
	{
		routes.POST("/safe", h.SafeRoute)
		routes.GET("/geocode", h.Geocode)
		routes.GET("/reverse-geocode", h.ReverseGeocode)
	}
}

// SetupModerationRoutes wires the browser-facing moderation area. Pages
// go through the access gate; the live feed authenticates the socket
// directly.
func SetupModerationRoutes(router *gin.Engine, h *Handlers, authService services.AuthService, authConfig *config.AuthConfig, log *logger.Logger) {
	admin := router.Group("/admin")
	admin.Use(middleware.AccessGate(authConfig, models.CapModerateReports, log))
	{
		admin.GET("/dashboard", h.Report.GetReportStats)
		admin.GET("/alerts", h.SOS.ListAlerts)
	}

	ws := router.Group("/ws")
	ws.Use(middleware.SessionRequired(authService, authConfig))
	{
		ws.GET("/moderation", h.WS.ModerationFeed)
	}
}
