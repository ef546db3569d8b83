package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/lostfound_backend/controllers"
	"github.com/HSouheill/lostfound_backend/middleware"
	"github.com/HSouheill/lostfound_backend/websocket"
)

// Handlers bundles everything the router needs
type Handlers struct {
	LostItems  *controllers.LostItemController
	Collection *controllers.CollectionController
	Flights    *controllers.FlightController
	Claims     *controllers.ClaimController
	Admin      *controllers.AdminController
	Hub        *websocket.Hub
	Auth       middleware.TokenParser
}

// SetupRoutes registers the public passenger routes and the staff API
func SetupRoutes(e *echo.Echo, h Handlers) {
	RegisterPublicRoutes(e, h)
	RegisterStaffRoutes(e, h)
}

// RegisterPublicRoutes are reachable by passengers without a staff token
func RegisterPublicRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")

	api.GET("/qr/:token", h.Collection.Lookup)
	api.POST("/qr/:token", h.Collection.Verify)
	api.GET("/qr/:token/image", h.Collection.QRImage)
	api.POST("/shipping/:token", h.Collection.Ship)

	api.POST("/lost-reports", h.Claims.CreateReport)
	api.POST("/auth/login", h.Admin.Login)
}

// RegisterStaffRoutes are guarded by the staff JWT when auth is configured
func RegisterStaffRoutes(e *echo.Echo, h Handlers) {
	staff := e.Group("/api", middleware.RequireStaff(h.Auth))

	staff.POST("/lost-items", h.LostItems.CreateLostItem)
	staff.GET("/lost-items", h.LostItems.ListLostItems)
	staff.GET("/lost-items/:id", h.LostItems.GetLostItem)
	staff.PATCH("/lost-items/:id", h.LostItems.UpdateLostItem)
	staff.DELETE("/lost-items/:id", h.LostItems.DeleteLostItem)

	staff.GET("/flights", h.Flights.ListFlights)
	staff.POST("/flights", h.Flights.CreateFlight)
	staff.GET("/flights/:id", h.Flights.GetFlight)
	staff.PATCH("/flights/:id", h.Flights.UpdateFlight)
	staff.DELETE("/flights/:id", h.Flights.DeleteFlight)
	staff.GET("/flights/:id/lost-items", h.Flights.GetFlightItems)

	staff.GET("/seats", h.Flights.ListSeats)
	staff.POST("/seats", h.Flights.CreateSeat)
	staff.GET("/seats/:id", h.Flights.GetSeat)
	staff.PATCH("/seats/:id", h.Flights.UpdateSeat)
	staff.DELETE("/seats/:id", h.Flights.DeleteSeat)

	staff.POST("/claims", h.Claims.CreateClaim)
	staff.GET("/claims", h.Claims.ListClaims)
	staff.GET("/claims/:id", h.Claims.GetClaim)
	staff.PATCH("/claims/:id", h.Claims.UpdateClaim)
	staff.DELETE("/claims/:id", h.Claims.DeleteClaim)

	staff.GET("/lost-reports", h.Claims.ListReports)
	staff.GET("/lost-reports/:id", h.Claims.GetReport)
	staff.PATCH("/lost-reports/:id", h.Claims.UpdateReport)
	staff.DELETE("/lost-reports/:id", h.Claims.DeleteReport)

	staff.GET("/notifications", h.Admin.ListNotifications)
	staff.GET("/audit-logs", h.Admin.ListAuditLogs)
	staff.GET("/test-email", h.Admin.SendTestEmail)
	staff.POST("/seed", h.Admin.Seed)

	staff.POST("/ai/analyze-image", h.Admin.AnalyzeImage)
	staff.POST("/ai/transcribe", h.Admin.Transcribe)

	staff.GET("/ws", func(c echo.Context) error {
		username := ""
		if claims, ok := middleware.StaffFromContext(c); ok {
			username = claims.Username
		}
		return websocket.HandleWebSocket(c, h.Hub, username)
	})
}
