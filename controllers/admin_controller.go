package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/services"
)

type RecordService interface {
	Notifications(ctx context.Context, filter repositories.NotificationFilter) ([]models.Notification, error)
	AuditLogs(ctx context.Context, filter repositories.AuditLogFilter) ([]models.AuditLog, error)
	SendTestEmail(ctx context.Context, to string) error
}

type SeedService interface {
	Seed(ctx context.Context) (*services.SeedResult, error)
}

type AIService interface {
	AnalyzeImage(ctx context.Context, encoded string) (*models.ImageAnalysis, error)
	Transcribe(ctx context.Context, encoded string) (*models.TranscriptionResult, error)
}

type AuthService interface {
	Login(req models.LoginRequest) (*models.LoginResponse, error)
}

// AdminController groups the staff tooling endpoints: records, seeding,
// AI helpers and login.
type AdminController struct {
	records RecordService
	seed    SeedService
	ai      AIService
	auth    AuthService
}

func NewAdminController(records RecordService, seed SeedService, ai AIService, auth AuthService) *AdminController {
	return &AdminController{records: records, seed: seed, ai: ai, auth: auth}
}

// SeedResponse wraps a seeding run summary
type SeedResponse struct {
	Message string               `json:"message"`
	Data    *services.SeedResult `json:"data"`
}

// ListNotifications supports ?customerEmail=&item=
func (ac *AdminController) ListNotifications(c echo.Context) error {
	itemID, err := optionalID(c, "item")
	if err != nil {
		return err
	}
	notifications, err := ac.records.Notifications(c.Request().Context(), repositories.NotificationFilter{
		CustomerEmail: c.QueryParam("customerEmail"),
		ItemID:        itemID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// ListAuditLogs supports ?itemId=&action=
func (ac *AdminController) ListAuditLogs(c echo.Context) error {
	itemID, err := optionalID(c, "itemId")
	if err != nil {
		return err
	}
	logs, err := ac.records.AuditLogs(c.Request().Context(), repositories.AuditLogFilter{
		ItemID: itemID,
		Action: models.AuditAction(c.QueryParam("action")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// SendTestEmail sends a sample item-found email to ?to=
func (ac *AdminController) SendTestEmail(c echo.Context) error {
	to := c.QueryParam("to")
	if err := c.Validate(&struct {
		To string `query:"to" validate:"required,email"`
	}{To: to}); err != nil {
		return err
	}
	if err := ac.records.SendTestEmail(c.Request().Context(), to); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (ac *AdminController) Seed(c echo.Context) error {
	result, err := ac.seed.Seed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SeedResponse{Message: "Database seeded successfully", Data: result})
}

func (ac *AdminController) AnalyzeImage(c echo.Context) error {
	var req models.AnalyzeImageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	analysis, err := ac.ai.AnalyzeImage(c.Request().Context(), req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analysis)
}

func (ac *AdminController) Transcribe(c echo.Context) error {
	var req models.TranscribeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	result, err := ac.ai.Transcribe(c.Request().Context(), req.Audio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Login exchanges staff credentials for a bearer token
func (ac *AdminController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := ac.auth.Login(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
