package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
)

type ClaimService interface {
	Create(ctx context.Context, req models.CreateClaimRequest) (*models.ClaimView, error)
	List(ctx context.Context, customerEmail string) ([]models.ClaimView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.ClaimView, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateClaimRequest) (*models.ClaimView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReportService interface {
	Create(ctx context.Context, req models.CreateReportRequest) (*models.ReportView, error)
	List(ctx context.Context, filter repositories.ReportFilter) ([]models.ReportSummary, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.ReportView, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateReportRequest) (*models.ReportView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ClaimController manages staff claims and passenger lost-item reports
type ClaimController struct {
	claims  ClaimService
	reports ReportService
}

func NewClaimController(claims ClaimService, reports ReportService) *ClaimController {
	return &ClaimController{claims: claims, reports: reports}
}

func (cc *ClaimController) CreateClaim(c echo.Context) error {
	var req models.CreateClaimRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	claim, err := cc.claims.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, claim)
}

// ListClaims supports ?customerEmail=
func (cc *ClaimController) ListClaims(c echo.Context) error {
	claims, err := cc.claims.List(c.Request().Context(), c.QueryParam("customerEmail"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

func (cc *ClaimController) GetClaim(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	claim, err := cc.claims.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

func (cc *ClaimController) UpdateClaim(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateClaimRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	claim, err := cc.claims.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

func (cc *ClaimController) DeleteClaim(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := cc.claims.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Claim deleted successfully"})
}

// CreateReport is public so passengers can report a loss themselves
func (cc *ClaimController) CreateReport(c echo.Context) error {
	var req models.CreateReportRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	report, err := cc.reports.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// ListReports supports ?customerEmail=&status=
func (cc *ClaimController) ListReports(c echo.Context) error {
	filter := repositories.ReportFilter{
		CustomerEmail: c.QueryParam("customerEmail"),
		Status:        models.ReportStatus(c.QueryParam("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return badRequest("Invalid status")
	}
	reports, err := cc.reports.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

func (cc *ClaimController) GetReport(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	report, err := cc.reports.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (cc *ClaimController) UpdateReport(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateReportRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	report, err := cc.reports.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (cc *ClaimController) DeleteReport(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := cc.reports.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Lost item report deleted successfully"})
}
