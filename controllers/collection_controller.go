package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/lostfound_backend/models"
)

// CollectionService is the passenger-facing claim flow
type CollectionService interface {
	Lookup(ctx context.Context, token string) (*models.LostItemView, string, error)
	QRImage(ctx context.Context, token string) ([]byte, error)
	Verify(ctx context.Context, token, code string) (*models.LostItemView, error)
	Ship(ctx context.Context, token string, req models.ShippingRequest) (*models.LostItemView, error)
}

// CollectionController serves the public QR and shipping endpoints
type CollectionController struct {
	collection CollectionService
}

func NewCollectionController(collection CollectionService) *CollectionController {
	return &CollectionController{collection: collection}
}

// LookupResponse is returned when a passenger scans a QR code
type LookupResponse struct {
	Item     *models.LostItemView `json:"item"`
	ClaimURL string               `json:"claimUrl"`
}

// ItemActionResponse confirms a verify or ship action
type ItemActionResponse struct {
	Message string               `json:"message"`
	Item    *models.LostItemView `json:"item"`
}

// Lookup handles GET /api/qr/:token
func (cc *CollectionController) Lookup(c echo.Context) error {
	item, claimURL, err := cc.collection.Lookup(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LookupResponse{Item: item, ClaimURL: claimURL})
}

// QRImage streams the claim QR code as PNG
func (cc *CollectionController) QRImage(c echo.Context) error {
	png, err := cc.collection.QRImage(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return c.Blob(http.StatusOK, "image/png", png)
}

// Verify handles POST /api/qr/:token with the passenger's collection code
func (cc *CollectionController) Verify(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := cc.collection.Verify(c.Request().Context(), c.Param("token"), req.VerificationCode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ItemActionResponse{Message: "Item collected successfully", Item: item})
}

// Ship handles POST /api/shipping/:token
func (cc *CollectionController) Ship(c echo.Context) error {
	var req models.ShippingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := cc.collection.Ship(c.Request().Context(), c.Param("token"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ItemActionResponse{Message: "Shipping request processed successfully", Item: item})
}
