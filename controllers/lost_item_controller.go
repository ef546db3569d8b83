package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/utils"
)

// ItemService is the lost item behaviour the staff endpoints need
type ItemService interface {
	Create(ctx context.Context, req models.CreateLostItemRequest) (*models.LostItemView, error)
	List(ctx context.Context, filter models.LostItemFilter) ([]models.LostItemView, error)
	Get(ctx context.Context, idOrToken string) (*models.LostItemView, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateLostItemRequest) (*models.LostItemView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type LostItemController struct {
	items          ItemService
	maxUploadBytes int64
}

func NewLostItemController(items ItemService, maxUploadBytes int64) *LostItemController {
	if maxUploadBytes <= 0 || maxUploadBytes > utils.MaxImageSize {
		maxUploadBytes = utils.MaxImageSize
	}
	return &LostItemController{items: items, maxUploadBytes: maxUploadBytes}
}

// LegacyItemResponse is the body of the id-or-token lookup
type LegacyItemResponse struct {
	Item   *models.LostItemView `json:"item"`
	Status models.ItemStatus    `json:"status"`
}

// CreateLostItem records a found item from the multipart submission form
func (lc *LostItemController) CreateLostItem(c echo.Context) error {
	var req models.CreateLostItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, err := c.FormFile("itemImage")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return badRequest("Invalid image upload")
	default:
		if file.Size > lc.maxUploadBytes {
			return badRequest("Image is too large")
		}
		if err := utils.ValidateImageUpload(file.Filename, file.Size); err != nil {
			return badRequest("Only jpg, jpeg, png and gif images are allowed")
		}
		src, err := file.Open()
		if err != nil {
			return badRequest("Invalid image upload")
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, lc.maxUploadBytes+1))
		if err != nil {
			return badRequest("Invalid image upload")
		}
		req.Image = data
		req.ImageContentType = file.Header.Get("Content-Type")
	}

	view, err := lc.items.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// ListLostItems supports ?status=&flightNumber=&search=
func (lc *LostItemController) ListLostItems(c echo.Context) error {
	var filter models.LostItemFilter
	if err := bindQuery(c, &filter); err != nil {
		return err
	}
	items, err := lc.items.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetLostItem accepts either an item id or a claim token
func (lc *LostItemController) GetLostItem(c echo.Context) error {
	view, err := lc.items.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LegacyItemResponse{Item: view, Status: view.Status})
}

func (lc *LostItemController) UpdateLostItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateLostItemRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	view, err := lc.items.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (lc *LostItemController) DeleteLostItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := lc.items.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Lost item deleted successfully"})
}
