package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/HSouheill/lostfound_backend/services"
)

// MessageResponse is the body of endpoints that only confirm an action
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationDetail describes one failed validation rule
type ValidationDetail struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func badRequest(message string) error {
	return &services.Error{Kind: services.ErrInvalidInput, Message: message}
}

// bindJSON decodes the body strictly into dst and validates it. An empty
// body decodes to the zero value so partial updates may send nothing.
func bindJSON(c echo.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("Invalid request body")
	}
	return c.Validate(dst)
}

// bindQuery binds and validates query parameters
func bindQuery(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
		return badRequest("Invalid query parameters")
	}
	return c.Validate(dst)
}

func paramID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, badRequest("Invalid " + name)
	}
	return id, nil
}

// optionalID parses an optional ObjectID query parameter
func optionalID(c echo.Context, name string) (*primitive.ObjectID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, badRequest("Invalid " + name)
	}
	return &id, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrFlightHasItems),
		errors.Is(err, services.ErrSeatHasItems),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNoMatches):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HTTPErrorHandler renders every error as {"error": message} plus any extra
// fields the service attached. Unexpected errors are logged and hidden.
func HTTPErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := map[string]interface{}{"error": "Internal server error"}

		var svcErr *services.Error
		var validationErrs validator.ValidationErrors
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &validationErrs):
			status = http.StatusBadRequest
			details := make([]ValidationDetail, 0, len(validationErrs))
			for _, fe := range validationErrs {
				details = append(details, ValidationDetail{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
			}
			body["error"] = "Validation failed"
			body["details"] = details
		case errors.As(err, &svcErr):
			status = statusFor(svcErr)
			body["error"] = svcErr.Message
			for k, v := range svcErr.Fields {
				body[k] = v
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				body["error"] = msg
			} else {
				body["error"] = http.StatusText(status)
			}
		default:
			status = statusFor(err)
			if status != http.StatusInternalServerError {
				body["error"] = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("Failed to write error response", "error", err)
		}
	}
}
