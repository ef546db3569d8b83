package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/lostfound_backend/services"
)

const staffContextKey = "staff"

// TokenParser validates staff bearer tokens
type TokenParser interface {
	Enabled() bool
	ParseToken(raw string) (*services.StaffClaims, error)
}

// RequireStaff rejects requests without a valid staff token. Browsers cannot
// set headers on WebSocket upgrades, so ?token= is accepted as a fallback.
// When staff auth is not configured every request passes.
func RequireStaff(auth TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.Enabled() {
				return next(c)
			}

			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return &services.Error{Kind: services.ErrUnauthorized, Message: "Missing authorization token"}
			}

			claims, err := auth.ParseToken(raw)
			if err != nil {
				return &services.Error{Kind: services.ErrUnauthorized, Message: "Invalid or expired token"}
			}
			c.Set(staffContextKey, claims)
			return next(c)
		}
	}
}

// StaffFromContext returns the claims set by RequireStaff, if any
func StaffFromContext(c echo.Context) (*services.StaffClaims, bool) {
	claims, ok := c.Get(staffContextKey).(*services.StaffClaims)
	return claims, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
