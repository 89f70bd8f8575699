package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"drivn/internal/domain/entity"
	"drivn/internal/infrastructure/firebase"
)

type AuthMiddleware struct {
	authClient *firebase.AuthClient
}

func NewAuthMiddleware(authClient *firebase.AuthClient) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		session, err := m.authClient.SessionFromToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", session.UID)
		c.Set("session", session)

		return next(c)
	}
}

// SessionFromContext pulls the viewer session the Authenticate middleware
// stored on the request.
func SessionFromContext(c echo.Context) *entity.Session {
	if session, ok := c.Get("session").(*entity.Session); ok {
		return session
	}
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		return &entity.Session{UID: uid}
	}
	return nil
}
