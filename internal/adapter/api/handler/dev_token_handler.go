package handler

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/infrastructure/firebase"
	"drivn/pkg/response"
)

// DevTokenHandler mints custom tokens for local testing. Only wired in
// non-production environments.
type DevTokenHandler struct {
	authClient *firebase.AuthClient
}

func NewDevTokenHandler(authClient *firebase.AuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateCustomToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"token": token})
}
