package handler

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/usecase"
	"drivn/pkg/response"
)

type ProgressionHandler struct {
	progressionUseCase *usecase.ProgressionUseCase
}

func NewProgressionHandler(progressionUseCase *usecase.ProgressionUseCase) *ProgressionHandler {
	return &ProgressionHandler{
		progressionUseCase: progressionUseCase,
	}
}

func (h *ProgressionHandler) UserProgress(c echo.Context) error {
	progress, err := h.progressionUseCase.UserProgress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}
