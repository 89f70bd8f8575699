package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"drivn/internal/usecase"
	"drivn/pkg/response"
)

type ExploreHandler struct {
	exploreUseCase *usecase.ExploreUseCase
}

func NewExploreHandler(exploreUseCase *usecase.ExploreUseCase) *ExploreHandler {
	return &ExploreHandler{
		exploreUseCase: exploreUseCase,
	}
}

func (h *ExploreHandler) Feed(c echo.Context) error {
	limit := 20
	offset := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	items, total, err := h.exploreUseCase.Feed(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, items, total, limit, offset)
}

func (h *ExploreHandler) SearchPlates(c echo.Context) error {
	matches, err := h.exploreUseCase.SearchByPlate(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matches)
}
