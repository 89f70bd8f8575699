package router

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/handler"
)

func SetupProgressionRouter(e *echo.Echo, progressionHandler *handler.ProgressionHandler) {
	e.GET("/v1/users/:id/progress", progressionHandler.UserProgress)
}
