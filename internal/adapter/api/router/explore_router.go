package router

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/handler"
)

func SetupExploreRouter(e *echo.Echo, exploreHandler *handler.ExploreHandler) {
	e.GET("/v1/explore/feed", exploreHandler.Feed)
	e.GET("/v1/explore/plates", exploreHandler.SearchPlates)
}
