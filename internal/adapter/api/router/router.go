package router

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/handler"
	"drivn/internal/adapter/api/middleware"
)

type Handlers struct {
	Chat        *handler.ChatHandler
	Vehicle     *handler.VehicleHandler
	Explore     *handler.ExploreHandler
	Progression *handler.ProgressionHandler
	WebSocket   *handler.WebSocketHandler
	Health      *handler.HealthHandler
	DevToken    *handler.DevTokenHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, environment string) {
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupVehicleRouter(e, h.Vehicle, authMiddleware)
	SetupExploreRouter(e, h.Explore)
	SetupProgressionRouter(e, h.Progression)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
	SetupDevRouter(e, h.DevToken, environment)
}
