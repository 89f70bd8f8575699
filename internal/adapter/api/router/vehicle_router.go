package router

import (
	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/handler"
	"drivn/internal/adapter/api/middleware"
)

func SetupVehicleRouter(e *echo.Echo, vehicleHandler *handler.VehicleHandler, authMiddleware *middleware.AuthMiddleware) {
	// Public listing surface
	e.GET("/v1/vehicles", vehicleHandler.ListForSale)
	e.GET("/v1/vehicles/:id", vehicleHandler.GetVehicle)

	vehicles := e.Group("/v1/vehicles")
	vehicles.Use(authMiddleware.Authenticate)

	vehicles.POST("", vehicleHandler.CreateVehicle)
	vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
	vehicles.POST("/:id/photos", vehicleHandler.UploadPhoto)

	garage := e.Group("/v1/garage")
	garage.Use(authMiddleware.Authenticate)
	garage.GET("", vehicleHandler.ListGarage)
}
