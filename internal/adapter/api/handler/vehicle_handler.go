package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/middleware"
	"drivn/internal/usecase"
	"drivn/pkg/errors"
	"drivn/pkg/response"
)

type VehicleHandler struct {
	vehicleUseCase *usecase.VehicleUseCase
}

func NewVehicleHandler(vehicleUseCase *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{
		vehicleUseCase: vehicleUseCase,
	}
}

type createVehicleRequest struct {
	Make        string  `json:"make" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"required,min=1900"`
	Plate       string  `json:"plate"`
	Description string  `json:"description"`
	ForSale     bool    `json:"for_sale"`
	AskingPrice float64 `json:"asking_price" validate:"min=0"`
}

type updateVehicleRequest struct {
	Description *string  `json:"description"`
	ForSale     *bool    `json:"for_sale"`
	AskingPrice *float64 `json:"asking_price"`
}

func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)

	vehicle, err := h.vehicleUseCase.CreateVehicle(c.Request().Context(), session, usecase.CreateVehicleInput{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Plate:       req.Plate,
		Description: req.Description,
		ForSale:     req.ForSale,
		AskingPrice: req.AskingPrice,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, vehicle)
}

func (h *VehicleHandler) GetVehicle(c echo.Context) error {
	vehicle, err := h.vehicleUseCase.GetVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)

	vehicle, err := h.vehicleUseCase.UpdateVehicle(c.Request().Context(), session, c.Param("id"), usecase.UpdateVehicleInput{
		Description: req.Description,
		ForSale:     req.ForSale,
		AskingPrice: req.AskingPrice,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func (h *VehicleHandler) ListGarage(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	vehicles, err := h.vehicleUseCase.ListGarage(c.Request().Context(), session.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicles)
}

func (h *VehicleHandler) ListForSale(c echo.Context) error {
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

	vehicles, total, err := h.vehicleUseCase.ListForSale(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, vehicles, total, limit, offset)
}

func (h *VehicleHandler) UploadPhoto(c echo.Context) error {
	session := middleware.SessionFromContext(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, errors.BadRequest("Photo file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read photo", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	vehicle, err := h.vehicleUseCase.UploadPhoto(c.Request().Context(), session, c.Param("id"), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, vehicle)
}
