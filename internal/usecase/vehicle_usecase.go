package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
	"drivn/internal/infrastructure/storage"
	"drivn/pkg/errors"
	"drivn/pkg/logger"
)

type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	storage     *storage.CloudStorageClient
}

func NewVehicleUseCase(vehicleRepo repository.VehicleRepository, storageClient *storage.CloudStorageClient) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		storage:     storageClient,
	}
}

type CreateVehicleInput struct {
	Make        string
	Model       string
	Year        int
	Plate       string
	Description string
	ForSale     bool
	AskingPrice float64
}

func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, viewer *entity.Session, input CreateVehicleInput) (*entity.Vehicle, error) {
	if viewer == nil || viewer.UID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	vehicle := &entity.Vehicle{
		OwnerID:     viewer.UID,
		Make:        input.Make,
		Model:       input.Model,
		Year:        input.Year,
		Plate:       input.Plate,
		Description: input.Description,
		ForSale:     input.ForSale,
		AskingPrice: input.AskingPrice,
		Images:      []entity.VehicleImage{},
	}
	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	return uc.vehicleRepo.GetByID(ctx, id)
}

type UpdateVehicleInput struct {
	Description *string
	ForSale     *bool
	AskingPrice *float64
}

func (uc *VehicleUseCase) UpdateVehicle(ctx context.Context, viewer *entity.Session, id string, input UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer == nil || vehicle.OwnerID != viewer.UID {
		return nil, errors.Forbidden("You can only edit your own vehicles", nil)
	}

	if input.Description != nil {
		vehicle.Description = *input.Description
	}
	if input.ForSale != nil {
		vehicle.ForSale = *input.ForSale
	}
	if input.AskingPrice != nil {
		vehicle.AskingPrice = *input.AskingPrice
	}

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (uc *VehicleUseCase) ListGarage(ctx context.Context, ownerID string) ([]*entity.Vehicle, error) {
	return uc.vehicleRepo.ListByOwner(ctx, ownerID)
}

func (uc *VehicleUseCase) ListForSale(ctx context.Context, limit, offset int) ([]*entity.Vehicle, int64, error) {
	return uc.vehicleRepo.ListForSale(ctx, limit, offset)
}

// UploadPhoto stores a vehicle photo in object storage and appends it to the
// vehicle's image list.
func (uc *VehicleUseCase) UploadPhoto(ctx context.Context, viewer *entity.Session, vehicleID string, file io.Reader, contentType string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if viewer == nil || vehicle.OwnerID != viewer.UID {
		return nil, errors.Forbidden("You can only upload photos for your own vehicles", nil)
	}
	if uc.storage == nil {
		return nil, errors.Internal("Object storage is not configured", nil)
	}

	url, err := uc.storage.UploadImage(ctx, file, contentType, "vehicles/"+vehicleID)
	if err != nil {
		logger.Error("UploadPhoto: upload failed for vehicle %s: %v", vehicleID, err)
		return nil, errors.Internal("Failed to upload photo", err)
	}

	vehicle.Images = append(vehicle.Images, entity.VehicleImage{
		ID:           uuid.New().String(),
		URL:          url,
		DisplayOrder: len(vehicle.Images),
	})
	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}
