package repository

import (
	"context"

	"drivn/internal/domain/entity"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Vehicle, error)
	ListForSale(ctx context.Context, limit, offset int) ([]*entity.Vehicle, int64, error)
}
