package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
	"drivn/pkg/errors"
)

type firestoreVehicleRepository struct {
	client *firestore.Client
}

func NewFirestoreVehicleRepository(client *firestore.Client) repository.VehicleRepository {
	return &firestoreVehicleRepository{
		client: client,
	}
}

func (r *firestoreVehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	if vehicle.ID == "" {
		doc := r.client.Collection("vehicles").NewDoc()
		vehicle.ID = doc.ID
	}

	now := time.Now()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = now
	}
	vehicle.UpdatedAt = now

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to create vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	doc, err := r.client.Collection("vehicles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vehicle", err)
		}
		return nil, errors.Internal("Failed to get vehicle", err)
	}

	var vehicle entity.Vehicle
	if err := doc.DataTo(&vehicle); err != nil {
		return nil, errors.Internal("Failed to parse vehicle data", err)
	}

	return &vehicle, nil
}

func (r *firestoreVehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	vehicle.UpdatedAt = time.Now()

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to update vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Vehicle, error) {
	iter := r.client.Collection("vehicles").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var vehicles []*entity.Vehicle
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating vehicles for owner %s: %v", ownerID, err)
			return nil, errors.Internal("Failed to iterate vehicles", err)
		}

		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			log.Printf("Error parsing vehicle data for owner %s: %v", ownerID, err)
			continue
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

func (r *firestoreVehicleRepository) ListForSale(ctx context.Context, limit, offset int) ([]*entity.Vehicle, int64, error) {
	query := r.client.Collection("vehicles").
		Where("forSale", "==", true).
		OrderBy("updatedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch vehicles for sale", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var vehicles []*entity.Vehicle
	for i := start; i < end; i++ {
		var vehicle entity.Vehicle
		if err := allDocs[i].DataTo(&vehicle); err != nil {
			log.Printf("Error parsing vehicle data: %v", err)
			continue
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}
