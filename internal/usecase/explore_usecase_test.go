package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivn/internal/domain/entity"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"ABC", "ABC", 0},
		{"ABC", "", 3},
		{"", "ABC", 3},
		{"ABC123", "ABC124", 1},
		{"ABC123", "AB123", 1},
		{"ABC123", "XYZ789", 6},
		{"KITTEN", "SITTING", 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshtein(tc.a, tc.b), "levenshtein(%q, %q)", tc.a, tc.b)
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC123", normalizePlate("abc-123"))
	assert.Equal(t, "B1234XY", normalizePlate(" b 1234 xy "))
	assert.Equal(t, "", normalizePlate("---"))
}

func TestFeedInterleavesAds(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	for i := 0; i < 7; i++ {
		require.NoError(t, vehicleRepo.Create(context.Background(), &entity.Vehicle{
			ID:      fmt.Sprintf("veh-%d", i),
			OwnerID: "owner",
			ForSale: true,
		}))
	}
	ads := []entity.AdCard{
		{ID: "ad-1", Title: "First"},
		{ID: "ad-2", Title: "Second"},
	}
	uc := NewExploreUseCase(vehicleRepo, nil, ads)

	items, total, err := uc.Feed(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	// 7 vehicles, one ad slot after the fifth card.
	require.Len(t, items, 8)
	vehicleCount := 0
	for i, item := range items {
		if i == 5 {
			assert.Equal(t, entity.FeedItemAd, item.Type)
			require.NotNil(t, item.Ad)
			assert.Equal(t, "ad-1", item.Ad.ID)
			continue
		}
		assert.Equal(t, entity.FeedItemVehicle, item.Type)
		vehicleCount++
	}
	assert.Equal(t, 7, vehicleCount)
}

func TestFeedCyclesAds(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	for i := 0; i < 15; i++ {
		require.NoError(t, vehicleRepo.Create(context.Background(), &entity.Vehicle{
			ID:      fmt.Sprintf("veh-%02d", i),
			OwnerID: "owner",
			ForSale: true,
		}))
	}
	ads := []entity.AdCard{
		{ID: "ad-1"},
		{ID: "ad-2"},
	}
	uc := NewExploreUseCase(vehicleRepo, nil, ads)

	items, _, err := uc.Feed(context.Background(), 20, 0)
	require.NoError(t, err)

	var adIDs []string
	for _, item := range items {
		if item.Type == entity.FeedItemAd {
			adIDs = append(adIDs, item.Ad.ID)
		}
	}
	assert.Equal(t, []string{"ad-1", "ad-2", "ad-1"}, adIDs, "ad inventory cycles when exhausted")
}

func TestFeedWithoutAds(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	for i := 0; i < 6; i++ {
		require.NoError(t, vehicleRepo.Create(context.Background(), &entity.Vehicle{
			ID:      fmt.Sprintf("veh-%d", i),
			OwnerID: "owner",
			ForSale: true,
		}))
	}
	uc := NewExploreUseCase(vehicleRepo, nil, nil)

	items, _, err := uc.Feed(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, items, 6)
	for _, item := range items {
		assert.Equal(t, entity.FeedItemVehicle, item.Type)
	}
}

func TestSearchByPlate(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo(
		&entity.Vehicle{ID: "v-1", OwnerID: "a", Plate: "B 1234 XY", ForSale: true},
		&entity.Vehicle{ID: "v-2", OwnerID: "b", Plate: "B 1235 XY", ForSale: true},
		&entity.Vehicle{ID: "v-3", OwnerID: "c", Plate: "D 9999 ZZ", ForSale: true},
		&entity.Vehicle{ID: "v-4", OwnerID: "d", ForSale: true}, // no plate
	)
	uc := NewExploreUseCase(vehicleRepo, nil, nil)

	matches, err := uc.SearchByPlate(context.Background(), "b1234xy")
	require.NoError(t, err)
	require.Len(t, matches, 2, "far-off plates fall outside the distance cutoff")
	assert.Equal(t, 0, matches[0].Distance)
	assert.Equal(t, "B 1234 XY", matches[0].Vehicle.Plate)
	assert.Equal(t, 1, matches[1].Distance)
	assert.Equal(t, "B 1235 XY", matches[1].Vehicle.Plate)
}

func TestSearchByPlateSubstring(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo(
		&entity.Vehicle{ID: "v-1", OwnerID: "a", Plate: "B 1234 XY", ForSale: true},
	)
	uc := NewExploreUseCase(vehicleRepo, nil, nil)

	matches, err := uc.SearchByPlate(context.Background(), "1234")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Distance, "a substring hit ranks as an exact match")
}

func TestSearchByPlateEmptyQuery(t *testing.T) {
	uc := NewExploreUseCase(newFakeVehicleRepo(), nil, nil)

	matches, err := uc.SearchByPlate(context.Background(), "  --  ")
	assert.NoError(t, err)
	assert.Nil(t, matches)
}
