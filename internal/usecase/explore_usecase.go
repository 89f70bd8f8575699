package usecase

import (
	"context"
	"sort"
	"strings"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
	"drivn/internal/infrastructure/cache"
)

const (
	// One ad card is interleaved after every adSlotEvery vehicle cards.
	adSlotEvery = 5

	// Plates within this edit distance of the query still match.
	defaultMaxPlateDistance = 2

	plateCorpusCacheKey = "explore:plates"
)

type ExploreUseCase struct {
	vehicleRepo repository.VehicleRepository
	cache       *cache.Cache
	ads         []entity.AdCard
}

func NewExploreUseCase(vehicleRepo repository.VehicleRepository, c *cache.Cache, ads []entity.AdCard) *ExploreUseCase {
	return &ExploreUseCase{
		vehicleRepo: vehicleRepo,
		cache:       c,
		ads:         ads,
	}
}

// Feed assembles the explore feed: for-sale vehicles newest first with an ad
// card interleaved after every adSlotEvery vehicles, cycling through the
// configured ads.
func (uc *ExploreUseCase) Feed(ctx context.Context, limit, offset int) ([]entity.FeedItem, int64, error) {
	vehicles, total, err := uc.vehicleRepo.ListForSale(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]entity.FeedItem, 0, len(vehicles)+len(vehicles)/adSlotEvery)
	adIndex := 0
	for i, vehicle := range vehicles {
		items = append(items, entity.FeedItem{
			Type:    entity.FeedItemVehicle,
			Vehicle: vehicle.Summary(),
		})
		if (i+1)%adSlotEvery == 0 && len(uc.ads) > 0 {
			ad := uc.ads[adIndex%len(uc.ads)]
			adIndex++
			items = append(items, entity.FeedItem{
				Type: entity.FeedItemAd,
				Ad:   &ad,
			})
		}
	}

	return items, total, nil
}

// SearchByPlate fuzzy-matches the query against the plates of for-sale
// vehicles using Levenshtein distance, ranked best match first. Exact
// substring hits count as distance zero.
func (uc *ExploreUseCase) SearchByPlate(ctx context.Context, query string) ([]entity.PlateMatch, error) {
	needle := normalizePlate(query)
	if needle == "" {
		return nil, nil
	}

	corpus, err := uc.plateCorpus(ctx)
	if err != nil {
		return nil, err
	}

	var matches []entity.PlateMatch
	for _, summary := range corpus {
		plate := normalizePlate(summary.Plate)
		if plate == "" {
			continue
		}

		distance := levenshtein(needle, plate)
		if strings.Contains(plate, needle) {
			distance = 0
		}
		if distance > defaultMaxPlateDistance {
			continue
		}

		matches = append(matches, entity.PlateMatch{
			Vehicle:  summary,
			Distance: distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Vehicle.Plate < matches[j].Vehicle.Plate
	})

	return matches, nil
}

func (uc *ExploreUseCase) plateCorpus(ctx context.Context) ([]*entity.VehicleSummary, error) {
	if summaries, ok := uc.cache.GetVehicleSummaries(ctx, plateCorpusCacheKey); ok {
		return summaries, nil
	}

	vehicles, _, err := uc.vehicleRepo.ListForSale(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.VehicleSummary, 0, len(vehicles))
	for _, vehicle := range vehicles {
		summaries = append(summaries, vehicle.Summary())
	}
	uc.cache.SetVehicleSummaries(ctx, plateCorpusCacheKey, summaries)

	return summaries, nil
}

func normalizePlate(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
