package entity

const (
	FeedItemVehicle = "vehicle"
	FeedItemAd      = "ad"
)

type AdCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	LinkURL  string `json:"link_url,omitempty"`
}

// FeedItem is one card in the explore feed: either a vehicle or an
// interleaved ad slot.
type FeedItem struct {
	Type    string          `json:"type"`
	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
	Ad      *AdCard         `json:"ad,omitempty"`
}

// PlateMatch is a fuzzy license-plate search hit, ranked by edit distance.
type PlateMatch struct {
	Vehicle  *VehicleSummary `json:"vehicle"`
	Distance int             `json:"distance"`
}
