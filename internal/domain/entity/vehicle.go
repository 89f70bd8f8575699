package entity

import "time"

type VehicleImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Vehicle struct {
	ID          string         `json:"id" firestore:"id"`
	OwnerID     string         `json:"owner_id" firestore:"ownerId"`
	Make        string         `json:"make" firestore:"make"`
	Model       string         `json:"model" firestore:"model"`
	Year        int            `json:"year" firestore:"year"`
	Plate       string         `json:"plate,omitempty" firestore:"plate,omitempty"`
	Description string         `json:"description,omitempty" firestore:"description,omitempty"`
	ForSale     bool           `json:"for_sale" firestore:"forSale"`
	AskingPrice float64        `json:"asking_price,omitempty" firestore:"askingPrice,omitempty"`
	Images      []VehicleImage `json:"images" firestore:"images"`
	XP          int            `json:"xp" firestore:"xp"`
	CreatedAt   time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// VehicleSummary is the slim projection used by chat headers and feed cards.
type VehicleSummary struct {
	ID          string  `json:"id" firestore:"id"`
	OwnerID     string  `json:"owner_id" firestore:"ownerId"`
	Make        string  `json:"make" firestore:"make"`
	Model       string  `json:"model" firestore:"model"`
	AskingPrice float64 `json:"asking_price,omitempty" firestore:"askingPrice,omitempty"`
	Plate       string  `json:"plate,omitempty" firestore:"plate,omitempty"`
}

func (v *Vehicle) Summary() *VehicleSummary {
	return &VehicleSummary{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Make:        v.Make,
		Model:       v.Model,
		AskingPrice: v.AskingPrice,
		Plate:       v.Plate,
	}
}
