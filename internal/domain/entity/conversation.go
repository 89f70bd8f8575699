package entity

import "time"

// Conversation links one buyer, one seller and one listed vehicle. At most one
// conversation is expected per (vehicle, buyer, seller) triple; that is
// enforced by lookup-before-insert, not by a store constraint, so a genuine
// double-first-contact race can leave a duplicate row. The first row found
// wins on subsequent lookups.
type Conversation struct {
	ID            string         `json:"id" firestore:"id"`
	VehicleID     string         `json:"vehicle_id" firestore:"vehicleId"`
	BuyerID       string         `json:"buyer_id" firestore:"buyerId"`
	SellerID      string         `json:"seller_id" firestore:"sellerId"`
	Participants  []string       `json:"participants" firestore:"participants"`
	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt *time.Time     `json:"last_message_at,omitempty" firestore:"lastMessageAt,omitempty"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// Matches reports whether the conversation belongs to the given triple.
func (c *Conversation) Matches(vehicleID, buyerID, sellerID string) bool {
	return c.VehicleID == vehicleID && c.BuyerID == buyerID && c.SellerID == sellerID
}

// HasParticipant reports whether the given user takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// OtherParticipant returns the counterpart of the given user, or "" when the
// user is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	switch userID {
	case c.BuyerID:
		return c.SellerID
	case c.SellerID:
		return c.BuyerID
	}
	return ""
}
