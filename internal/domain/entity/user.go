package entity

import "time"

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Username  string    `json:"username" firestore:"username"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`
	XP        int       `json:"xp" firestore:"xp"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Session is the authenticated viewer identity, resolved by the auth boundary
// and passed explicitly into everything that needs it.
type Session struct {
	UID      string `json:"uid"`
	Username string `json:"username,omitempty"`
}
