package domain

import "time"

// User is identified by the device ID supplied at sign-in; there is no
// password credential.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	DeviceID  string    `json:"-" gorm:"uniqueIndex;not null"` // Don't expose device ID in JSON
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
