package models

import (
	"time"
)

// User represents the users table in the database.
// A row is created on first sign-in and updated on subsequent sign-ins.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Provider    string     `json:"provider,omitempty"`    // 'apple', 'google'
	ProviderID  string     `json:"provider_id,omitempty"` // subject id from the OAuth provider
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// DefaultUserName is the placeholder assigned on first sign-in when the
// provider reports no display name. A name still equal to this placeholder
// may be overwritten on a later sign-in; a user-chosen name is preserved.
const DefaultUserName = "Poker Player"
