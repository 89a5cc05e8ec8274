package models

import "time"

type League struct {
	ID          int64     `json:"id"`          // Primary key
	Name        string    `json:"name"`        // Display name
	ImageURL    string    `json:"image_url,omitempty"`
	InviteCode  string    `json:"invite_code"` // Unique 5-character join code
	AdminUserID int64     `json:"admin_user_id"`
	IsActive    bool      `json:"is_active"` // Soft delete flag, leagues are never hard-deleted
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeagueWithMembers is a league row enriched with its active member count,
// used by the user-leagues listing.
type LeagueWithMembers struct {
	League
	MemberCount int `json:"member_count"`
}
