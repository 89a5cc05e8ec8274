package models

import "time"

// Membership roles.
const (
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleModerator = "moderator"
)

type LeagueMember struct {
	ID       int64     `json:"id"`        // Primary key
	LeagueID int64     `json:"league_id"` // FK to leagues(id)
	UserID   int64     `json:"user_id"`   // FK to users(id)
	Role     string    `json:"role"`      // 'admin', 'member', 'moderator'
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}
