package models

import "time"

// LeagueStatus corresponds to the league_status ENUM in the database.
type LeagueStatus string

const (
	LeagueStatusScheduled LeagueStatus = "scheduled"
	LeagueStatusActive    LeagueStatus = "active"
	LeagueStatusCompleted LeagueStatus = "completed"
)

// League represents a round-robin league. The owner has elevated rights over
// every match in it.
type League struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Status    LeagueStatus `json:"status"`
	OwnerID   int          `json:"owner_id"`
	StartDate time.Time    `json:"start_date"`
	CreatedAt time.Time    `json:"created_at"`

	// Optional linked entities, populated by services.
	Owner   *User    `json:"owner,omitempty"`
	Matches []*Match `json:"matches,omitempty"`
}
