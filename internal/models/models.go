package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Player aggregates a display name's results across sessions.
type Player struct {
	ID                 int          `db:"id" json:"id"`
	DisplayName        string       `db:"display_name" json:"display_name"`
	GamesPlayed        int          `db:"games_played" json:"games_played"`
	BestScore          int          `db:"best_score" json:"best_score"`
	TotalBallsPocketed int          `db:"total_balls_pocketed" json:"total_balls_pocketed"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
	LastPlayed         sql.NullTime `db:"last_played" json:"last_played,omitempty"`
}

// GameSession is the durable record of one table session.
type GameSession struct {
	ID            int          `db:"id" json:"id"`
	SessionToken  string       `db:"session_token" json:"session_token"`
	DisplayName   string       `db:"display_name" json:"display_name"`
	Score         int          `db:"score" json:"score"`
	BallsPocketed int          `db:"balls_pocketed" json:"balls_pocketed"`
	Scratches     int          `db:"scratches" json:"scratches"`
	RacksCleared  int          `db:"racks_cleared" json:"racks_cleared"`
	Status        string       `db:"status" json:"status"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	CompletedAt   sql.NullTime `db:"completed_at" json:"completed_at,omitempty"`
}

// LeaderboardEntry is one row of the top-score listing.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// AdminAccount is an operator account for the admin endpoints.
type AdminAccount struct {
	Phone       string         `db:"phone" json:"phone"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	AllowedIPs  pq.StringArray `db:"allowed_ips" json:"allowed_ips"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit records one admin action.
type AdminAudit struct {
	ID         int       `db:"id" json:"id"`
	AdminPhone string    `db:"admin_phone" json:"admin_phone"`
	IP         string    `db:"ip" json:"ip"`
	Route      string    `db:"route" json:"route"`
	Action     string    `db:"action" json:"action"`
	Details    []byte    `db:"details" json:"details"`
	Success    bool      `db:"success" json:"success"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
