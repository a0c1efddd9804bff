package membership

import (
	"fmt"
	"time"
)

// Membership records one interval a player spent on a team.
// LeftAt is nil while the membership is open; a player has at most one
// open membership at a time, closed before the next draft assigns a new one.
// TeamName is snapshotted at creation because team rows are dropped on
// every regeneration while the history outlives them.
type Membership struct {
	ID       string
	OwnerID  string
	PlayerID string
	TeamID   string
	TeamName string
	JoinedAt time.Time
	LeftAt   *time.Time
}

func (m Membership) Open() bool {
	return m.LeftAt == nil
}

func (m Membership) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("membership id is required")
	}
	if m.OwnerID == "" {
		return fmt.Errorf("membership owner id is required")
	}
	if m.PlayerID == "" {
		return fmt.Errorf("membership player id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("membership team id is required")
	}
	if m.JoinedAt.IsZero() {
		return fmt.Errorf("membership joined at is required")
	}
	if m.LeftAt != nil && m.LeftAt.Before(m.JoinedAt) {
		return fmt.Errorf("membership left at %v precedes joined at %v", m.LeftAt, m.JoinedAt)
	}

	return nil
}
