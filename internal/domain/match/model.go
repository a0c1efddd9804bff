package match

import (
	"fmt"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusPlayed    = "PLAYED"
	StatusCancelled = "CANCELLED"
)

// Match is a scheduled or played game between two of an owner's teams.
// Scores stay nil until a result is recorded.
type Match struct {
	ID          string
	OwnerID     string
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
	Status      string
	HomeScore   *int
	AwayScore   *int
	CreatedAt   time.Time
}

// Played reports whether the match counts toward team records: status
// PLAYED with both scores present.
func (m Match) Played() bool {
	return m.Status == StatusPlayed && m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.OwnerID == "" {
		return fmt.Errorf("match owner id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires two team ids")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must differ")
	}
	switch m.Status {
	case StatusScheduled, StatusPlayed, StatusCancelled:
	default:
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.Status == StatusPlayed {
		if m.HomeScore == nil || m.AwayScore == nil {
			return fmt.Errorf("played match requires both scores")
		}
		if *m.HomeScore < 0 || *m.AwayScore < 0 {
			return fmt.Errorf("match scores cannot be negative")
		}
	}

	return nil
}

// Participation links a player to a match on the side they played for,
// with per-match performance counters.
type Participation struct {
	MatchID  string
	PlayerID string
	TeamID   string
	Goals    int
	Assists  int
}

func (p Participation) Validate() error {
	if p.MatchID == "" {
		return fmt.Errorf("participation match id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("participation player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("participation team id is required")
	}
	if p.Goals < 0 || p.Assists < 0 {
		return fmt.Errorf("participation counters cannot be negative")
	}

	return nil
}
