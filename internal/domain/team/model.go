package team

import (
	"fmt"
	"time"
)

// Team is one generated side in an owner's league. Rosters are replaced
// wholesale on every draft run; a team never mutates incrementally.
// Names are labels, not keys: duplicates are allowed.
type Team struct {
	ID            string
	OwnerID       string
	Name          string
	MemberUserIDs []string
	CreatedAt     time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("team owner id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
