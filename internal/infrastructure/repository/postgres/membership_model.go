package postgres

import (
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/membership"
)

type membershipTableModel struct {
	ID       string     `db:"id"`
	OwnerID  string     `db:"owner_id"`
	PlayerID string     `db:"player_id"`
	TeamID   string     `db:"team_id"`
	TeamName string     `db:"team_name"`
	JoinedAt time.Time  `db:"joined_at"`
	LeftAt   *time.Time `db:"left_at"`
}

func (m membershipTableModel) toDomain() membership.Membership {
	return membership.Membership{
		ID:       m.ID,
		OwnerID:  m.OwnerID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		TeamName: m.TeamName,
		JoinedAt: m.JoinedAt,
		LeftAt:   m.LeftAt,
	}
}
