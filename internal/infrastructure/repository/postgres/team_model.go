package postgres

import (
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type teamMemberTableModel struct {
	TeamID string `db:"team_id"`
	UserID string `db:"user_id"`
}

func (m teamTableModel) toDomain(memberUserIDs []string) team.Team {
	return team.Team{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		MemberUserIDs: memberUserIDs,
		CreatedAt:     m.CreatedAt,
	}
}
