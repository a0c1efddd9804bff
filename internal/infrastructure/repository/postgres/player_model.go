package postgres

import (
	"database/sql"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/player"
)

type playerTableModel struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	UserID    sql.NullString `db:"user_id"`
	Name      string         `db:"name"`
	Position  string         `db:"position"`
	Rating    int            `db:"rating"`
	TeamID    sql.NullString `db:"team_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		UserID:    m.UserID.String,
		Name:      m.Name,
		Position:  player.Position(m.Position),
		Rating:    m.Rating,
		TeamID:    m.TeamID.String,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
