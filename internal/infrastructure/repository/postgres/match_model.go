package postgres

import (
	"database/sql"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/match"
)

type matchTableModel struct {
	ID          string        `db:"id"`
	OwnerID     string        `db:"owner_id"`
	HomeTeamID  string        `db:"home_team_id"`
	AwayTeamID  string        `db:"away_team_id"`
	ScheduledAt time.Time     `db:"scheduled_at"`
	Status      string        `db:"status"`
	HomeScore   sql.NullInt64 `db:"home_score"`
	AwayScore   sql.NullInt64 `db:"away_score"`
	CreatedAt   time.Time     `db:"created_at"`
}

type participationTableModel struct {
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	Goals    int    `db:"goals"`
	Assists  int    `db:"assists"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		ScheduledAt: m.ScheduledAt,
		Status:      m.Status,
		HomeScore:   intPtr(m.HomeScore),
		AwayScore:   intPtr(m.AwayScore),
		CreatedAt:   m.CreatedAt,
	}
}

func (m participationTableModel) toDomain() match.Participation {
	return match.Participation{
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		Goals:    m.Goals,
		Assists:  m.Assists,
	}
}
