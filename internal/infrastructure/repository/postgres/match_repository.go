package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Stembetevo/fairplay/internal/domain/match"
	qb "github.com/Stembetevo/fairplay/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"owner_id",
	"home_team_id",
	"away_team_id",
	"scheduled_at",
	"status",
	"home_score",
	"away_score",
	"created_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertInto("matches").
		Columns("id", "owner_id", "home_team_id", "away_team_id", "scheduled_at", "status", "home_score", "away_score", "created_at").
		Values(m.ID, m.OwnerID, m.HomeTeamID, m.AwayTeamID, m.ScheduledAt, m.Status, nullInt(m.HomeScore), nullInt(m.AwayScore), m.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	query, args, err := qb.Update("matches").
		Set("scheduled_at", m.ScheduledAt).
		Set("status", m.Status).
		Set("home_score", nullInt(m.HomeScore)).
		Set("away_score", nullInt(m.AwayScore)).
		Where(qb.Eq("owner_id", m.OwnerID), qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, ownerID, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("owner_id", ownerID), qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := queryerFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByOwner(ctx context.Context, ownerID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("owner_id", ownerID))
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	const query = `
SELECT id, owner_id, home_team_id, away_team_id, scheduled_at, status, home_score, away_score, created_at
FROM matches
WHERE home_team_id = $1 OR away_team_id = $1
ORDER BY scheduled_at, id`

	var rows []matchTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select matches by team: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) ReplaceParticipations(ctx context.Context, matchID string, items []match.Participation) error {
	q := queryerFrom(ctx, r.db)

	deleteQuery, deleteArgs, err := qb.DeleteFrom("participations").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participations query: %w", err)
	}
	if _, err := q.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete participations: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	insert := qb.InsertInto("participations").Columns("match_id", "player_id", "team_id", "goals", "assists")
	for _, item := range items {
		insert.Values(matchID, item.PlayerID, item.TeamID, item.Goals, item.Assists)
	}
	insertQuery, insertArgs, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert participations query: %w", err)
	}
	if _, err := q.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert participations: %w", err)
	}

	return nil
}

func (r *MatchRepository) ListParticipationsByMatch(ctx context.Context, matchID string) ([]match.Participation, error) {
	query, args, err := qb.Select("match_id", "player_id", "team_id", "goals", "assists").From("participations").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participations query: %w", err)
	}

	var rows []participationTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participations: %w", err)
	}

	out := make([]match.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(conditions...).
		OrderBy("scheduled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
