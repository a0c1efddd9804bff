package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Stembetevo/fairplay/internal/domain/player"
	qb "github.com/Stembetevo/fairplay/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"owner_id",
	"user_id",
	"name",
	"position",
	"rating",
	"team_id",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, ownerID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("owner_id", ownerID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by owner query: %w", err)
	}

	var rows []playerTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by owner: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	if teamID == "" {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, ownerID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("owner_id", ownerID), qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := queryerFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("id", "owner_id", "user_id", "name", "position", "rating", "team_id", "created_at", "updated_at").
		Values(p.ID, p.OwnerID, nullString(p.UserID), p.Name, string(p.Position), p.Rating, nullString(p.TeamID), p.CreatedAt, p.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", p.Name).
		Set("position", string(p.Position)).
		Set("rating", p.Rating).
		Set("team_id", nullString(p.TeamID)).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("owner_id", p.OwnerID), qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, ownerID, playerID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("owner_id", ownerID), qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("owner_id", ownerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players by owner query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete players by owner: %w", err)
	}

	return nil
}

func (r *PlayerRepository) AssignTeam(ctx context.Context, playerID, teamID string) error {
	query, args, err := qb.Update("players").
		Set("team_id", nullString(teamID)).
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign player team query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign player team: %w", err)
	}

	return nil
}

func (r *PlayerRepository) ClearTeamsByOwner(ctx context.Context, ownerID string) error {
	query, args, err := qb.Update("players").
		Set("team_id", nullString("")).
		Where(qb.Eq("owner_id", ownerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear player teams query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear player teams: %w", err)
	}

	return nil
}
