package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Stembetevo/fairplay/internal/domain/team"
	qb "github.com/Stembetevo/fairplay/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"owner_id",
	"name",
	"created_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("owner_id", ownerID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by owner query: %w", err)
	}

	var rows []teamTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by owner: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	teamIDs := make([]any, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.ID)
	}
	members, err := r.listMembers(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(members[row.ID]))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, ownerID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("owner_id", ownerID), qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := queryerFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	members, err := r.listMembers(ctx, []any{row.ID})
	if err != nil {
		return team.Team{}, false, err
	}

	return row.toDomain(members[row.ID]), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertInto("teams").
		Columns("id", "owner_id", "name", "created_at").
		Values(t.ID, t.OwnerID, t.Name, t.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	q := queryerFrom(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	if len(t.MemberUserIDs) == 0 {
		return nil
	}

	memberInsert := qb.InsertInto("team_members").Columns("team_id", "user_id")
	for _, userID := range t.MemberUserIDs {
		memberInsert.Values(t.ID, userID)
	}
	memberQuery, memberArgs, err := memberInsert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team members query: %w", err)
	}
	if _, err := q.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("insert team members: %w", err)
	}

	return nil
}

func (r *TeamRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	q := queryerFrom(ctx, r.db)

	// Member rows go first so the team foreign key never dangles.
	const deleteMembersQuery = `
DELETE FROM team_members
WHERE team_id IN (SELECT id FROM teams WHERE owner_id = $1)`
	if _, err := q.ExecContext(ctx, deleteMembersQuery, ownerID); err != nil {
		return fmt.Errorf("delete team members by owner: %w", err)
	}

	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("owner_id", ownerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete teams by owner query: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete teams by owner: %w", err)
	}

	return nil
}

func (r *TeamRepository) listMembers(ctx context.Context, teamIDs []any) (map[string][]string, error) {
	query, args, err := qb.Select("team_id", "user_id").From("team_members").
		Where(qb.In("team_id", teamIDs)).
		OrderBy("team_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make(map[string][]string, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], row.UserID)
	}

	return out, nil
}
