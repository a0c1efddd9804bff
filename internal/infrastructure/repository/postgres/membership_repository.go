package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Stembetevo/fairplay/internal/domain/membership"
	qb "github.com/Stembetevo/fairplay/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

var membershipSelectColumns = []string{
	"id",
	"owner_id",
	"player_id",
	"team_id",
	"team_name",
	"joined_at",
	"left_at",
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m membership.Membership) error {
	query, args, err := qb.InsertInto("memberships").
		Columns("id", "owner_id", "player_id", "team_id", "team_name", "joined_at", "left_at").
		Values(m.ID, m.OwnerID, m.PlayerID, m.TeamID, m.TeamName, m.JoinedAt, m.LeftAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}

	return nil
}

func (r *MembershipRepository) CloseOpenByOwner(ctx context.Context, ownerID string, closedAt time.Time) error {
	query, args, err := qb.Update("memberships").
		Set("left_at", closedAt).
		Where(qb.Eq("owner_id", ownerID), qb.IsNull("left_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close memberships query: %w", err)
	}

	if _, err := queryerFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("close open memberships: %w", err)
	}

	return nil
}

func (r *MembershipRepository) ListByTeam(ctx context.Context, teamID string) ([]membership.Membership, error) {
	return r.list(ctx, qb.Eq("team_id", teamID))
}

func (r *MembershipRepository) ListByPlayer(ctx context.Context, playerID string) ([]membership.Membership, error) {
	return r.list(ctx, qb.Eq("player_id", playerID))
}

func (r *MembershipRepository) ListOpenByOwner(ctx context.Context, ownerID string) ([]membership.Membership, error) {
	return r.list(ctx, qb.Eq("owner_id", ownerID), qb.IsNull("left_at"))
}

func (r *MembershipRepository) list(ctx context.Context, conditions ...qb.Condition) ([]membership.Membership, error) {
	query, args, err := qb.Select(membershipSelectColumns...).From("memberships").
		Where(conditions...).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := queryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
