package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByID(ctx context.Context, ownerID, playerID string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
	Delete(ctx context.Context, ownerID, playerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	AssignTeam(ctx context.Context, playerID, teamID string) error
	ClearTeamsByOwner(ctx context.Context, ownerID string) error
}
