package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Team, error)
	GetByID(ctx context.Context, ownerID, teamID string) (Team, bool, error)
	Create(ctx context.Context, t Team) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
