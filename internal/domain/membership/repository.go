package membership

import (
	"context"
	"time"
)

// Repository describes membership history persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, m Membership) error
	CloseOpenByOwner(ctx context.Context, ownerID string, closedAt time.Time) error
	ListByTeam(ctx context.Context, teamID string) ([]Membership, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Membership, error)
	ListOpenByOwner(ctx context.Context, ownerID string) ([]Membership, error)
}
