package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	GetByID(ctx context.Context, ownerID, matchID string) (Match, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Match, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	ReplaceParticipations(ctx context.Context, matchID string, items []Participation) error
	ListParticipationsByMatch(ctx context.Context, matchID string) ([]Participation, error)
}
