package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Stembetevo/fairplay/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	players := make(map[string]player.Player, len(seed))
	for _, p := range seed {
		players[p.ID] = p
	}

	return &PlayerRepository{players: players}
}

func (r *PlayerRepository) ListByOwner(_ context.Context, ownerID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	if teamID == "" {
		return []player.Player{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, 8)
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, ownerID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok || p.OwnerID != ownerID {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = p

	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = p

	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, ownerID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[playerID]; ok && p.OwnerID == ownerID {
		delete(r.players, playerID)
	}

	return nil
}

func (r *PlayerRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.players {
		if p.OwnerID == ownerID {
			delete(r.players, id)
		}
	}

	return nil
}

func (r *PlayerRepository) AssignTeam(_ context.Context, playerID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return nil
	}
	p.TeamID = teamID
	r.players[playerID] = p

	return nil
}

func (r *PlayerRepository) ClearTeamsByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.players {
		if p.OwnerID == ownerID && p.TeamID != "" {
			p.TeamID = ""
			r.players[id] = p
		}
	}

	return nil
}

func sortPlayers(players []player.Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
}
