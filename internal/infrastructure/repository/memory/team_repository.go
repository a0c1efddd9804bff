package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Stembetevo/fairplay/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	teams := make(map[string]team.Team, len(seed))
	for _, t := range seed {
		teams[t.ID] = cloneTeam(t)
	}

	return &TeamRepository{teams: teams}
}

func (r *TeamRepository) ListByOwner(_ context.Context, ownerID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		if t.OwnerID == ownerID {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, ownerID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok || t.OwnerID != ownerID {
		return team.Team{}, false, nil
	}

	return cloneTeam(t), true, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[t.ID] = cloneTeam(t)

	return nil
}

func (r *TeamRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.teams {
		if t.OwnerID == ownerID {
			delete(r.teams, id)
		}
	}

	return nil
}

func cloneTeam(t team.Team) team.Team {
	t.MemberUserIDs = append([]string(nil), t.MemberUserIDs...)
	return t
}
