package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Stembetevo/fairplay/internal/domain/match"
)

type MatchRepository struct {
	mu             sync.RWMutex
	matches        map[string]match.Match
	participations map[string][]match.Participation
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(seed))
	for _, m := range seed {
		matches[m.ID] = cloneMatch(m)
	}

	return &MatchRepository{
		matches:        matches,
		participations: make(map[string][]match.Participation),
	}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[m.ID] = cloneMatch(m)

	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[m.ID] = cloneMatch(m)

	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, ownerID, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok || m.OwnerID != ownerID {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListByOwner(_ context.Context, ownerID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m.OwnerID == ownerID {
			out = append(out, cloneMatch(m))
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, 8)
	for _, m := range r.matches {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			out = append(out, cloneMatch(m))
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) ReplaceParticipations(_ context.Context, matchID string, items []match.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participations[matchID] = append([]match.Participation(nil), items...)

	return nil
}

func (r *MatchRepository) ListParticipationsByMatch(_ context.Context, matchID string) ([]match.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]match.Participation(nil), r.participations[matchID]...), nil
}

func sortMatches(matches []match.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].ScheduledAt.Equal(matches[j].ScheduledAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].ScheduledAt.Before(matches[j].ScheduledAt)
	})
}

func cloneMatch(m match.Match) match.Match {
	if m.HomeScore != nil {
		v := *m.HomeScore
		m.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		m.AwayScore = &v
	}
	return m
}
