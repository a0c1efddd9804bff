package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/membership"
)

type MembershipRepository struct {
	mu          sync.RWMutex
	memberships map[string]membership.Membership
}

func NewMembershipRepository(seed []membership.Membership) *MembershipRepository {
	memberships := make(map[string]membership.Membership, len(seed))
	for _, m := range seed {
		memberships[m.ID] = m
	}

	return &MembershipRepository{memberships: memberships}
}

func (r *MembershipRepository) Create(_ context.Context, m membership.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberships[m.ID] = m

	return nil
}

func (r *MembershipRepository) CloseOpenByOwner(_ context.Context, ownerID string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.memberships {
		if m.OwnerID == ownerID && m.Open() {
			left := closedAt
			m.LeftAt = &left
			r.memberships[id] = m
		}
	}

	return nil
}

func (r *MembershipRepository) ListByTeam(_ context.Context, teamID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0, 8)
	for _, m := range r.memberships {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	sortMemberships(out)

	return out, nil
}

func (r *MembershipRepository) ListByPlayer(_ context.Context, playerID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0, 8)
	for _, m := range r.memberships {
		if m.PlayerID == playerID {
			out = append(out, m)
		}
	}
	sortMemberships(out)

	return out, nil
}

func (r *MembershipRepository) ListOpenByOwner(_ context.Context, ownerID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0, 8)
	for _, m := range r.memberships {
		if m.OwnerID == ownerID && m.Open() {
			out = append(out, m)
		}
	}
	sortMemberships(out)

	return out, nil
}

func sortMemberships(memberships []membership.Membership) {
	sort.Slice(memberships, func(i, j int) bool {
		if memberships[i].JoinedAt.Equal(memberships[j].JoinedAt) {
			return memberships[i].ID < memberships[j].ID
		}
		return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
	})
}
