package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Stembetevo/fairplay/internal/infrastructure/repository/memory"
)

func newRosterFixture(seeded bool) (*RosterService, *memory.PlayerRepository, *memory.TeamRepository, *memory.MembershipRepository) {
	var players *memory.PlayerRepository
	if seeded {
		players = memory.NewPlayerRepository(memory.SeedPlayers())
	} else {
		players = memory.NewPlayerRepository(nil)
	}
	teams := memory.NewTeamRepository(nil)
	memberships := memory.NewMembershipRepository(nil)

	svc := NewRosterService(players, teams, memberships, memory.NewTxManager(), newSeqIDGen(), nil)

	return svc, players, teams, memberships
}

func TestRosterService_GenerateTeams_SerpentineBalance(t *testing.T) {
	svc, _, _, _ := newRosterFixture(true)

	views, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"Reds", "Blues"},
	})
	if err != nil {
		t.Fatalf("generate teams failed: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(views))
	}
	if views[0].Name != "Reds" || views[1].Name != "Blues" {
		t.Fatalf("teams out of requested order: %s, %s", views[0].Name, views[1].Name)
	}
	for _, v := range views {
		if len(v.Players) != 6 {
			t.Fatalf("expected 6 players on %s, got %d", v.Name, len(v.Players))
		}
	}

	// Seed pool ratings split 467 vs 471 under the serpentine order.
	if views[0].TotalRating != 467 {
		t.Fatalf("unexpected total for Reds: %d", views[0].TotalRating)
	}
	if views[1].TotalRating != 471 {
		t.Fatalf("unexpected total for Blues: %d", views[1].TotalRating)
	}

	// Top pick goes to the first team, the next two to the second.
	if views[0].Players[0].ID != "seed-st-01" {
		t.Fatalf("unexpected first pick: %s", views[0].Players[0].ID)
	}
	if views[1].Players[0].ID != "seed-mid-01" || views[1].Players[1].ID != "seed-def-01" {
		t.Fatalf("unexpected serpentine picks: %s, %s", views[1].Players[0].ID, views[1].Players[1].ID)
	}
}

func TestRosterService_GenerateTeams_AssignsPlayersAndOpensMemberships(t *testing.T) {
	svc, players, _, memberships := newRosterFixture(true)

	views, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"Reds", "Blues", "Greens"},
	})
	if err != nil {
		t.Fatalf("generate teams failed: %v", err)
	}

	for _, v := range views {
		assigned, err := players.ListByTeam(t.Context(), v.ID)
		if err != nil {
			t.Fatalf("list players by team failed: %v", err)
		}
		if len(assigned) != len(v.Players) {
			t.Fatalf("team %s: %d players assigned, roster says %d", v.Name, len(assigned), len(v.Players))
		}
	}

	open, err := memberships.ListOpenByOwner(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list open memberships failed: %v", err)
	}
	if len(open) != 12 {
		t.Fatalf("expected one open membership per player, got %d", len(open))
	}
	for _, m := range open {
		if m.TeamName == "" {
			t.Fatalf("membership %s missing team name snapshot", m.ID)
		}
	}
}

func TestRosterService_GenerateTeams_ReplacesPreviousRun(t *testing.T) {
	svc, _, teams, memberships := newRosterFixture(true)

	first, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"Reds", "Blues"},
	})
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	second, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"North", "South", "East"},
	})
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	current, err := teams.ListByOwner(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(current) != len(second) {
		t.Fatalf("expected only the second run's teams, got %d", len(current))
	}
	for _, ct := range current {
		for _, old := range first {
			if ct.ID == old.ID {
				t.Fatalf("team %s survived regeneration", ct.ID)
			}
		}
	}

	open, err := memberships.ListOpenByOwner(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list open memberships failed: %v", err)
	}
	for _, m := range open {
		if m.TeamName != "North" && m.TeamName != "South" && m.TeamName != "East" {
			t.Fatalf("open membership points at closed team %q", m.TeamName)
		}
	}

	// First-run intervals survive as closed history.
	history, err := memberships.ListByPlayer(t.Context(), "seed-st-01")
	if err != nil {
		t.Fatalf("list memberships by player failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 membership intervals, got %d", len(history))
	}
	closed := 0
	for _, m := range history {
		if !m.Open() {
			closed++
		}
	}
	if closed != 1 {
		t.Fatalf("expected exactly one closed interval, got %d", closed)
	}
}

func TestRosterService_GenerateTeams_FiltersBlankNames(t *testing.T) {
	svc, _, _, _ := newRosterFixture(true)

	views, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"  Reds  ", "", "   ", "Blues"},
	})
	if err != nil {
		t.Fatalf("generate teams failed: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected blank names dropped, got %d teams", len(views))
	}
	if views[0].Name != "Reds" || views[1].Name != "Blues" {
		t.Fatalf("unexpected names: %s, %s", views[0].Name, views[1].Name)
	}
}

func TestRosterService_GenerateTeams_NoNames(t *testing.T) {
	svc, _, _, _ := newRosterFixture(true)

	_, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"   ", ""},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_GenerateTeams_NoPlayers(t *testing.T) {
	svc, _, _, _ := newRosterFixture(false)

	_, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   "owner-without-players",
		TeamNames: []string{"Reds", "Blues"},
	})
	if !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
}

func TestRosterService_GenerateTeams_NameProblemReportedBeforeEmptyPool(t *testing.T) {
	svc, _, _, _ := newRosterFixture(false)

	_, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   "owner-without-players",
		TeamNames: nil,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if errors.Is(err, ErrNoPlayers) {
		t.Fatalf("empty pool must not mask the name problem: %v", err)
	}
}

func TestRosterService_ListTeams_ComputesRatings(t *testing.T) {
	svc, _, _, _ := newRosterFixture(true)

	generated, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"Reds", "Blues"},
	})
	if err != nil {
		t.Fatalf("generate teams failed: %v", err)
	}

	listed, err := svc.ListTeams(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(listed) != len(generated) {
		t.Fatalf("expected %d teams, got %d", len(generated), len(listed))
	}

	byID := make(map[string]TeamView, len(generated))
	for _, v := range generated {
		byID[v.ID] = v
	}
	for _, v := range listed {
		want, ok := byID[v.ID]
		if !ok {
			t.Fatalf("unexpected team in listing: %s", v.ID)
		}
		if v.TotalRating != want.TotalRating {
			t.Fatalf("team %s: total %d, want %d", v.Name, v.TotalRating, want.TotalRating)
		}
		if v.AverageRating != want.AverageRating {
			t.Fatalf("team %s: average %f, want %f", v.Name, v.AverageRating, want.AverageRating)
		}
	}
}

func TestRosterService_ListTeams_EmptyOwner(t *testing.T) {
	svc, _, _, _ := newRosterFixture(false)

	views, err := svc.ListTeams(t.Context(), "owner-without-teams")
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no teams, got %d", len(views))
	}
}

func TestRosterService_GenerateTeams_DeterministicTimestamps(t *testing.T) {
	svc, _, _, memberships := newRosterFixture(true)
	fixed := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	views, err := svc.GenerateTeams(t.Context(), GenerateTeamsInput{
		OwnerID:   memory.SeedOwnerID,
		TeamNames: []string{"Reds"},
	})
	if err != nil {
		t.Fatalf("generate teams failed: %v", err)
	}

	if !views[0].CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected team created at: %v", views[0].CreatedAt)
	}

	open, err := memberships.ListOpenByOwner(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list open memberships failed: %v", err)
	}
	for _, m := range open {
		if !m.JoinedAt.Equal(fixed) {
			t.Fatalf("membership %s joined at %v, want %v", m.ID, m.JoinedAt, fixed)
		}
	}
}
