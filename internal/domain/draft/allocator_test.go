package draft

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Stembetevo/fairplay/internal/domain/player"
)

func ratedPlayer(id string, rating int, pos player.Position) player.Player {
	return player.Player{ID: id, OwnerID: "owner-1", Name: id, Position: pos, Rating: rating}
}

func TestAllocate_SerpentineOrdering(t *testing.T) {
	players := []player.Player{
		ratedPlayer("p90", 90, player.PositionStriker),
		ratedPlayer("p85", 85, player.PositionStriker),
		ratedPlayer("p80", 80, player.PositionStriker),
		ratedPlayer("p75", 75, player.PositionStriker),
		ratedPlayer("p70", 70, player.PositionStriker),
		ratedPlayer("p65", 65, player.PositionStriker),
	}

	rosters := Allocate(players, []string{"A", "B"})

	wantA := []string{"p90", "p75", "p70"}
	wantB := []string{"p85", "p80", "p65"}
	if got := playerIDs(rosters[0]); !reflect.DeepEqual(got, wantA) {
		t.Fatalf("team A roster = %v, want %v", got, wantA)
	}
	if got := playerIDs(rosters[1]); !reflect.DeepEqual(got, wantB) {
		t.Fatalf("team B roster = %v, want %v", got, wantB)
	}
	if rosters[0].TotalRating != 235 {
		t.Fatalf("team A total = %d, want 235", rosters[0].TotalRating)
	}
	if rosters[1].TotalRating != 230 {
		t.Fatalf("team B total = %d, want 230", rosters[1].TotalRating)
	}
}

func TestAllocate_EmptyPlayers(t *testing.T) {
	rosters := Allocate(nil, []string{"A", "B"})

	if len(rosters) != 2 {
		t.Fatalf("expected 2 rosters, got %d", len(rosters))
	}
	for _, r := range rosters {
		if len(r.Players) != 0 {
			t.Fatalf("team %s should be empty, got %d players", r.TeamName, len(r.Players))
		}
		if r.TotalRating != 0 {
			t.Fatalf("team %s total = %d, want 0", r.TeamName, r.TotalRating)
		}
		if r.AverageRating() != 0 {
			t.Fatalf("team %s average = %f, want 0", r.TeamName, r.AverageRating())
		}
	}
}

func TestAllocate_MoreTeamsThanPlayers(t *testing.T) {
	players := []player.Player{
		ratedPlayer("p1", 80, player.PositionStriker),
		ratedPlayer("p2", 70, player.PositionDefender),
	}

	rosters := Allocate(players, []string{"A", "B", "C", "D"})

	if len(rosters) != 4 {
		t.Fatalf("expected 4 rosters, got %d", len(rosters))
	}
	if len(rosters[2].Players) != 0 || len(rosters[3].Players) != 0 {
		t.Fatalf("teams C and D should stay empty")
	}
	if rosters[0].Players[0].ID != "p1" || rosters[1].Players[0].ID != "p2" {
		t.Fatalf("first round should fill teams in order, got %v / %v", rosters[0].Players, rosters[1].Players)
	}
}

func TestAllocate_PositionTiebreak(t *testing.T) {
	// Equal ratings: canonical position order (Striker, Defender,
	// Midfielder, Goalkeeper) decides the pick order.
	players := []player.Player{
		ratedPlayer("gk", 80, player.PositionGoalkeeper),
		ratedPlayer("mid", 80, player.PositionMidfielder),
		ratedPlayer("st", 80, player.PositionStriker),
		ratedPlayer("def", 80, player.PositionDefender),
	}

	rosters := Allocate(players, []string{"A", "B"})

	wantA := []string{"st", "gk"}
	wantB := []string{"def", "mid"}
	if got := playerIDs(rosters[0]); !reflect.DeepEqual(got, wantA) {
		t.Fatalf("team A roster = %v, want %v", got, wantA)
	}
	if got := playerIDs(rosters[1]); !reflect.DeepEqual(got, wantB) {
		t.Fatalf("team B roster = %v, want %v", got, wantB)
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	players := []player.Player{
		ratedPlayer("a", 75, player.PositionMidfielder),
		ratedPlayer("b", 75, player.PositionMidfielder),
		ratedPlayer("c", 75, player.PositionMidfielder),
		ratedPlayer("d", 90, player.PositionDefender),
	}

	first := Allocate(players, []string{"X", "Y"})
	for i := 0; i < 20; i++ {
		again := Allocate(players, []string{"X", "Y"})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("allocation changed between identical runs: %v vs %v", first, again)
		}
	}
}

func TestAllocate_Completeness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	positions := []player.Position{
		player.PositionStriker,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionGoalkeeper,
	}

	for teams := 2; teams <= 10; teams++ {
		players := make([]player.Player, 0, 40)
		for i := 0; i < 40; i++ {
			players = append(players, ratedPlayer(
				fmt.Sprintf("p%d", i),
				player.RatingMin+rng.Intn(player.RatingMax-player.RatingMin+1),
				positions[rng.Intn(len(positions))],
			))
		}

		names := make([]string, 0, teams)
		for i := 0; i < teams; i++ {
			names = append(names, fmt.Sprintf("Team %d", i+1))
		}

		rosters := Allocate(players, names)

		seen := make(map[string]int, len(players))
		total := 0
		for _, r := range rosters {
			total += len(r.Players)
			for _, p := range r.Players {
				seen[p.ID]++
			}
		}
		if total != len(players) {
			t.Fatalf("teams=%d: assigned %d players, want %d", teams, total, len(players))
		}
		for id, count := range seen {
			if count != 1 {
				t.Fatalf("teams=%d: player %s assigned %d times", teams, id, count)
			}
		}
	}
}

func TestAllocate_RatingSumBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for teams := 2; teams <= 10; teams++ {
		for trial := 0; trial < 25; trial++ {
			count := teams*4 + rng.Intn(teams*4)
			players := make([]player.Player, 0, count)
			for i := 0; i < count; i++ {
				players = append(players, ratedPlayer(
					fmt.Sprintf("p%d", i),
					player.RatingMin+rng.Intn(player.RatingMax-player.RatingMin+1),
					player.PositionMidfielder,
				))
			}

			names := make([]string, 0, teams)
			for i := 0; i < teams; i++ {
				names = append(names, fmt.Sprintf("T%d", i))
			}

			rosters := Allocate(players, names)

			minTotal, maxTotal := rosters[0].TotalRating, rosters[0].TotalRating
			for _, r := range rosters[1:] {
				if r.TotalRating < minTotal {
					minTotal = r.TotalRating
				}
				if r.TotalRating > maxTotal {
					maxTotal = r.TotalRating
				}
			}

			if spread := maxTotal - minTotal; spread > player.RatingMax {
				t.Fatalf("teams=%d trial=%d: rating spread %d exceeds max single rating %d",
					teams, trial, spread, player.RatingMax)
			}
		}
	}
}

func TestAllocate_DuplicateTeamNames(t *testing.T) {
	players := []player.Player{
		ratedPlayer("p1", 90, player.PositionStriker),
		ratedPlayer("p2", 80, player.PositionStriker),
	}

	rosters := Allocate(players, []string{"Reds", "Reds"})

	if len(rosters) != 2 {
		t.Fatalf("expected 2 rosters for duplicate names, got %d", len(rosters))
	}
	if len(rosters[0].Players) != 1 || len(rosters[1].Players) != 1 {
		t.Fatalf("each duplicate-name roster should hold one player, got %d and %d",
			len(rosters[0].Players), len(rosters[1].Players))
	}
}

func playerIDs(r Roster) []string {
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.ID)
	}
	return out
}
