package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/infrastructure/repository/memory"
)

func TestPlayerService_CreatePlayer_DefaultsRating(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	p, err := svc.CreatePlayer(t.Context(), CreatePlayerInput{
		OwnerID:  "owner-1",
		Name:     "Nina Park",
		Position: string(player.PositionMidfielder),
	})
	if err != nil {
		t.Fatalf("create player failed: %v", err)
	}

	if p.Rating != player.RatingDefault {
		t.Fatalf("expected default rating %d, got %d", player.RatingDefault, p.Rating)
	}
	if p.ID == "" {
		t.Fatal("expected a generated player id")
	}

	listed, err := svc.ListPlayers(t.Context(), "owner-1")
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != p.ID {
		t.Fatalf("expected the created player in the listing, got %+v", listed)
	}
}

func TestPlayerService_CreatePlayer_InvalidPosition(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	_, err := svc.CreatePlayer(t.Context(), CreatePlayerInput{
		OwnerID:  "owner-1",
		Name:     "Nina Park",
		Position: "Winger",
		Rating:   80,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_CreatePlayer_RatingOutOfRange(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	_, err := svc.CreatePlayer(t.Context(), CreatePlayerInput{
		OwnerID:  "owner-1",
		Name:     "Nina Park",
		Position: string(player.PositionStriker),
		Rating:   player.RatingMax + 1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_UpdatePlayer_Success(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	created, err := svc.CreatePlayer(t.Context(), CreatePlayerInput{
		OwnerID:  "owner-1",
		Name:     "Nina Park",
		Position: string(player.PositionMidfielder),
		Rating:   70,
	})
	if err != nil {
		t.Fatalf("create player failed: %v", err)
	}

	updated, err := svc.UpdatePlayer(t.Context(), UpdatePlayerInput{
		OwnerID:  "owner-1",
		PlayerID: created.ID,
		Name:     "Nina Parker",
		Position: string(player.PositionDefender),
		Rating:   85,
	})
	if err != nil {
		t.Fatalf("update player failed: %v", err)
	}

	if updated.Name != "Nina Parker" {
		t.Fatalf("unexpected name: %s", updated.Name)
	}
	if updated.Position != player.PositionDefender {
		t.Fatalf("unexpected position: %s", updated.Position)
	}
	if updated.Rating != 85 {
		t.Fatalf("unexpected rating: %d", updated.Rating)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected updated timestamp to move forward, got %v", updated.UpdatedAt)
	}
}

func TestPlayerService_UpdatePlayer_NotFound(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	_, err := svc.UpdatePlayer(t.Context(), UpdatePlayerInput{
		OwnerID:  "owner-1",
		PlayerID: "missing-player",
		Name:     "Ghost",
		Position: string(player.PositionStriker),
		Rating:   60,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_DeletePlayer_OwnerScoped(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	err := svc.DeletePlayer(t.Context(), "someone-else", "seed-gk-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}

	if err := svc.DeletePlayer(t.Context(), memory.SeedOwnerID, "seed-gk-01"); err != nil {
		t.Fatalf("delete player failed: %v", err)
	}

	listed, err := svc.ListPlayers(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	for _, p := range listed {
		if p.ID == "seed-gk-01" {
			t.Fatal("deleted player still listed")
		}
	}
}

func TestPlayerService_ResetPlayers_RemovesAll(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewPlayerService(repo, newSeqIDGen(), nil)

	if err := svc.ResetPlayers(t.Context(), memory.SeedOwnerID); err != nil {
		t.Fatalf("reset players failed: %v", err)
	}

	listed, err := svc.ListPlayers(t.Context(), memory.SeedOwnerID)
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no players after reset, got %d", len(listed))
	}
}

// seqIDGen hands out deterministic ids so tests can assert on references.
type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func newSeqIDGen() *seqIDGen {
	return &seqIDGen{}
}

func (g *seqIDGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}
