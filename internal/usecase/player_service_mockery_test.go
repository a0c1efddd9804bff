package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Stembetevo/fairplay/internal/domain/player"
	playermock "github.com/Stembetevo/fairplay/internal/mocks/domain/player"
)

func TestPlayerService_DeletePlayer_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)

	service := NewPlayerService(playerRepo, newSeqIDGen(), nil)
	ownerID := "owner-1"
	playerID := "player-42"

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), ownerID, playerID).
		Return(player.Player{ID: playerID, OwnerID: ownerID}, true, nil).
		Once()
	playerRepo.
		On("Delete", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), ownerID, playerID).
		Return(nil).
		Once()

	if err := service.DeletePlayer(ctx, ownerID, playerID); err != nil {
		t.Fatalf("delete player: %v", err)
	}
}

func TestPlayerService_DeletePlayer_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)

	service := NewPlayerService(playerRepo, newSeqIDGen(), nil)
	ownerID := "owner-1"
	playerID := "missing-player"

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), ownerID, playerID).
		Return(player.Player{}, false, nil).
		Once()

	err := service.DeletePlayer(ctx, ownerID, playerID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
