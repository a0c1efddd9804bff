package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/player"
	idgen "github.com/Stembetevo/fairplay/internal/platform/id"
)

// CreatePlayerInput is the incoming payload for adding a player.
type CreatePlayerInput struct {
	OwnerID  string
	UserID   string
	Name     string
	Position string
	Rating   int
}

// UpdatePlayerInput is the incoming payload for editing a player.
type UpdatePlayerInput struct {
	OwnerID  string
	PlayerID string
	Name     string
	Position string
	Rating   int
}

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerID == "" {
		return player.Player{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if input.Rating == 0 {
		input.Rating = player.RatingDefault
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	p := player.Player{
		ID:        playerID,
		OwnerID:   input.OwnerID,
		UserID:    strings.TrimSpace(input.UserID),
		Name:      input.Name,
		Position:  player.Position(strings.TrimSpace(input.Position)),
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"owner_id", p.OwnerID,
		"player_id", p.ID,
		"position", string(p.Position),
		"rating", p.Rating,
	)

	return p, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, ownerID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}

	return players, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.OwnerID == "" || input.PlayerID == "" {
		return player.Player{}, fmt.Errorf("%w: owner id and player id are required", ErrInvalidInput)
	}

	existing, exists, err := s.playerRepo.GetByID(ctx, input.OwnerID, input.PlayerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Position = player.Position(strings.TrimSpace(input.Position))
	existing.Rating = input.Rating
	existing.UpdatedAt = s.now().UTC()
	if err := existing.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, existing); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return existing, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, ownerID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	playerID = strings.TrimSpace(playerID)
	if ownerID == "" || playerID == "" {
		return fmt.Errorf("%w: owner id and player id are required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, ownerID, playerID)
	if err != nil {
		return fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if err := s.playerRepo.Delete(ctx, ownerID, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "owner_id", ownerID, "player_id", playerID)
	return nil
}

// ResetPlayers removes every player the owner has registered.
func (s *PlayerService) ResetPlayers(ctx context.Context, ownerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ResetPlayers")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	if err := s.playerRepo.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("reset players: %w", err)
	}

	s.logger.InfoContext(ctx, "players reset", "owner_id", ownerID)
	return nil
}
