package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/match"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/domain/team"
	"github.com/Stembetevo/fairplay/internal/platform/cache"
	idgen "github.com/Stembetevo/fairplay/internal/platform/id"
)

// ScheduleMatchInput is the incoming payload for creating a match.
type ScheduleMatchInput struct {
	OwnerID     string
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
}

// RecordResultInput is the incoming payload for recording a final score.
type RecordResultInput struct {
	OwnerID   string
	MatchID   string
	HomeScore int
	AwayScore int
}

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	records    *cache.Store
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	records *cache.Store,
	idGen idgen.Generator,
	logger *slog.Logger,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		records:    records,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) ScheduleMatch(ctx context.Context, input ScheduleMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ScheduleMatch")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if input.OwnerID == "" {
		return match.Match{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if teamID == "" {
			return match.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
		}
		if _, exists, err := s.teamRepo.GetByID(ctx, input.OwnerID, teamID); err != nil {
			return match.Match{}, fmt.Errorf("get team by id: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	scheduledAt := input.ScheduledAt.UTC()
	if scheduledAt.IsZero() {
		scheduledAt = now
	}

	m := match.Match{
		ID:          matchID,
		OwnerID:     input.OwnerID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		ScheduledAt: scheduledAt,
		Status:      match.StatusScheduled,
		CreatedAt:   now,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"owner_id", m.OwnerID,
		"match_id", m.ID,
		"home_team_id", m.HomeTeamID,
		"away_team_id", m.AwayTeamID,
	)

	return m, nil
}

func (s *MatchService) ListMatches(ctx context.Context, ownerID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list matches by owner: %w", err)
	}

	return matches, nil
}

func (s *MatchService) GetMatch(ctx context.Context, ownerID, matchID string) (match.Match, []match.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	matchID = strings.TrimSpace(matchID)
	if ownerID == "" || matchID == "" {
		return match.Match{}, nil, fmt.Errorf("%w: owner id and match id are required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, ownerID, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	participations, err := s.matchRepo.ListParticipationsByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("list participations: %w", err)
	}

	return m, participations, nil
}

// RecordResult finalizes a match. Recording over an already-played match
// overwrites the previous score and roster snapshot.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.OwnerID == "" || input.MatchID == "" {
		return match.Match{}, fmt.Errorf("%w: owner id and match id are required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.OwnerID, input.MatchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if m.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match %s is cancelled", ErrInvalidInput, input.MatchID)
	}

	homeScore := input.HomeScore
	awayScore := input.AwayScore
	m.Status = match.StatusPlayed
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	participations, err := s.snapshotRosters(ctx, m)
	if err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.ReplaceParticipations(ctx, m.ID, participations); err != nil {
		return match.Match{}, fmt.Errorf("replace participations: %w", err)
	}

	// Recorded results change both sides' records.
	s.records.Delete(ctx, teamRecordCacheKey(m.HomeTeamID))
	s.records.Delete(ctx, teamRecordCacheKey(m.AwayTeamID))

	s.logger.InfoContext(ctx, "match result recorded",
		"owner_id", m.OwnerID,
		"match_id", m.ID,
		"home_score", homeScore,
		"away_score", awayScore,
	)

	return m, nil
}

// snapshotRosters captures who was on each side when the result landed.
func (s *MatchService) snapshotRosters(ctx context.Context, m match.Match) ([]match.Participation, error) {
	out := make([]match.Participation, 0, 16)
	for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
		players, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("list players for team %s: %w", teamID, err)
		}
		for _, p := range players {
			out = append(out, match.Participation{
				MatchID:  m.ID,
				PlayerID: p.ID,
				TeamID:   teamID,
			})
		}
	}

	return out, nil
}
