package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/draft"
	"github.com/Stembetevo/fairplay/internal/domain/membership"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/domain/team"
	idgen "github.com/Stembetevo/fairplay/internal/platform/id"
)

// GenerateTeamsInput is the incoming payload for a draft run.
type GenerateTeamsInput struct {
	OwnerID   string
	TeamNames []string
}

// TeamView is a generated team with its roster and rating figures.
type TeamView struct {
	ID            string
	Name          string
	Players       []player.Player
	TotalRating   int
	AverageRating float64
	CreatedAt     time.Time
}

type RosterService struct {
	playerRepo     player.Repository
	teamRepo       team.Repository
	membershipRepo membership.Repository
	tx             TxManager
	idGen          idgen.Generator
	logger         *slog.Logger
	now            func() time.Time
}

func NewRosterService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	membershipRepo membership.Repository,
	tx TxManager,
	idGen idgen.Generator,
	logger *slog.Logger,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterService{
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		tx:             tx,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// GenerateTeams replaces the owner's teams with a fresh serpentine-draft
// allocation: open memberships are closed, previous teams are dropped with
// their player references, and one team per requested name is created even
// when it ends up empty. The whole reset-then-recreate sequence runs in one
// transaction.
//
// Two concurrent runs by the same owner race last-write-wins: each run is
// internally consistent but the earlier one's teams are gone afterwards.
func (s *RosterService) GenerateTeams(ctx context.Context, input GenerateTeamsInput) ([]TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GenerateTeams")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	if input.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	// Name validation runs before the player-availability check so a
	// request that is wrong on both counts reports the name problem first.
	names := cleanTeamNames(input.TeamNames)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one team name is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: owner=%s", ErrNoPlayers, input.OwnerID)
	}

	rosters := draft.Allocate(players, names)

	now := s.now().UTC()
	views := make([]TeamView, 0, len(rosters))

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.membershipRepo.CloseOpenByOwner(ctx, input.OwnerID, now); err != nil {
			return fmt.Errorf("close open memberships: %w", err)
		}
		if err := s.playerRepo.ClearTeamsByOwner(ctx, input.OwnerID); err != nil {
			return fmt.Errorf("clear player team references: %w", err)
		}
		if err := s.teamRepo.DeleteByOwner(ctx, input.OwnerID); err != nil {
			return fmt.Errorf("delete previous teams: %w", err)
		}

		for _, roster := range rosters {
			teamID, err := s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate team id: %w", err)
			}

			t := team.Team{
				ID:            teamID,
				OwnerID:       input.OwnerID,
				Name:          roster.TeamName,
				MemberUserIDs: memberUserIDs(input.OwnerID, roster.Players),
				CreatedAt:     now,
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if err := s.teamRepo.Create(ctx, t); err != nil {
				return fmt.Errorf("create team %s: %w", roster.TeamName, err)
			}

			for _, p := range roster.Players {
				if err := s.playerRepo.AssignTeam(ctx, p.ID, teamID); err != nil {
					return fmt.Errorf("assign player %s to team %s: %w", p.ID, teamID, err)
				}

				membershipID, err := s.idGen.NewID()
				if err != nil {
					return fmt.Errorf("generate membership id: %w", err)
				}
				m := membership.Membership{
					ID:       membershipID,
					OwnerID:  input.OwnerID,
					PlayerID: p.ID,
					TeamID:   teamID,
					TeamName: roster.TeamName,
					JoinedAt: now,
				}
				if err := s.membershipRepo.Create(ctx, m); err != nil {
					return fmt.Errorf("open membership for player %s: %w", p.ID, err)
				}
			}

			views = append(views, TeamView{
				ID:            teamID,
				Name:          roster.TeamName,
				Players:       roster.Players,
				TotalRating:   roster.TotalRating,
				AverageRating: roster.AverageRating(),
				CreatedAt:     now,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "teams generated",
		"owner_id", input.OwnerID,
		"team_count", len(views),
		"player_count", len(players),
	)

	return views, nil
}

// ListTeams returns the owner's current teams with rosters and rating totals.
func (s *RosterService) ListTeams(ctx context.Context, ownerID string) ([]TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}

	views := make([]TeamView, 0, len(teams))
	for _, t := range teams {
		players, err := s.playerRepo.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list players for team %s: %w", t.ID, err)
		}

		total := 0
		for _, p := range players {
			total += p.Rating
		}
		average := 0.0
		if len(players) > 0 {
			average = float64(total) / float64(len(players))
		}

		views = append(views, TeamView{
			ID:            t.ID,
			Name:          t.Name,
			Players:       players,
			TotalRating:   total,
			AverageRating: average,
			CreatedAt:     t.CreatedAt,
		})
	}

	return views, nil
}

func cleanTeamNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}

	return out
}

func memberUserIDs(ownerID string, players []player.Player) []string {
	out := make([]string, 0, len(players)+1)
	seen := map[string]struct{}{ownerID: {}}
	out = append(out, ownerID)
	for _, p := range players {
		if p.UserID == "" {
			continue
		}
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		out = append(out, p.UserID)
	}

	return out
}
