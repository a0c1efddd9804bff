package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/Stembetevo/fairplay/internal/domain/match"
	"github.com/Stembetevo/fairplay/internal/domain/membership"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/domain/team"
	"github.com/Stembetevo/fairplay/internal/platform/cache"
)

const summaryWorkerCount = 4

// TeamRecord is a team's win/draw/loss tally over played matches.
type TeamRecord struct {
	TeamID       string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

// TimelineEntry is one membership interval, newest first in listings.
type TimelineEntry struct {
	Membership membership.Membership
	PlayerName string
	Current    bool
}

// TeamDetail bundles everything the team page shows.
type TeamDetail struct {
	Team          team.Team
	Players       []player.Player
	TotalRating   int
	AverageRating float64
	Record        TeamRecord
	Timeline      []TimelineEntry
}

// TeamSummary is one row of the league summary table.
type TeamSummary struct {
	TeamID        string
	Name          string
	PlayerCount   int
	TotalRating   int
	AverageRating float64
	Record        TeamRecord
}

type HistoryService struct {
	teamRepo       team.Repository
	playerRepo     player.Repository
	membershipRepo membership.Repository
	matchRepo      match.Repository
	records        *cache.Store
	logger         *slog.Logger
}

func NewHistoryService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	membershipRepo membership.Repository,
	matchRepo match.Repository,
	records *cache.Store,
	logger *slog.Logger,
) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		membershipRepo: membershipRepo,
		matchRepo:      matchRepo,
		records:        records,
		logger:         logger,
	}
}

// TeamRecordFor computes W/D/L and goals for one team. Only matches with
// status PLAYED and both scores present count; strictly higher score wins.
func (s *HistoryService) TeamRecordFor(ctx context.Context, ownerID, teamID string) (TeamRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.TeamRecordFor")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return TeamRecord{}, fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	if _, exists, err := s.teamRepo.GetByID(ctx, ownerID, teamID); err != nil {
		return TeamRecord{}, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return TeamRecord{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return s.loadRecord(ctx, teamID)
}

func teamRecordCacheKey(teamID string) string {
	return "team-record:" + teamID
}

func (s *HistoryService) loadRecord(ctx context.Context, teamID string) (TeamRecord, error) {
	value, err := s.records.GetOrLoad(ctx, teamRecordCacheKey(teamID), func() (any, error) {
		matches, err := s.matchRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("list matches for team %s: %w", teamID, err)
		}
		return computeRecord(teamID, matches), nil
	})
	if err != nil {
		return TeamRecord{}, err
	}

	record, ok := value.(TeamRecord)
	if !ok {
		return TeamRecord{}, fmt.Errorf("unexpected cached value for team %s", teamID)
	}

	return record, nil
}

// TeamTimeline returns a team's membership history, newest joins first.
func (s *HistoryService) TeamTimeline(ctx context.Context, ownerID, teamID string) ([]TimelineEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.TeamTimeline")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	if _, exists, err := s.teamRepo.GetByID(ctx, ownerID, teamID); err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	memberships, err := s.membershipRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list memberships for team %s: %w", teamID, err)
	}

	return s.toTimeline(ctx, ownerID, memberships)
}

// OwnerHistory returns every membership interval across the owner's
// players, newest joins first. Entries with no departure are current.
func (s *HistoryService) OwnerHistory(ctx context.Context, ownerID string) ([]TimelineEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.OwnerHistory")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}

	memberships := make([]membership.Membership, 0, len(players)*2)
	for _, p := range players {
		items, err := s.membershipRepo.ListByPlayer(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list memberships for player %s: %w", p.ID, err)
		}
		memberships = append(memberships, items...)
	}

	return s.toTimeline(ctx, ownerID, memberships)
}

// TeamDetail fans out the roster, record, and timeline fetches
// concurrently and assembles the team page payload.
func (s *HistoryService) TeamDetail(ctx context.Context, ownerID, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.TeamDetail")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return TeamDetail{}, fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, ownerID, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	var (
		players  []player.Player
		record   TeamRecord
		timeline []TimelineEntry
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list players for team %s: %w", teamID, err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		r, err := s.loadRecord(ctx, teamID)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	p.Go(func(ctx context.Context) error {
		memberships, err := s.membershipRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list memberships for team %s: %w", teamID, err)
		}
		entries, err := s.toTimeline(ctx, ownerID, memberships)
		if err != nil {
			return err
		}
		timeline = entries
		return nil
	})
	if err := p.Wait(); err != nil {
		return TeamDetail{}, err
	}

	total := 0
	for _, p := range players {
		total += p.Rating
	}
	average := 0.0
	if len(players) > 0 {
		average = float64(total) / float64(len(players))
	}

	return TeamDetail{
		Team:          t,
		Players:       players,
		TotalRating:   total,
		AverageRating: average,
		Record:        record,
		Timeline:      timeline,
	}, nil
}

// LeagueSummary computes every team's record on a small worker pool; one
// slow team lookup does not serialize the rest.
func (s *HistoryService) LeagueSummary(ctx context.Context, ownerID string) ([]TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.LeagueSummary")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}
	if len(teams) == 0 {
		return []TeamSummary{}, nil
	}

	workerCount := summaryWorkerCount
	if len(teams) < workerCount {
		workerCount = len(teams)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	type summaryResult struct {
		summary TeamSummary
		err     error
	}

	results := make(chan summaryResult, len(teams))
	var wg sync.WaitGroup
	for _, t := range teams {
		t := t
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			summary, err := s.summarizeTeam(ctx, t)
			results <- summaryResult{summary: summary, err: err}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit team summary task: %w", err)
		}
	}

	wg.Wait()
	close(results)

	out := make([]TeamSummary, 0, len(teams))
	for row := range results {
		if row.err != nil {
			return nil, row.err
		}
		out = append(out, row.summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].Record, out[j].Record
		if left.Won != right.Won {
			return left.Won > right.Won
		}
		leftDiff := left.GoalsFor - left.GoalsAgainst
		rightDiff := right.GoalsFor - right.GoalsAgainst
		if leftDiff != rightDiff {
			return leftDiff > rightDiff
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (s *HistoryService) summarizeTeam(ctx context.Context, t team.Team) (TeamSummary, error) {
	players, err := s.playerRepo.ListByTeam(ctx, t.ID)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("list players for team %s: %w", t.ID, err)
	}
	record, err := s.loadRecord(ctx, t.ID)
	if err != nil {
		return TeamSummary{}, err
	}

	total := 0
	for _, p := range players {
		total += p.Rating
	}
	average := 0.0
	if len(players) > 0 {
		average = float64(total) / float64(len(players))
	}

	return TeamSummary{
		TeamID:        t.ID,
		Name:          t.Name,
		PlayerCount:   len(players),
		TotalRating:   total,
		AverageRating: average,
		Record:        record,
	}, nil
}

func (s *HistoryService) toTimeline(ctx context.Context, ownerID string, memberships []membership.Membership) ([]TimelineEntry, error) {
	players, err := s.playerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}
	nameByPlayerID := make(map[string]string, len(players))
	for _, p := range players {
		nameByPlayerID[p.ID] = p.Name
	}

	entries := make([]TimelineEntry, 0, len(memberships))
	for _, m := range memberships {
		entries = append(entries, TimelineEntry{
			Membership: m,
			PlayerName: nameByPlayerID[m.PlayerID],
			Current:    m.Open(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Membership.JoinedAt.After(entries[j].Membership.JoinedAt)
	})

	return entries, nil
}

func computeRecord(teamID string, matches []match.Match) TeamRecord {
	record := TeamRecord{TeamID: teamID}
	for _, m := range matches {
		if !m.Played() {
			continue
		}

		var scored, conceded int
		switch teamID {
		case m.HomeTeamID:
			scored, conceded = *m.HomeScore, *m.AwayScore
		case m.AwayTeamID:
			scored, conceded = *m.AwayScore, *m.HomeScore
		default:
			continue
		}

		record.Played++
		record.GoalsFor += scored
		record.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			record.Won++
		case scored < conceded:
			record.Lost++
		default:
			record.Drawn++
		}
	}

	return record
}
