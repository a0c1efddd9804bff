package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/match"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/domain/team"
	"github.com/Stembetevo/fairplay/internal/infrastructure/repository/memory"
	"github.com/Stembetevo/fairplay/internal/platform/cache"
)

const matchTestOwner = "owner-1"

func newMatchFixture() (*MatchService, *memory.MatchRepository) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	teams := memory.NewTeamRepository([]team.Team{
		{ID: "team-home", OwnerID: matchTestOwner, Name: "Reds", CreatedAt: created},
		{ID: "team-away", OwnerID: matchTestOwner, Name: "Blues", CreatedAt: created},
	})
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "p-1", OwnerID: matchTestOwner, Name: "Ana Reyes", Position: player.PositionStriker, Rating: 90, TeamID: "team-home", CreatedAt: created, UpdatedAt: created},
		{ID: "p-2", OwnerID: matchTestOwner, Name: "Bo Lindqvist", Position: player.PositionDefender, Rating: 80, TeamID: "team-home", CreatedAt: created, UpdatedAt: created},
		{ID: "p-3", OwnerID: matchTestOwner, Name: "Caio Duarte", Position: player.PositionMidfielder, Rating: 85, TeamID: "team-away", CreatedAt: created, UpdatedAt: created},
	})
	matches := memory.NewMatchRepository(nil)

	svc := NewMatchService(matches, teams, players, cache.NewStore(time.Minute), newSeqIDGen(), nil)

	return svc, matches
}

func TestMatchService_ScheduleMatch_Success(t *testing.T) {
	svc, _ := newMatchFixture()
	fixed := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	m, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-away",
	})
	if err != nil {
		t.Fatalf("schedule match failed: %v", err)
	}

	if m.Status != match.StatusScheduled {
		t.Fatalf("unexpected status: %s", m.Status)
	}
	if !m.ScheduledAt.Equal(fixed) {
		t.Fatalf("expected kickoff defaulted to now, got %v", m.ScheduledAt)
	}
	if m.HomeScore != nil || m.AwayScore != nil {
		t.Fatal("scores must stay unset until a result is recorded")
	}

	listed, err := svc.ListMatches(t.Context(), matchTestOwner)
	if err != nil {
		t.Fatalf("list matches failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != m.ID {
		t.Fatalf("expected the scheduled match in the listing, got %+v", listed)
	}
}

func TestMatchService_ScheduleMatch_UnknownTeam(t *testing.T) {
	svc, _ := newMatchFixture()

	_, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-missing",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_ScheduleMatch_SameTeamTwice(t *testing.T) {
	svc, _ := newMatchFixture()

	_, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-home",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_RecordResult_SnapshotsRosters(t *testing.T) {
	svc, _ := newMatchFixture()

	scheduled, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-away",
	})
	if err != nil {
		t.Fatalf("schedule match failed: %v", err)
	}

	played, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID:   matchTestOwner,
		MatchID:   scheduled.ID,
		HomeScore: 3,
		AwayScore: 1,
	})
	if err != nil {
		t.Fatalf("record result failed: %v", err)
	}

	if played.Status != match.StatusPlayed {
		t.Fatalf("unexpected status: %s", played.Status)
	}
	if played.HomeScore == nil || *played.HomeScore != 3 {
		t.Fatalf("unexpected home score: %v", played.HomeScore)
	}
	if played.AwayScore == nil || *played.AwayScore != 1 {
		t.Fatalf("unexpected away score: %v", played.AwayScore)
	}

	got, participations, err := svc.GetMatch(t.Context(), matchTestOwner, scheduled.ID)
	if err != nil {
		t.Fatalf("get match failed: %v", err)
	}
	if !got.Played() {
		t.Fatal("expected a played match")
	}
	if len(participations) != 3 {
		t.Fatalf("expected 3 participants snapshotted, got %d", len(participations))
	}
	bySide := map[string]int{}
	for _, p := range participations {
		bySide[p.TeamID]++
	}
	if bySide["team-home"] != 2 || bySide["team-away"] != 1 {
		t.Fatalf("unexpected roster split: %+v", bySide)
	}
}

func TestMatchService_RecordResult_OverwritesPreviousResult(t *testing.T) {
	svc, _ := newMatchFixture()

	scheduled, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-away",
	})
	if err != nil {
		t.Fatalf("schedule match failed: %v", err)
	}

	if _, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID: matchTestOwner, MatchID: scheduled.ID, HomeScore: 1, AwayScore: 1,
	}); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	final, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID: matchTestOwner, MatchID: scheduled.ID, HomeScore: 2, AwayScore: 4,
	})
	if err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	if *final.HomeScore != 2 || *final.AwayScore != 4 {
		t.Fatalf("expected the corrected score, got %d-%d", *final.HomeScore, *final.AwayScore)
	}
}

func TestMatchService_RecordResult_NegativeScore(t *testing.T) {
	svc, _ := newMatchFixture()

	_, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID:   matchTestOwner,
		MatchID:   "any-match",
		HomeScore: -1,
		AwayScore: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_RecordResult_NotFound(t *testing.T) {
	svc, _ := newMatchFixture()

	_, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID:   matchTestOwner,
		MatchID:   "missing-match",
		HomeScore: 1,
		AwayScore: 0,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_RecordResult_CancelledMatch(t *testing.T) {
	svc, matches := newMatchFixture()

	cancelled := match.Match{
		ID:          "match-cancelled",
		OwnerID:     matchTestOwner,
		HomeTeamID:  "team-home",
		AwayTeamID:  "team-away",
		ScheduledAt: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC),
		Status:      match.StatusCancelled,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := matches.Create(t.Context(), cancelled); err != nil {
		t.Fatalf("seed cancelled match: %v", err)
	}

	_, err := svc.RecordResult(t.Context(), RecordResultInput{
		OwnerID:   matchTestOwner,
		MatchID:   cancelled.ID,
		HomeScore: 1,
		AwayScore: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_GetMatch_OwnerScoped(t *testing.T) {
	svc, _ := newMatchFixture()

	scheduled, err := svc.ScheduleMatch(t.Context(), ScheduleMatchInput{
		OwnerID:    matchTestOwner,
		HomeTeamID: "team-home",
		AwayTeamID: "team-away",
	})
	if err != nil {
		t.Fatalf("schedule match failed: %v", err)
	}

	_, _, err = svc.GetMatch(t.Context(), "someone-else", scheduled.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
