package httpapi

import (
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/match"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/usecase"
)

type playerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Rating    int    `json:"rating"`
	TeamID    string `json:"teamId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type teamDTO struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Players       []playerDTO `json:"players"`
	TotalRating   int         `json:"totalRating"`
	AverageRating float64     `json:"averageRating"`
	CreatedAt     string      `json:"createdAt"`
}

type recordDTO struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
}

type timelineEntryDTO struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	JoinedAt   string `json:"joinedAt"`
	LeftAt     string `json:"leftAt,omitempty"`
	Current    bool   `json:"current"`
}

type teamDetailDTO struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Players       []playerDTO        `json:"players"`
	TotalRating   int                `json:"totalRating"`
	AverageRating float64            `json:"averageRating"`
	Record        recordDTO          `json:"record"`
	Timeline      []timelineEntryDTO `json:"timeline"`
	CreatedAt     string             `json:"createdAt"`
}

type matchDTO struct {
	ID          string `json:"id"`
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	ScheduledAt string `json:"scheduledAt"`
	Status      string `json:"status"`
	HomeScore   *int   `json:"homeScore,omitempty"`
	AwayScore   *int   `json:"awayScore,omitempty"`
}

type participationDTO struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

type matchDetailDTO struct {
	Match          matchDTO           `json:"match"`
	Participations []participationDTO `json:"participations"`
}

type summaryRowDTO struct {
	TeamID        string    `json:"teamId"`
	Name          string    `json:"name"`
	PlayerCount   int       `json:"playerCount"`
	TotalRating   int       `json:"totalRating"`
	AverageRating float64   `json:"averageRating"`
	Record        recordDTO `json:"record"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Position:  string(v.Position),
		Rating:    v.Rating,
		TeamID:    v.TeamID,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	return items
}

func teamViewToDTO(v usecase.TeamView) teamDTO {
	return teamDTO{
		ID:            v.ID,
		Name:          v.Name,
		Players:       playersToDTO(v.Players),
		TotalRating:   v.TotalRating,
		AverageRating: v.AverageRating,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func recordToDTO(v usecase.TeamRecord) recordDTO {
	return recordDTO{
		Played:       v.Played,
		Won:          v.Won,
		Drawn:        v.Drawn,
		Lost:         v.Lost,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
	}
}

func timelineToDTO(entries []usecase.TimelineEntry) []timelineEntryDTO {
	items := make([]timelineEntryDTO, 0, len(entries))
	for _, entry := range entries {
		leftAt := ""
		if entry.Membership.LeftAt != nil {
			leftAt = entry.Membership.LeftAt.UTC().Format(time.RFC3339)
		}
		items = append(items, timelineEntryDTO{
			PlayerID:   entry.Membership.PlayerID,
			PlayerName: entry.PlayerName,
			TeamID:     entry.Membership.TeamID,
			TeamName:   entry.Membership.TeamName,
			JoinedAt:   entry.Membership.JoinedAt.UTC().Format(time.RFC3339),
			LeftAt:     leftAt,
			Current:    entry.Current,
		})
	}
	return items
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		ScheduledAt: v.ScheduledAt.UTC().Format(time.RFC3339),
		Status:      v.Status,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
	}
}

func participationsToDTO(items []match.Participation) []participationDTO {
	out := make([]participationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participationDTO{
			PlayerID: item.PlayerID,
			TeamID:   item.TeamID,
			Goals:    item.Goals,
			Assists:  item.Assists,
		})
	}
	return out
}
