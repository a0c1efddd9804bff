package draft

import (
	"sort"

	"github.com/Stembetevo/fairplay/internal/domain/player"
)

// Roster is one team's share of a draft allocation, in pick order.
type Roster struct {
	TeamName    string
	Players     []player.Player
	TotalRating int
}

// AverageRating returns the mean rating of the roster, 0 for an empty one.
func (r Roster) AverageRating() float64 {
	if len(r.Players) == 0 {
		return 0
	}
	return float64(r.TotalRating) / float64(len(r.Players))
}

// Allocate partitions players across teamNames with a serpentine draft:
// players sorted by rating descending (position order breaks ties) are
// dealt round by round, reversing the slot direction on odd rounds so no
// team systematically receives the weakest pick of every round.
//
// Rosters come back in teamNames order, one per name even when empty, so
// duplicate names each keep their own roster. An empty player list is not
// an error; an empty teamNames list is the caller's misconfiguration and
// must be rejected before calling.
func Allocate(players []player.Player, teamNames []string) []Roster {
	rosters := make([]Roster, len(teamNames))
	for i, name := range teamNames {
		rosters[i] = Roster{TeamName: name, Players: []player.Player{}}
	}
	if len(teamNames) == 0 || len(players) == 0 {
		return rosters
	}

	ordered := sortForDraft(players)

	teamCount := len(teamNames)
	for i, p := range ordered {
		round := i / teamCount
		slot := i % teamCount
		if round%2 == 1 {
			slot = teamCount - 1 - slot
		}
		rosters[slot].Players = append(rosters[slot].Players, p)
		rosters[slot].TotalRating += p.Rating
	}

	return rosters
}

// sortForDraft orders players by rating descending, then by canonical
// position order. The tiebreak is a fixed contract: it is what makes two
// runs over the same players produce the same teams.
func sortForDraft(players []player.Player) []player.Player {
	ordered := append([]player.Player(nil), players...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Rating != ordered[j].Rating {
			return ordered[i].Rating > ordered[j].Rating
		}
		return ordered[i].Position.Order() < ordered[j].Position.Order()
	})

	return ordered
}
