package memory

import (
	"time"

	"github.com/Stembetevo/fairplay/internal/domain/player"
)

const SeedOwnerID = "demo-owner"

// SeedPlayers gives the memory driver a usable pool out of the box so
// team generation can be tried without any setup.
func SeedPlayers() []player.Player {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	mk := func(id, name string, position player.Position, rating int) player.Player {
		return player.Player{
			ID:        id,
			OwnerID:   SeedOwnerID,
			Name:      name,
			Position:  position,
			Rating:    rating,
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	return []player.Player{
		mk("seed-gk-01", "Tomas Brolin", player.PositionGoalkeeper, 82),
		mk("seed-gk-02", "Edwin Maas", player.PositionGoalkeeper, 77),
		mk("seed-def-01", "Karel Vos", player.PositionDefender, 88),
		mk("seed-def-02", "Janik Holt", player.PositionDefender, 74),
		mk("seed-def-03", "Milan Duric", player.PositionDefender, 69),
		mk("seed-mid-01", "Ravi Anand", player.PositionMidfielder, 91),
		mk("seed-mid-02", "Oscar Lindh", player.PositionMidfielder, 83),
		mk("seed-mid-03", "Pavel Novak", player.PositionMidfielder, 71),
		mk("seed-st-01", "Diego Fontes", player.PositionStriker, 95),
		mk("seed-st-02", "Luka Petric", player.PositionStriker, 86),
		mk("seed-st-03", "Sam Okoro", player.PositionStriker, 64),
		mk("seed-mid-04", "Henrik Dahl", player.PositionMidfielder, 58),
	}
}
