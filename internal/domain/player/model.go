package player

import (
	"fmt"
	"time"
)

// Position represents the on-pitch role of a player.
type Position string

const (
	PositionStriker    Position = "Striker"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionGoalkeeper Position = "Goalkeeper"
)

// positionOrder is the canonical ordering used as the draft tiebreak.
// The order is part of the allocator contract: changing it changes
// which team an equal-rated player lands on.
var positionOrder = map[Position]int{
	PositionStriker:    0,
	PositionDefender:   1,
	PositionMidfielder: 2,
	PositionGoalkeeper: 3,
}

func (p Position) Valid() bool {
	_, ok := positionOrder[p]
	return ok
}

// Order returns the canonical rank of the position. Unknown positions
// sort last so they never displace a valid one.
func (p Position) Order() int {
	order, ok := positionOrder[p]
	if !ok {
		return len(positionOrder)
	}
	return order
}

const (
	RatingMin     = 50
	RatingMax     = 100
	RatingDefault = 75
)

// Player is a rated league participant owned by one organizer.
// TeamID is empty while the player is unassigned.
type Player struct {
	ID        string
	OwnerID   string
	UserID    string
	Name      string
	Position  Position
	Rating    int
	TeamID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("player owner id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Rating < RatingMin || p.Rating > RatingMax {
		return fmt.Errorf("player rating must be between %d and %d, got %d", RatingMin, RatingMax, p.Rating)
	}

	return nil
}
