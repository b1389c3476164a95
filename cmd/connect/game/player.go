package game

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type playerSet struct {
	Red    Player
	Yellow Player
}

// Players represents the set of players that can be used. Red always moves
// first in a new game.
var Players = playerSet{
	Red:    newPlayer("red"),
	Yellow: newPlayer("yellow"),
}

// =============================================================================

// Set of known players.
var players = make(map[string]Player)

// Player represents a player in the system. The zero value means no player
// and is never allowed to move.
type Player struct {
	name string
}

func newPlayer(player string) Player {
	p := Player{player}
	players[player] = p
	return p
}

// IsZero checks of the player is set to its zero value.
func (p Player) IsZero() bool {
	return p.name == ""
}

// IsValid reports whether the player is one of the known players.
func (p Player) IsValid() bool {
	_, exists := players[p.name]
	return exists
}

// Opponent returns the player that moves after p.
func (p Player) Opponent() Player {
	switch p {
	case Players.Red:
		return Players.Yellow
	case Players.Yellow:
		return Players.Red
	}

	return Player{}
}

// String returns the name of the player.
func (p Player) String() string {
	return p.name
}

// Title returns the name of the player formatted for display.
func (p Player) Title() string {
	return cases.Title(language.English).String(p.name)
}

// Equal provides support for the go-cmp package and testing.
func (p Player) Equal(p2 Player) bool {
	return p.name == p2.name
}

// =============================================================================

// ParsePlayer parses the string value and returns a player if one exists.
func ParsePlayer(value string) (Player, error) {
	player, exists := players[value]
	if !exists {
		return Player{}, fmt.Errorf("%w: %q", ErrInvalidPlayer, value)
	}

	return player, nil
}

// MustParsePlayer parses the string value and returns a player if one exists. If
// an error occurs the function panics.
func MustParsePlayer(value string) Player {
	player, err := ParsePlayer(value)
	if err != nil {
		panic(err)
	}

	return player
}
