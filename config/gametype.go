package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	GameUnknown = iota
	GameDarkAlliance
	GameChampionsOfNorrath
	GameChampionsRTA
	GameJusticeLeagueHeroes
)

type GameType int

var gameNames = map[GameType]string{
	GameUnknown:             "Unknown",
	GameDarkAlliance:        "Dark Alliance",
	GameChampionsOfNorrath:  "Champions of Norrath",
	GameChampionsRTA:        "Return to Arms",
	GameJusticeLeagueHeroes: "Justice League Heroes",
}

// short names accepted on the command line
var gameAliases = map[string]GameType{
	"bgda":  GameDarkAlliance,
	"da":    GameDarkAlliance,
	"con":   GameChampionsOfNorrath,
	"cnorr": GameChampionsOfNorrath,
	"rta":   GameChampionsRTA,
	"jlh":   GameJusticeLeagueHeroes,
}

func (g GameType) String() string {
	if name, ok := gameNames[g]; ok {
		return name
	}
	return fmt.Sprintf("GameType(%d)", int(g))
}

// Dark Alliance stores animation as a byte stream and names archive members inline.
// Every later title uses the bit stream and a string table.
func (g GameType) IsLegacy() bool {
	return g == GameDarkAlliance
}

func ParseGameType(s string) (GameType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if g, ok := gameAliases[key]; ok {
		return g, nil
	}
	for g, name := range gameNames {
		if g != GameUnknown && strings.ToLower(name) == key {
			return g, nil
		}
	}
	return GameUnknown, errors.Errorf("Unknown game %q", s)
}

var currentGame GameType = GameDarkAlliance

func GetGameType() GameType {
	return currentGame
}

func SetGameType(g GameType) {
	currentGame = g
}
