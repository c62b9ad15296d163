package normalize

import "github.com/rpupo63/boardgame-journal/models"

var (
	playerNameKeys = []string{"name", "player"}
	playerWinKeys  = []string{"win", "isWinner"}
)

// Players decodes a list of player names or player records. Entries without a
// name are dropped. Anything that is not a list, or a list with no usable entry,
// yields nil.
func Players(v any) []models.Player {
	var entries []any
	switch t := v.(type) {
	case []any:
		entries = t
	case []string:
		for _, name := range t {
			entries = append(entries, name)
		}
	case []map[string]any:
		for _, record := range t {
			entries = append(entries, record)
		}
	default:
		return nil
	}

	var players []models.Player
	for _, entry := range entries {
		switch t := entry.(type) {
		case map[string]any:
			if player, ok := decodePlayer(t); ok {
				players = append(players, player)
			}
		case string:
			if name := String(t); name != "" {
				players = append(players, models.Player{Name: name})
			}
		}
	}
	return players
}

func decodePlayer(record map[string]any) (models.Player, bool) {
	rawName, _ := First(record, playerNameKeys...)
	name := Scalar(rawName)
	if name == "" {
		return models.Player{}, false
	}

	player := models.Player{Name: name}
	player.Score = Float(record["score"])
	if rawWin, ok := First(record, playerWinKeys...); ok {
		player.Win = Bool(rawWin)
	}
	return player, true
}
