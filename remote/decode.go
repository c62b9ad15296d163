package remote

import (
	"time"

	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/normalize"
)

// Candidate keys per field, in precedence order.
var (
	idKeys       = []string{"id"}
	gameKeys     = []string{"gameId", "game"}
	dateKeys     = []string{"date"}
	locationKeys = []string{"location"}
	notesKeys    = []string{"notes"}
	imageKeys    = []string{"image"}
	playersKeys  = []string{"players"}
)

func field(record map[string]any, keys []string) any {
	v, _ := normalize.First(record, keys...)
	return v
}

// decodePlay maps one raw row to a Play. Rows without an id or a game reference
// are rejected; every other field is best effort.
func decodePlay(record map[string]any, loc *time.Location) (models.Play, bool) {
	id := normalize.Scalar(field(record, idKeys))
	gameID := normalize.Scalar(field(record, gameKeys))
	if id == "" || gameID == "" {
		return models.Play{}, false
	}

	return models.Play{
		ID:       id,
		GameID:   gameID,
		Date:     normalize.Date(field(record, dateKeys), loc),
		Location: normalize.String(field(record, locationKeys)),
		Players:  normalize.Players(field(record, playersKeys)),
		Notes:    normalize.String(field(record, notesKeys)),
		Tags:     normalize.ExtractTags(record),
		Image:    normalize.String(field(record, imageKeys)),
		Source:   models.SourceRemote,
	}, true
}

// decodePlays keeps the rows that decode and silently drops the rest.
func decodePlays(items []any, loc *time.Location) []models.Play {
	plays := make([]models.Play, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if play, ok := decodePlay(record, loc); ok {
			plays = append(plays, play)
		}
	}
	return plays
}
