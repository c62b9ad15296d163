package content

import "github.com/rpupo63/boardgame-journal/models"

// MergePlays combines local and remote sessions into one list keyed by id. Local
// sessions are inserted first and remote ones on top, so a remote session replaces
// a local one with the same id. Sessions without an id or a date are dropped and
// the result is ordered newest first.
func MergePlays(local, remote []models.Play) []models.Play {
	index := map[string]int{}
	var merged []models.Play

	put := func(play models.Play) {
		if play.ID == "" {
			return
		}
		if i, ok := index[play.ID]; ok {
			merged[i] = play
			return
		}
		index[play.ID] = len(merged)
		merged = append(merged, play)
	}
	for _, play := range local {
		put(play)
	}
	for _, play := range remote {
		put(play)
	}

	dated := make([]models.Play, 0, len(merged))
	for _, play := range merged {
		if play.Date != "" {
			dated = append(dated, play)
		}
	}
	sortByDateDesc(dated, func(p models.Play) string { return p.Date })
	return dated
}
