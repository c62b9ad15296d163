package services

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rpupo63/boardgame-journal/models"
)

// SearchRows flattens posts, games and plays into one searchable dataset, in that order.
func SearchRows(posts []models.Post, games []models.Game, plays []models.Play) []models.SearchRow {
	rows := make([]models.SearchRow, 0, len(posts)+len(games)+len(plays))
	for _, p := range posts {
		rows = append(rows, models.SearchRow{
			Type:     models.RowPost,
			Title:    p.Title,
			Slug:     p.Slug,
			Date:     p.Date,
			Tags:     p.Tags,
			Category: p.Category,
		})
	}
	for _, g := range games {
		rows = append(rows, models.SearchRow{
			Type:  models.RowGame,
			Title: g.Title,
			ID:    g.ID,
			Tags:  g.Tags,
		})
	}
	for _, pl := range plays {
		rows = append(rows, models.SearchRow{
			Type:   models.RowPlay,
			ID:     pl.ID,
			Date:   pl.Date,
			GameID: pl.GameID,
			Tags:   pl.Tags,
		})
	}
	return rows
}

func searchFields(row models.SearchRow) []string {
	fields := []string{row.Title, row.Slug, row.Date, row.Category, row.ID, row.GameID}
	return append(fields, row.Tags...)
}

// Search returns the rows matching query, closest first. A row matches when the
// query's characters appear in order in any of its fields, ignoring case and
// diacritics. An empty query matches nothing.
func Search(rows []models.SearchRow, query string) []models.SearchRow {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchRow{}
	}

	type hit struct {
		row  models.SearchRow
		rank int
	}

	var hits []hit
	for _, row := range rows {
		best := -1
		for _, field := range searchFields(row) {
			if field == "" {
				continue
			}
			rank := fuzzy.RankMatchNormalizedFold(query, field)
			if rank >= 0 && (best < 0 || rank < best) {
				best = rank
			}
		}
		if best >= 0 {
			hits = append(hits, hit{row: row, rank: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	results := make([]models.SearchRow, len(hits))
	for i, h := range hits {
		results[i] = h.row
	}
	return results
}
