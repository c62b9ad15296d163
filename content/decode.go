package content

import (
	"github.com/rpupo63/boardgame-journal/frontmatter"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/normalize"
)

var playGameKeys = []string{"gameId", "game"}

func gameFromDocument(doc frontmatter.Document) models.Game {
	md := doc.Metadata
	game := models.Game{
		ID:         identifier(md, "id", doc.Name),
		Title:      normalize.Scalar(md["title"]),
		Designer:   normalize.Scalar(md["designer"]),
		Publisher:  normalize.Scalar(md["publisher"]),
		MinPlayers: normalize.Int(md["minPlayers"]),
		MaxPlayers: normalize.Int(md["maxPlayers"]),
		PlayTime:   normalize.Int(md["playTime"]),
		Weight:     normalize.Float(md["weight"]),
		Tags:       normalize.Tags(md["tags"]),
		BGGID:      normalize.Int(md["bggId"]),
		Image:      normalize.String(md["image"]),
		Body:       doc.Body,
	}
	if game.Title == "" {
		game.Title = game.ID
	}
	return game
}

func playFromDocument(doc frontmatter.Document) models.Play {
	md := doc.Metadata
	rawGame, _ := normalize.First(md, playGameKeys...)
	return models.Play{
		ID:       identifier(md, "id", doc.Name),
		Date:     normalize.ContentDate(md["date"]),
		GameID:   normalize.Scalar(rawGame),
		Location: normalize.String(md["location"]),
		Players:  normalize.Players(md["players"]),
		Notes:    normalize.String(md["notes"]),
		Tags:     normalize.ExtractTags(md),
		Image:    normalize.String(md["image"]),
		Body:     doc.Body,
		Source:   models.SourceLocal,
	}
}

func postFromDocument(doc frontmatter.Document) models.Post {
	md := doc.Metadata
	post := models.Post{
		Slug:     identifier(md, "slug", doc.Name),
		Title:    normalize.Scalar(md["title"]),
		Date:     normalize.ContentDate(md["date"]),
		Category: normalize.Scalar(md["category"]),
		Tags:     normalize.Tags(md["tags"]),
		Excerpt:  normalize.String(md["excerpt"]),
		Body:     doc.Body,
	}
	if post.Title == "" {
		post.Title = post.Slug
	}
	return post
}
