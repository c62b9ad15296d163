// Package content reads the journal's markdown collections from layered content
// roots and writes uploaded documents back into them.
package content

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rpupo63/boardgame-journal/frontmatter"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/normalize"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Repository re-reads its roots on every call, so files written between calls are
// visible immediately. It holds no mutable state and is safe for concurrent use.
type Repository struct {
	roots  Roots
	reader frontmatter.Reader
	logger zerolog.Logger
}

func NewRepository(roots Roots, logger zerolog.Logger) *Repository {
	return &Repository{
		roots:  roots,
		reader: frontmatter.NewReader(logger),
		logger: logger,
	}
}

func (r *Repository) Roots() Roots {
	return r.roots
}

// documents returns the documents of one subdirectory across all roots. A filename
// claimed by a higher-priority root shadows the same filename in lower roots.
func (r *Repository) documents(dir string) []frontmatter.Document {
	claimed := map[string]bool{}
	var docs []frontmatter.Document

	for _, root := range r.roots.Read() {
		for doc := range r.reader.ReadDir(filepath.Join(root, dir)) {
			if claimed[doc.Name] {
				continue
			}
			claimed[doc.Name] = true
			docs = append(docs, doc)
		}
	}
	return docs
}

// identifier prefers an explicit metadata field and falls back to the filename stem.
func identifier(metadata map[string]any, key, filename string) string {
	if id := normalize.Scalar(metadata[key]); id != "" {
		return id
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// uniqueByID keeps one entry per id: the position of the first, the value of the last.
func uniqueByID[T any](items []T, id func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := id(item)
		if i, ok := index[key]; ok {
			out[i] = item
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

func sortByDateDesc[T any](items []T, date func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]) > date(items[j])
	})
}

// sortForDisplay orders labels the way a Japanese reader expects.
func sortForDisplay(values []string) []string {
	collate.New(language.Japanese).SortStrings(values)
	return values
}

// Games lists every game in read order.
func (r *Repository) Games() []models.Game {
	docs := r.documents(CollectionGames)
	games := make([]models.Game, 0, len(docs))
	for _, doc := range docs {
		games = append(games, gameFromDocument(doc))
	}
	return uniqueByID(games, func(g models.Game) string { return g.ID })
}

func (r *Repository) GameByID(id string) (models.Game, bool) {
	for _, game := range r.Games() {
		if game.ID == id {
			return game, true
		}
	}
	return models.Game{}, false
}

// Plays lists local play sessions, newest first.
func (r *Repository) Plays() []models.Play {
	docs := r.documents(CollectionPlays)
	plays := make([]models.Play, 0, len(docs))
	for _, doc := range docs {
		plays = append(plays, playFromDocument(doc))
	}
	plays = uniqueByID(plays, func(p models.Play) string { return p.ID })
	sortByDateDesc(plays, func(p models.Play) string { return p.Date })
	return plays
}

func (r *Repository) PlayByID(id string) (models.Play, bool) {
	for _, play := range r.Plays() {
		if play.ID == id {
			return play, true
		}
	}
	return models.Play{}, false
}

// PlaysByGame lists local plays of one game, newest first.
func (r *Repository) PlaysByGame(gameID string) []models.Play {
	var plays []models.Play
	for _, play := range r.Plays() {
		if play.GameID == gameID {
			plays = append(plays, play)
		}
	}
	return plays
}

// Posts lists articles, newest first.
func (r *Repository) Posts() []models.Post {
	docs := r.documents(CollectionPosts)
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, postFromDocument(doc))
	}
	posts = uniqueByID(posts, func(p models.Post) string { return p.Slug })
	sortByDateDesc(posts, func(p models.Post) string { return p.Date })
	return posts
}

func (r *Repository) PostBySlug(slug string) (models.Post, bool) {
	for _, post := range r.Posts() {
		if post.Slug == slug {
			return post, true
		}
	}
	return models.Post{}, false
}

func (r *Repository) PostsByCategory(category string) []models.Post {
	var posts []models.Post
	for _, post := range r.Posts() {
		if post.Category == category {
			posts = append(posts, post)
		}
	}
	return posts
}

func (r *Repository) PostsByTag(tag string) []models.Post {
	var posts []models.Post
	for _, post := range r.Posts() {
		for _, t := range post.Tags {
			if t == tag {
				posts = append(posts, post)
				break
			}
		}
	}
	return posts
}

// Categories returns the distinct, non-empty post categories.
func (r *Repository) Categories() []string {
	seen := map[string]bool{}
	var categories []string
	for _, post := range r.Posts() {
		if post.Category == "" || seen[post.Category] {
			continue
		}
		seen[post.Category] = true
		categories = append(categories, post.Category)
	}
	return sortForDisplay(categories)
}

// Tags returns the distinct post tags.
func (r *Repository) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, post := range r.Posts() {
		for _, tag := range post.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return sortForDisplay(tags)
}
