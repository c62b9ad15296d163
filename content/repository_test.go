package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, dir, name, content string) {
	t.Helper()
	full := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(full, name), []byte(content), 0o644))
}

func newTestRepo(t *testing.T) (*Repository, Roots) {
	t.Helper()
	base := t.TempDir()
	roots := Roots{
		Override: filepath.Join(base, "override"),
		Default:  filepath.Join(base, "default"),
	}
	return NewRepository(roots, zerolog.Nop()), roots
}

func TestRootsFromConfig(t *testing.T) {
	roots := RootsFromConfig(map[string]string{"CONTENT_BASE_DIR": " data/content "}, "/srv/app")
	assert.Equal(t, "/srv/app/data/content", roots.Override)
	assert.Equal(t, "/srv/app/content", roots.Default)
	assert.Equal(t, []string{"/srv/app/data/content", "/srv/app/content"}, roots.Read())
	assert.Equal(t, "/srv/app/data/content", roots.Write())

	roots = RootsFromConfig(map[string]string{"CONTENT_BASE_DIR": "  "}, "/srv/app")
	assert.Empty(t, roots.Override)
	assert.Equal(t, []string{"/srv/app/content"}, roots.Read())
	assert.Equal(t, "/srv/app/content", roots.Write())

	roots = RootsFromConfig(map[string]string{"CONTENT_BASE_DIR": "/var/journal"}, "/srv/app")
	assert.Equal(t, "/var/journal", roots.Override)
}

func TestOverrideRootShadowsWholeFile(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "games", "x.md", "---\ntitle: Default X\ndesigner: Someone\n---\ndefault body")
	writeDoc(t, roots.Override, "games", "x.md", "---\ntitle: Override X\n---\noverride body")
	writeDoc(t, roots.Default, "games", "y.md", "---\ntitle: Y\n---\n")

	games := repo.Games()
	require.Len(t, games, 2)

	x, ok := repo.GameByID("x")
	require.True(t, ok)
	assert.Equal(t, "Override X", x.Title)
	assert.Empty(t, x.Designer, "fields are not merged across roots")
	assert.Equal(t, "override body", x.Body)

	_, ok = repo.GameByID("y")
	assert.True(t, ok)
}

func TestGameFields(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "games", "azul.mdx", `---
id: azul-2017
title: Azul
designer: Michael Kiesling
publisher: Plan B
minPlayers: 2
maxPlayers: 4
playTime: 45
weight: 1.77
bggId: 230802
tags: [abstract, tiles, abstract]
image: /images/azul.jpg
---
Pretty tiles.
`)
	writeDoc(t, roots.Default, "games", "untitled.md", "no header at all")

	azul, ok := repo.GameByID("azul-2017")
	require.True(t, ok)
	assert.Equal(t, "Azul", azul.Title)
	assert.Equal(t, "Michael Kiesling", azul.Designer)
	assert.Equal(t, "Plan B", azul.Publisher)
	assert.Equal(t, 2, *azul.MinPlayers)
	assert.Equal(t, 4, *azul.MaxPlayers)
	assert.Equal(t, 45, *azul.PlayTime)
	assert.Equal(t, 1.77, *azul.Weight)
	assert.Equal(t, 230802, *azul.BGGID)
	assert.Equal(t, []string{"abstract", "tiles"}, azul.Tags)
	assert.Equal(t, "/images/azul.jpg", azul.Image)
	assert.Equal(t, "Pretty tiles.\n", azul.Body)

	untitled, ok := repo.GameByID("untitled")
	require.True(t, ok)
	assert.Equal(t, "untitled", untitled.Title)
	assert.Nil(t, untitled.MinPlayers)
	assert.Equal(t, "no header at all", untitled.Body)
}

func TestLookupMissReturnsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, ok := repo.GameByID("nope")
	assert.False(t, ok)
	_, ok = repo.PlayByID("nope")
	assert.False(t, ok)
	_, ok = repo.PostBySlug("nope")
	assert.False(t, ok)
	assert.Empty(t, repo.Games())
	assert.Empty(t, repo.Plays())
	assert.Empty(t, repo.Posts())
}

func TestPlaysSortedNewestFirstWithMissingDateLast(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "plays", "a.md", "---\ndate: 2023-05-01\ngameId: go\n---\n")
	writeDoc(t, roots.Default, "plays", "b.md", "---\ndate: \"2024-01-01\"\ngameId: chess\n---\n")
	writeDoc(t, roots.Default, "plays", "c.md", "---\ndate: \"\"\ngameId: shogi\n---\n")
	writeDoc(t, roots.Default, "plays", "d.md", "---\ndate: 2024-01-01\ngameId: catan\n---\n")

	plays := repo.Plays()
	require.Len(t, plays, 4)
	assert.Equal(t, []string{"b", "d", "a", "c"}, []string{plays[0].ID, plays[1].ID, plays[2].ID, plays[3].ID})
	assert.Equal(t, "2024-01-01", plays[0].Date)
	assert.Equal(t, "2023-05-01", plays[2].Date)
	assert.Equal(t, "1970-01-01", plays[3].Date)
}

func TestPlayFields(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "plays", "2024-02-10-wingspan.md", `---
id: p-42
date: 2024-02-10
game: wingspan
location: " Cafe "
players:
  - name: Alice
    score: 88
    win: true
  - Bob
tags: "birds, #engine"
---
Close game.
`)

	play, ok := repo.PlayByID("p-42")
	require.True(t, ok)
	assert.Equal(t, "2024-02-10", play.Date)
	assert.Equal(t, "wingspan", play.GameID)
	assert.Equal(t, "Cafe", play.Location)
	require.Len(t, play.Players, 2)
	assert.Equal(t, "Alice", play.Players[0].Name)
	assert.Equal(t, 88.0, *play.Players[0].Score)
	assert.True(t, *play.Players[0].Win)
	assert.Equal(t, "Bob", play.Players[1].Name)
	assert.Equal(t, []string{"birds", "engine"}, play.Tags)
	assert.Equal(t, "local", play.Source)

	assert.Len(t, repo.PlaysByGame("wingspan"), 1)
	assert.Empty(t, repo.PlaysByGame("azul"))
}

func TestDuplicateIdentifierLastReadWins(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "plays", "a.md", "---\nid: same\ndate: 2024-01-01\ngameId: first\n---\n")
	writeDoc(t, roots.Default, "plays", "b.md", "---\nid: same\ndate: 2024-01-02\ngameId: second\n---\n")

	plays := repo.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "second", plays[0].GameID)
}

func TestMalformedHeaderDoesNotAbortCollection(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "posts", "good.md", "---\ntitle: Good\ndate: 2024-03-01\n---\n")
	writeDoc(t, roots.Default, "posts", "bad.md", "---\ntitle: [oops\n---\nbody")

	posts := repo.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "good", posts[0].Slug)
	assert.Equal(t, "bad", posts[1].Slug)
	assert.Equal(t, "bad", posts[1].Title)
	assert.Equal(t, "1970-01-01", posts[1].Date)
}

func TestPostsCategoriesAndTags(t *testing.T) {
	repo, roots := newTestRepo(t)
	writeDoc(t, roots.Default, "posts", "one.md", "---\nslug: first-post\ntitle: First\ndate: 2024-01-01\ncategory: レビュー\ntags: [b, a]\nexcerpt: hello\n---\nbody")
	writeDoc(t, roots.Default, "posts", "two.md", "---\ntitle: Second\ndate: 2024-02-01\ncategory: Diary\ntags: [a, c]\n---\n")
	writeDoc(t, roots.Override, "posts", "three.md", "---\ntitle: Third\ndate: 2023-12-01\ncategory: Diary\n---\n")

	posts := repo.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"two", "first-post", "three"}, []string{posts[0].Slug, posts[1].Slug, posts[2].Slug})

	first, ok := repo.PostBySlug("first-post")
	require.True(t, ok)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "hello", first.Excerpt)
	assert.Equal(t, "body", first.Body)

	assert.ElementsMatch(t, []string{"Diary", "レビュー"}, repo.Categories())
	assert.Equal(t, []string{"a", "b", "c"}, repo.Tags())

	assert.Len(t, repo.PostsByCategory("Diary"), 2)
	assert.Len(t, repo.PostsByTag("a"), 2)
	assert.Empty(t, repo.PostsByTag("zzz"))
}
