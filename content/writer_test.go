package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBaseName(t *testing.T) {
	cases := map[string]string{
		"My First Post":         "my-first-post",
		"  --a//b::c--  ":       "a-b-c",
		"Ｗｉｎｇｓｐａｎ　Review": "wingspan-review",
		"tab\there":             "tabhere",
		"..":                    "",
		"???":                   "",
		"カタン 初プレイ":             "カタン-初プレイ",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeBaseName(in), in)
	}
}

func TestResolveEntryID(t *testing.T) {
	md := map[string]any{"id": "game-id", "slug": "post-slug", "title": "Title"}

	assert.Equal(t, "override", ResolveEntryID(CollectionPosts, " override ", md, "file.md"))
	assert.Equal(t, "post-slug", ResolveEntryID(CollectionPosts, "", md, "file.md"))
	assert.Equal(t, "game-id", ResolveEntryID(CollectionGames, "", md, "file.md"))
	assert.Equal(t, "Title", ResolveEntryID(CollectionGames, "", map[string]any{"title": "Title"}, "file.md"))
	assert.Equal(t, "file", ResolveEntryID(CollectionGames, "", nil, "file.md"))
	assert.Equal(t, "", ResolveEntryID(CollectionGames, "", nil, ""))
}

func TestSaveDocumentIsVisibleToNextRead(t *testing.T) {
	repo, roots := newTestRepo(t)

	stored, err := repo.SaveDocument(CollectionPosts, "Hello World", "draft.markdown", []byte("---\ntitle: Hello\ndate: 2024-04-01\n---\nhi"), false)
	require.NoError(t, err)
	assert.Equal(t, &models.StoredDocument{
		Collection: "posts",
		EntryID:    "hello-world",
		Filename:   "hello-world.md",
		Outcome:    models.OutcomeCreated,
	}, stored)

	_, err = os.Stat(filepath.Join(roots.Override, "posts", "hello-world.md"))
	require.NoError(t, err, "writes go to the override root")

	post, ok := repo.PostBySlug("hello-world")
	require.True(t, ok)
	assert.Equal(t, "Hello", post.Title)
}

func TestSaveDocumentOverwriteRules(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.SaveDocument(CollectionGames, "azul", "azul.mdx", []byte("v1"), false)
	require.NoError(t, err)

	_, err = repo.SaveDocument(CollectionGames, "azul", "azul.mdx", []byte("v2"), false)
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyExists(err))
	assert.ErrorIs(t, err, errs.ErrConflict)

	stored, err := repo.SaveDocument(CollectionGames, "azul", "azul.mdx", []byte("v2"), true)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUpdated, stored.Outcome)
	assert.Equal(t, "azul.mdx", stored.Filename)

	game, ok := repo.GameByID("azul")
	require.True(t, ok)
	assert.Equal(t, "v2", game.Body)
}

func TestSaveDocumentRejectsBadInput(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.SaveDocument(CollectionPlays, "x", "x.md", []byte("x"), false)
	assert.ErrorIs(t, err, errs.ErrUnknownCollection)

	_, err = repo.SaveDocument(CollectionPosts, "///", "x.md", []byte("x"), false)
	assert.ErrorIs(t, err, errs.ErrInvalidEntryID)
}
